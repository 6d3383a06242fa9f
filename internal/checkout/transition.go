package checkout

import (
	"fmt"
	"time"

	custom_error "inventory/pkg/errors"
)

// DefaultLoanPeriod is applied when a checkout request carries no expected
// return datetime.
const DefaultLoanPeriod = 7 * 24 * time.Hour

// ItemQuantities is the quantity triple of an item. Every transition must
// preserve available + checked_out == total.
type ItemQuantities struct {
	Total      int
	Available  int
	CheckedOut int
}

func (q ItemQuantities) Consistent() bool {
	return q.Available >= 0 &&
		q.CheckedOut >= 0 &&
		q.Available+q.CheckedOut == q.Total
}

// ValidateQuantity rejects non-positive checkout quantities before any write.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return custom_error.NewValidationError("quantity", "must be a positive integer")
	}
	return nil
}

// ApplyCheckout moves quantity units from available to checked out. It fails
// with a conflict when fewer units are available than requested, leaving the
// input untouched.
func ApplyCheckout(q ItemQuantities, quantity int) (ItemQuantities, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return q, err
	}
	if q.Available < quantity {
		return q, custom_error.NewConflictError(
			fmt.Sprintf("insufficient quantity: available %d, requested %d", q.Available, quantity),
		)
	}

	return ItemQuantities{
		Total:      q.Total,
		Available:  q.Available - quantity,
		CheckedOut: q.CheckedOut + quantity,
	}, nil
}

// ApplyCheckin moves quantity units back from checked out to available.
func ApplyCheckin(q ItemQuantities, quantity int) (ItemQuantities, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return q, err
	}
	if q.CheckedOut < quantity {
		return q, custom_error.NewConflictError(
			fmt.Sprintf("cannot check in %d items, only %d currently checked out", quantity, q.CheckedOut),
		)
	}

	return ItemQuantities{
		Total:      q.Total,
		Available:  q.Available + quantity,
		CheckedOut: q.CheckedOut - quantity,
	}, nil
}

// DefaultExpectedReturn computes the return deadline when none was supplied.
func DefaultExpectedReturn(now time.Time) time.Time {
	return now.Add(DefaultLoanPeriod)
}

// IsOverdue reports whether an open loan has passed its expected return time.
func IsOverdue(now, expectedReturn time.Time) bool {
	return now.After(expectedReturn)
}

// DaysOverdue is the number of whole days past the expected return time,
// floored at zero when the loan is not overdue.
func DaysOverdue(now, expectedReturn time.Time) int {
	if !IsOverdue(now, expectedReturn) {
		return 0
	}
	return int(now.Sub(expectedReturn).Hours() / 24)
}

// LateReturn reports whether a return happened after the expected return time.
func LateReturn(returnDate, expectedReturn time.Time) bool {
	return returnDate.After(expectedReturn)
}
