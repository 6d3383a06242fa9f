package checkout

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"inventory/internal/items"
	"inventory/internal/repository"
	"inventory/internal/users"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/metadata"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Service is the checkout/check-in core: it validates requests against the
// current state and applies the Open -> Closed loan lifecycle atomically.
type Service interface {
	Checkout(req CheckoutRequest) (*models.Checkout, error)
	Checkin(req CheckinRequest) (*models.CheckoutHistory, error)
	ActiveCheckouts(filter ActiveFilter) ([]models.ActiveCheckout, error)
	OverdueCheckouts() ([]models.ActiveCheckout, error)
	UserHistory(ldap string, limit int) (*models.User, []models.HistoryRecord, error)
	ItemHistory(itemID int, limit int) ([]models.HistoryRecord, error)
}

type checkoutService struct {
	r      *repository.Repository
	ledger LedgerRepository
	items  items.ItemRepository
	users  users.UserRepository

	// seams for tests
	transact func(fn func(tx *goqu.TxDatabase) error) error
	now      func() time.Time
}

func NewService(r *repository.Repository, ledger LedgerRepository, ir items.ItemRepository, ur users.UserRepository) Service {
	s := &checkoutService{
		r:      r,
		ledger: ledger,
		items:  ir,
		users:  ur,
		now:    time.Now,
	}
	s.transact = func(fn func(tx *goqu.TxDatabase) error) error {
		return repository.WithTransaction(r.GoquDBWrapper, fn)
	}

	return s
}

// Checkout validates the request, then atomically moves quantity units of the
// item from available to checked out and opens the loan. All validation
// happens before any write; the conditional update inside the transaction is
// the only authority on whether enough units remain.
func (s *checkoutService) Checkout(req CheckoutRequest) (*models.Checkout, error) {
	condition, err := metadata.NewCondition(req.CheckoutCondition)
	if err != nil {
		return nil, custom_error.NewValidationError("checkout_condition", err.Error())
	}
	if err := ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	user, err := s.users.GetByLDAP(req.UserLDAP)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Status != metadata.StatusAvailable.String() {
		return nil, custom_error.NewConflictError(
			fmt.Sprintf("item %q is not available for checkout (status: %s)", item.Name, item.Status),
		)
	}

	// Pre-validate against the quantities we just read so the caller gets a
	// precise message. The guarded update below re-checks under the
	// transaction and remains the final word.
	quantities := ItemQuantities{
		Total:      item.QuantityTotal,
		Available:  item.QuantityAvailable,
		CheckedOut: item.QuantityCheckedOut,
	}
	if _, err := ApplyCheckout(quantities, req.Quantity); err != nil {
		return nil, err
	}

	now := s.now()
	expectedReturn := DefaultExpectedReturn(now)
	if req.ExpectedReturn != nil {
		expectedReturn = *req.ExpectedReturn
	}

	row := models.Checkout{
		ItemID:            item.ID,
		UserID:            user.ID,
		Quantity:          req.Quantity,
		CheckoutDate:      now,
		ExpectedReturn:    expectedReturn,
		CheckoutCondition: condition.String(),
		Notes:             req.Notes,
	}

	var created *models.Checkout
	err = s.transact(func(tx *goqu.TxDatabase) error {
		if err := s.ledger.ReserveItemQuantity(tx, item.ID, req.Quantity); err != nil {
			return err
		}

		var err error
		if created, err = s.ledger.InsertCheckout(tx, row); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Checkin closes an open loan: returns its quantity to the item, removes the
// open row and writes the history record, all in one transaction. A second
// check-in on the same id fails with a conflict, never silently succeeds.
func (s *checkoutService) Checkin(req CheckinRequest) (*models.CheckoutHistory, error) {
	condition, err := metadata.NewCondition(req.ReturnCondition)
	if err != nil {
		return nil, custom_error.NewValidationError("return_condition", err.Error())
	}

	var record *models.CheckoutHistory
	err = s.transact(func(tx *goqu.TxDatabase) error {
		open, err := s.ledger.GetOpenCheckout(tx, req.CheckoutID)
		if err != nil {
			return err
		}

		if err := s.ledger.ReleaseItemQuantity(tx, open.ItemID, open.Quantity); err != nil {
			return err
		}

		if err := s.ledger.DeleteCheckout(tx, open.ID); err != nil {
			return err
		}

		returnDate := s.now()
		history := models.CheckoutHistory{
			CheckoutID:        open.ID,
			ItemID:            open.ItemID,
			UserID:            open.UserID,
			Quantity:          open.Quantity,
			CheckoutDate:      open.CheckoutDate,
			ReturnDate:        returnDate,
			ExpectedReturn:    open.ExpectedReturn,
			IsReturned:        true,
			LateReturn:        LateReturn(returnDate, open.ExpectedReturn),
			CheckoutCondition: open.CheckoutCondition,
			ReturnCondition:   condition.String(),
			CheckoutNotes:     open.Notes,
			ReturnNotes:       req.ReturnNotes,
		}

		if record, err = s.ledger.InsertHistory(tx, history); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		var notFound *custom_error.NotFoundError
		if errors.As(err, &notFound) {
			returned, histErr := s.ledger.WasReturned(req.CheckoutID)
			if histErr == nil && returned {
				return nil, custom_error.NewConflictError(
					fmt.Sprintf("checkout %d has already been returned", req.CheckoutID),
				)
			}
		}
		return nil, err
	}

	return record, nil
}

func (s *checkoutService) ActiveCheckouts(filter ActiveFilter) ([]models.ActiveCheckout, error) {
	checkouts, err := s.ledger.GetActiveCheckouts(filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range checkouts {
		checkouts[i].IsOverdue = IsOverdue(now, checkouts[i].ExpectedReturn)
		checkouts[i].DaysOverdue = DaysOverdue(now, checkouts[i].ExpectedReturn)
	}

	return checkouts, nil
}

func (s *checkoutService) OverdueCheckouts() ([]models.ActiveCheckout, error) {
	checkouts, err := s.ActiveCheckouts(ActiveFilter{})
	if err != nil {
		return nil, err
	}

	var overdue []models.ActiveCheckout
	for _, c := range checkouts {
		if c.IsOverdue {
			overdue = append(overdue, c)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysOverdue > overdue[j].DaysOverdue
	})

	return overdue, nil
}

func (s *checkoutService) UserHistory(ldap string, limit int) (*models.User, []models.HistoryRecord, error) {
	user, err := s.users.GetByLDAP(ldap)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.ledger.GetUserHistory(user.ID, limit)
	if err != nil {
		return nil, nil, err
	}

	return user, history, nil
}

func (s *checkoutService) ItemHistory(itemID int, limit int) ([]models.HistoryRecord, error) {
	if _, err := s.items.GetItem(itemID); err != nil {
		return nil, err
	}

	return s.ledger.GetItemHistory(itemID, limit)
}
