package checkout

import (
	"fmt"

	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// LedgerRepository persists open loans and their closed history. The tx-taking
// methods run inside the service's transaction.
type LedgerRepository interface {
	ReserveItemQuantity(tx *goqu.TxDatabase, itemID int, quantity int) error
	ReleaseItemQuantity(tx *goqu.TxDatabase, itemID int, quantity int) error
	InsertCheckout(tx *goqu.TxDatabase, row models.Checkout) (*models.Checkout, error)
	GetOpenCheckout(tx *goqu.TxDatabase, checkoutID int) (*models.Checkout, error)
	DeleteCheckout(tx *goqu.TxDatabase, checkoutID int) error
	InsertHistory(tx *goqu.TxDatabase, record models.CheckoutHistory) (*models.CheckoutHistory, error)
	WasReturned(checkoutID int) (bool, error)
	GetActiveCheckouts(filter ActiveFilter) ([]models.ActiveCheckout, error)
	GetUserHistory(userID int, limit int) ([]models.HistoryRecord, error)
	GetItemHistory(itemID int, limit int) ([]models.HistoryRecord, error)
}

type ledgerRepositoryImpl struct {
	repository *repository.Repository
}

func NewLedgerRepository(r *repository.Repository) LedgerRepository {
	return &ledgerRepositoryImpl{repository: r}
}

// ActiveFilter narrows the active-checkout projection. Zero values mean no
// filtering.
type ActiveFilter struct {
	UserID int
	ItemID int
}

// ReserveItemQuantity moves quantity units of an item from available to
// checked out. The quantity_available >= quantity predicate is the concurrency
// guard: of two racing checkouts competing for the last units only one
// matches the row.
func (r *ledgerRepositoryImpl) ReserveItemQuantity(tx *goqu.TxDatabase, itemID int, quantity int) error {
	query := tx.Update("items").
		Set(goqu.Record{
			"quantity_available":   goqu.L("quantity_available - ?", quantity),
			"quantity_checked_out": goqu.L("quantity_checked_out + ?", quantity),
			"updated_at":           goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("quantity_available").Gte(quantity),
		)

	result, err := query.Executor().Exec()
	if err != nil {
		return custom_error.WrapStoreError("failed to reserve item quantity", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return custom_error.NewConflictError(
			fmt.Sprintf("insufficient quantity of item %d for request of %d", itemID, quantity),
		)
	}

	return nil
}

// ReleaseItemQuantity returns quantity units of an item to the available pool.
func (r *ledgerRepositoryImpl) ReleaseItemQuantity(tx *goqu.TxDatabase, itemID int, quantity int) error {
	query := tx.Update("items").
		Set(goqu.Record{
			"quantity_available":   goqu.L("quantity_available + ?", quantity),
			"quantity_checked_out": goqu.L("quantity_checked_out - ?", quantity),
			"updated_at":           goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("quantity_checked_out").Gte(quantity),
		)

	result, err := query.Executor().Exec()
	if err != nil {
		return custom_error.WrapStoreError("failed to release item quantity", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return custom_error.NewConflictError(
			fmt.Sprintf("cannot return %d units of item %d, fewer are checked out", quantity, itemID),
		)
	}

	return nil
}

func (r *ledgerRepositoryImpl) InsertCheckout(tx *goqu.TxDatabase, row models.Checkout) (*models.Checkout, error) {
	query := tx.Insert("checkouts").
		Rows(goqu.Record{
			"item_id":                  row.ItemID,
			"user_id":                  row.UserID,
			"quantity":                 row.Quantity,
			"checkout_date":            row.CheckoutDate,
			"expected_return_datetime": row.ExpectedReturn,
			"checkout_condition":       row.CheckoutCondition,
			"notes":                    row.Notes,
		}).
		Returning("checkout_id")

	if _, err := query.Executor().ScanVal(&row.ID); err != nil {
		return nil, custom_error.WrapStoreError("failed to insert checkout record", err)
	}

	return &row, nil
}

// GetOpenCheckout loads an open loan row with a row lock so a concurrent
// check-in of the same loan blocks until this transaction settles.
func (r *ledgerRepositoryImpl) GetOpenCheckout(tx *goqu.TxDatabase, checkoutID int) (*models.Checkout, error) {
	var row models.Checkout
	query := tx.Select(
		"checkout_id", "item_id", "user_id", "quantity",
		"checkout_date", "expected_return_datetime", "checkout_condition", "notes",
	).
		From("checkouts").
		Where(goqu.Ex{"checkout_id": checkoutID}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return nil, custom_error.WrapStoreError("failed to get checkout", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("checkout", fmt.Sprintf("%d", checkoutID))
	}

	return &row, nil
}

func (r *ledgerRepositoryImpl) DeleteCheckout(tx *goqu.TxDatabase, checkoutID int) error {
	_, err := tx.Delete("checkouts").
		Where(goqu.Ex{"checkout_id": checkoutID}).
		Executor().
		Exec()
	if err != nil {
		return custom_error.WrapStoreError("failed to delete checkout", err)
	}

	return nil
}

func (r *ledgerRepositoryImpl) InsertHistory(tx *goqu.TxDatabase, record models.CheckoutHistory) (*models.CheckoutHistory, error) {
	query := tx.Insert("checkout_history").
		Rows(goqu.Record{
			"checkout_id":              record.CheckoutID,
			"item_id":                  record.ItemID,
			"user_id":                  record.UserID,
			"quantity":                 record.Quantity,
			"checkout_date":            record.CheckoutDate,
			"return_date":              record.ReturnDate,
			"expected_return_datetime": record.ExpectedReturn,
			"is_returned":              record.IsReturned,
			"late_return":              record.LateReturn,
			"checkout_condition":       record.CheckoutCondition,
			"return_condition":         record.ReturnCondition,
			"checkout_notes":           record.CheckoutNotes,
			"return_notes":             record.ReturnNotes,
		}).
		Returning("history_id")

	if _, err := query.Executor().ScanVal(&record.ID); err != nil {
		return nil, custom_error.WrapStoreError("failed to insert checkout history record", err)
	}

	return &record, nil
}

// WasReturned reports whether a checkout id already has a closed history row.
// It distinguishes a second check-in (conflict) from a checkout that never
// existed (not found).
func (r *ledgerRepositoryImpl) WasReturned(checkoutID int) (bool, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("history_id")).
		From("checkout_history").
		Where(goqu.Ex{"checkout_id": checkoutID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, custom_error.WrapStoreError("failed to check checkout history", err)
	}

	return count > 0, nil
}

func (r *ledgerRepositoryImpl) GetActiveCheckouts(filter ActiveFilter) ([]models.ActiveCheckout, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("c.checkout_id"),
			goqu.I("c.checkout_date"),
			goqu.I("c.expected_return_datetime"),
			goqu.I("c.quantity"),
			goqu.I("c.notes"),
			goqu.I("u.ldap"),
			goqu.I("u.full_name"),
			goqu.I("u.email"),
			goqu.I("i.item_id"),
			goqu.I("i.item_name"),
			goqu.I("i.category"),
			goqu.I("i.location"),
		).
		From(goqu.T("checkouts").As("c")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"i.item_id": goqu.I("c.item_id")})).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.user_id": goqu.I("c.user_id")})).
		Order(goqu.I("c.checkout_date").Desc())

	if filter.UserID != 0 {
		query = query.Where(goqu.I("c.user_id").Eq(filter.UserID))
	}
	if filter.ItemID != 0 {
		query = query.Where(goqu.I("c.item_id").Eq(filter.ItemID))
	}

	var checkouts []models.ActiveCheckout
	if err := query.Executor().ScanStructs(&checkouts); err != nil {
		return nil, custom_error.WrapStoreError("failed to fetch active checkouts", err)
	}

	return checkouts, nil
}

func (r *ledgerRepositoryImpl) GetUserHistory(userID int, limit int) ([]models.HistoryRecord, error) {
	return r.fetchHistory(goqu.I("h.user_id").Eq(userID), limit)
}

func (r *ledgerRepositoryImpl) GetItemHistory(itemID int, limit int) ([]models.HistoryRecord, error) {
	return r.fetchHistory(goqu.I("h.item_id").Eq(itemID), limit)
}

func (r *ledgerRepositoryImpl) fetchHistory(condition goqu.Expression, limit int) ([]models.HistoryRecord, error) {
	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("h.history_id"),
			goqu.I("h.checkout_date"),
			goqu.I("h.return_date"),
			goqu.I("h.expected_return_datetime"),
			goqu.I("h.quantity"),
			goqu.I("h.is_returned"),
			goqu.I("h.late_return"),
			goqu.I("h.checkout_condition"),
			goqu.I("h.return_condition"),
			goqu.I("u.ldap"),
			goqu.I("u.full_name"),
			goqu.I("i.item_id"),
			goqu.I("i.item_name"),
			goqu.I("i.category"),
			goqu.I("i.location"),
		).
		From(goqu.T("checkout_history").As("h")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"i.item_id": goqu.I("h.item_id")})).
		Join(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.user_id": goqu.I("h.user_id")})).
		Where(condition).
		Order(goqu.I("h.checkout_date").Desc()).
		Limit(uint(limit))

	var records []models.HistoryRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, custom_error.WrapStoreError("failed to fetch checkout history", err)
	}

	return records, nil
}

