package container

import (
	"database/sql"

	auditapi "inventory/internal/auditlog"
	"inventory/internal/checkout"
	"inventory/internal/config"
	"inventory/internal/items"
	"inventory/internal/repository"
	"inventory/internal/users"
	"inventory/pkg/auditlog"

	"go.uber.org/zap"
)

type Container struct {
	Repository      *repository.Repository
	AuditLog        *auditlog.Auditlog
	ItemHandler     *items.ItemHandler
	UserHandler     *users.UsersHandler
	CheckoutHandler *checkout.CheckoutHandler
	AuditHandler    *auditapi.AuditHandler
}

func NewAppContainer(db *sql.DB, cfg *config.Config, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(repo, log.Named("auditlog"))

	itemRepo := items.NewRepository(repo)
	userRepo := users.NewRepository(repo)
	ledgerRepo := checkout.NewLedgerRepository(repo)

	checkoutService := checkout.NewService(repo, ledgerRepo, itemRepo, userRepo)

	itemHandler := items.NewItemHandler(itemRepo, userRepo, cfg)
	userHandler := users.NewHandler(userRepo)
	checkoutHandler := checkout.NewCheckoutHandler(checkoutService, auditLog)
	auditHandler := auditapi.NewAuditHandler(repo)

	return &Container{
		Repository:      repo,
		AuditLog:        auditLog,
		ItemHandler:     itemHandler,
		UserHandler:     userHandler,
		CheckoutHandler: checkoutHandler,
		AuditHandler:    auditHandler,
	}
}
