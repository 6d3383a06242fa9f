package auditlog

import (
	"inventory/internal/repository"
	"inventory/pkg/models"

	"go.uber.org/zap"
)

type Auditlog struct {
	r   *repository.Repository
	log *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log records an audit trail entry for a mutation. Handlers fire it in a
// goroutine after the transaction has committed; a failed audit write never
// fails the request.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	err := a.r.PersistLog(auditLog, data)

	if err != nil {
		a.log.Warn("unable to create audit log entry",
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("resource_type", auditLog.ResourceType),
			zap.Error(err),
		)
		return
	}

	a.log.Debug("created audit log entry",
		zap.Int("resource_id", auditLog.ResourceID),
		zap.String("action", action),
	)
}

func NewAuditLog(repository *repository.Repository, log *zap.Logger) *Auditlog {
	return &Auditlog{r: repository, log: log}
}
