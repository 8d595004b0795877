package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/ona-ui/catalog/internal/models"
	"github.com/ona-ui/catalog/internal/repository"
	"github.com/ona-ui/catalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// recordAudit appends one audit entry for an administrative action. Audit
// failures are logged, not surfaced; the action itself already succeeded.
func recordAudit(ctx context.Context, repo repository.AuditRepository, actorID uuid.UUID, action, entityType string, entityID *uuid.UUID, detail map[string]any) {
	var d datatypes.JSON
	if detail != nil {
		b, err := json.Marshal(detail)
		if err != nil {
			logger.L().Warn("audit detail marshal failed", zap.String("action", action), zap.Error(err))
		} else {
			d = datatypes.JSON(b)
		}
	}
	entry := &models.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     d,
	}
	if err := repo.Append(ctx, entry); err != nil {
		logger.L().Warn("audit append failed", zap.String("action", action), zap.Error(err))
	}
}
