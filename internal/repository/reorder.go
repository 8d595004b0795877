package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appErr "github.com/ona-ui/catalog/pkg/errors"
	"gorm.io/gorm"
)

// SortOrderUpdate is one {id, sortOrder} pair of a reorder submission.
type SortOrderUpdate struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"sortOrder"`
}

// reorderRows applies all sort-order updates inside one transaction. Partial
// submissions are allowed; omitted siblings keep their previous sort_order,
// so duplicates can result. The rows are never renumbered wholesale.
func reorderRows[T any](ctx context.Context, db *gorm.DB, updates []SortOrderUpdate) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			var t T
			res := tx.Model(&t).Where("id = ?", u.ID).Update("sort_order", u.SortOrder)
			if res.Error != nil {
				return appErr.Wrap(res.Error, appErr.CodeInternal, "update sort order failed")
			}
			if res.RowsAffected == 0 {
				return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %s not found", u.ID))
			}
		}
		return nil
	})
}
