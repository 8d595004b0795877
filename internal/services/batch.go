package services

import (
	"github.com/google/uuid"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

// BatchOperation enumerates the supported bulk actions.
type BatchOperation string

const (
	BatchActivate   BatchOperation = "activate"
	BatchDeactivate BatchOperation = "deactivate"
	BatchDelete     BatchOperation = "delete"
	BatchUpdate     BatchOperation = "update"
	BatchMove       BatchOperation = "move"
)

// BatchItemResult is the outcome of one successfully processed id.
type BatchItemResult struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// BatchItemError records a per-item failure without failing the whole call.
type BatchItemError struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// BatchResult is the envelope of a best-effort bulk action. A failure on one
// item does not undo earlier items; batch operations are never atomic.
type BatchResult struct {
	Processed  int               `json:"processed"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Results    []BatchItemResult `json:"results"`
	Errors     []BatchItemError  `json:"errors"`
}

// runBatch iterates the ids sequentially, capturing each item's error so no
// error escapes the call.
func runBatch(ids []uuid.UUID, op BatchOperation, fn func(uuid.UUID) error) *BatchResult {
	res := &BatchResult{
		Results: make([]BatchItemResult, 0, len(ids)),
		Errors:  []BatchItemError{},
	}
	for _, id := range ids {
		res.Processed++
		if err := fn(id); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BatchItemError{
				ID:      id,
				Code:    string(appErr.CodeOf(err)),
				Message: err.Error(),
			})
			continue
		}
		res.Successful++
		res.Results = append(res.Results, BatchItemResult{ID: id, Status: string(op) + "d"})
	}
	return res
}
