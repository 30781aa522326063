package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Contract for archiving export documents.
type ExportStore interface {
	// Persist the export and return the key it was stored under.
	Store(ctx context.Context, export domain.Export, body []byte) (string, error)
}
