package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// ObjectUploader stores tournament documents in object storage.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	PublicURL(key string) string
}

// ReportKey returns a fresh object key for a report generated at t: reports/<yyyy-mm-dd>/<uuid>.json.
func ReportKey(t time.Time) string {
	return fmt.Sprintf("reports/%s/%s.json", t.UTC().Format(time.DateOnly), uuid.NewString())
}
