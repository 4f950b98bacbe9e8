// internal/archive/archive.go
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/payload"
)

// Record is one archived submission with its generated report.
type Record struct {
	ID        string
	Phone     string
	Payload   []byte
	Report    string
	CreatedAt time.Time
}

// Store writes completed submissions to Postgres. The archive is write-only
// from the request path; reads happen out of band.
type Store struct {
	db  *sql.DB
	log logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

const insertQuery = `
	INSERT INTO submissions (id, phone, payload, report, created_at)
	VALUES ($1, $2, $3, $4, $5)`

// Insert persists a single record.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, insertQuery,
		rec.ID, rec.Phone, rec.Payload, rec.Report, rec.CreatedAt)
	if err != nil {
		return stderrors.NewArchiveInsertFailedError(err)
	}
	return nil
}

// Archive serializes a submission and stores it under a fresh ID.
func (s *Store) Archive(ctx context.Context, sub payload.Submission, report string) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return stderrors.NewArchiveInsertFailedError(err)
	}

	return s.Insert(ctx, Record{
		ID:        uuid.NewString(),
		Phone:     sub.Phone,
		Payload:   data,
		Report:    report,
		CreatedAt: time.Now().UTC(),
	})
}
