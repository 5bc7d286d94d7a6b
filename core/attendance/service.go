package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		QueryRecords(ctx context.Context, date string) ([]Record, error)
		GetRecordByID(ctx context.Context, id string) (Record, error)
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewRecord) (Record, error) {
	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.New().String(),
		PersonID:  nr.PersonID,
		Date:      nr.Date,
		Status:    nr.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if nr.Status == StatusPresent || nr.Status == StatusLate {
		rec.CheckIn = null.TimeFrom(now)
	}
	if nr.Notes != "" {
		rec.Notes = null.StringFrom(nr.Notes)
	}
	return svc.repo.CreateRecord(ctx, rec)
}

// Query lists records, optionally restricted to a single date.
func (svc *Service) Query(ctx context.Context, date string) ([]Record, error) {
	return svc.repo.QueryRecords(ctx, date)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return svc.repo.GetRecordByID(ctx, id)
}

// Patch applies the provided fields to an existing record.
func (svc *Service) Patch(ctx context.Context, id string, ur UpdateRecord) (Record, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if ur.Status != "" {
		rec.Status = ur.Status
	}
	if ur.CheckOut != nil {
		rec.CheckOut = null.TimeFrom(ur.CheckOut.UTC())
	}
	if ur.Notes != nil {
		rec.Notes = null.StringFrom(*ur.Notes)
	}
	rec.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateRecord(ctx, rec)
}
