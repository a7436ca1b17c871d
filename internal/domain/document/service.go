package document

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"autoshop/internal/database"
	"autoshop/internal/pkg/listing"
	"autoshop/internal/pkg/validator"
)

const numberAttempts = 3

type Service struct {
	repo     Repository
	log      *zap.Logger
	pageSize int
	now      func() time.Time
}

func NewService(repo Repository, log *zap.Logger, pageSize int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, pageSize: pageSize, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Document, error) {
	errs := validator.Validate(&req)
	errs.Amount("total", req.Total)
	if req.IssuedAt != nil && req.DueAt != nil && req.DueAt.Before(*req.IssuedAt) {
		errs.Add("due_at", validator.InvalidValue, "must not be before issued_at")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	d := &Document{
		Kind:         req.Kind,
		Status:       StatusDraft,
		CustomerName: req.CustomerName,
		Vehicle:      req.Vehicle,
		Total:        req.Total,
		IssuedAt:     s.now().UTC(),
		DueAt:        req.DueAt,
		Notes:        req.Notes,
	}
	if req.IssuedAt != nil {
		d.IssuedAt = req.IssuedAt.UTC()
	}

	var err error
	for i := 0; i < numberAttempts; i++ {
		d.ID = 0
		d.Number = NewNumber(d.Kind)
		if err = s.repo.Create(ctx, d); !database.IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("document created", zap.String("number", d.Number), zap.String("kind", string(d.Kind)))
	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[Document], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[Document]{}, err
	}
	return ListSpec.Apply(items, q, s.pageSize), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, to Status) (*Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(d.Kind, d.Status, to) {
		return nil, fmt.Errorf("%w: %s %s -> %s", ErrInvalidTransition, d.Kind, d.Status, to)
	}
	if err := s.repo.UpdateStatus(ctx, id, d.Status, to); err != nil {
		return nil, err
	}
	s.log.Info("document status changed",
		zap.String("number", d.Number),
		zap.String("from", string(d.Status)),
		zap.String("to", string(to)),
	)
	d.Status = to
	return d, nil
}
