package bundle

import (
	"context"

	"go.uber.org/zap"

	"autoshop/internal/pkg/listing"
)

const TopicSaved = "package.saved"

type Publisher interface {
	Publish(topic string, payload any)
}

type Service struct {
	repo     Repository
	prices   PriceLookup
	events   Publisher
	log      *zap.Logger
	pageSize int
}

func NewService(repo Repository, prices PriceLookup, events Publisher, log *zap.Logger, pageSize int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, prices: prices, events: events, log: log, pageSize: pageSize}
}

// Quote prices a selection against the current catalog without saving.
// Services that are unknown or inactive are left out of the subtotal.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	d := normalizeDiscount(req.Discount)
	errs := validateDiscount(d)
	if req.CustomTotal != nil {
		errs.Amount("custom_total", *req.CustomTotal)
	}
	if err := errs.Err(); err != nil {
		return Quote{}, err
	}

	ed := NewEditor(Draft{Services: NewSelection(req.ServiceIDs...), Discount: d, CustomTotal: req.CustomTotal})
	ed.BeginEdit()
	return ed.Preview(ctx, s.prices)
}

func (s *Service) Create(ctx context.Context, req SaveRequest) (*Package, error) {
	ed := NewEditor(Draft{})
	ed.BeginEdit()
	if err := ed.Apply(req.apply); err != nil {
		return nil, err
	}
	draft, quote, err := ed.Commit(ctx, s.prices)
	if err != nil {
		return nil, err
	}

	p := &Package{}
	p.apply(draft, quote)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.saved(p)
	return p, nil
}

// Update re-prices the package from the current catalog on every save.
func (s *Service) Update(ctx context.Context, id int64, req SaveRequest) (*Package, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ed := NewEditor(p.Draft())
	ed.BeginEdit()
	if err := ed.Apply(req.apply); err != nil {
		return nil, err
	}
	draft, quote, err := ed.Commit(ctx, s.prices)
	if err != nil {
		return nil, err
	}

	p.apply(draft, quote)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.saved(p)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Package, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[Package], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[Package]{}, err
	}
	return ListSpec.Apply(items, q, s.pageSize), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("package deleted", zap.Int64("package_id", id))
	return nil
}

func (s *Service) saved(p *Package) {
	s.log.Info("package saved",
		zap.Int64("package_id", p.ID),
		zap.String("subtotal", p.Subtotal.String()),
		zap.String("total", p.Total.String()),
	)
	if s.events != nil {
		s.events.Publish(TopicSaved, p.View())
	}
}
