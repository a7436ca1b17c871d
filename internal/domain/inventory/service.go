package inventory

import (
	"context"

	"go.uber.org/zap"

	"autoshop/internal/pkg/listing"
	"autoshop/internal/pkg/validator"
)

const TopicLowStock = "part.low_stock"

type Publisher interface {
	Publish(topic string, payload any)
}

type Service struct {
	repo     Repository
	events   Publisher
	log      *zap.Logger
	pageSize int
}

func NewService(repo Repository, events Publisher, log *zap.Logger, pageSize int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, events: events, log: log, pageSize: pageSize}
}

func (s *Service) Create(ctx context.Context, req CreatePartRequest) (*Part, error) {
	errs := validator.Validate(&req)
	errs.Amount("unit_cost", req.UnitCost)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p := &Part{
		Name:         req.Name,
		PartNumber:   req.PartNumber,
		Category:     req.Category,
		Supplier:     req.Supplier,
		Quantity:     req.Quantity,
		ReorderPoint: req.ReorderPoint,
		MaxStock:     req.MaxStock,
		UnitCost:     req.UnitCost,
		Location:     req.Location,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Part, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[Part], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[Part]{}, err
	}
	return ListSpec.Apply(items, q, s.pageSize), nil
}

// AdjustStock receives (delta > 0) or consumes (delta < 0) stock. Quantity
// never drops below zero. A low-stock event fires when the part crosses into
// low or out of stock.
func (s *Service) AdjustStock(ctx context.Context, id int64, req AdjustStockRequest) (*Part, error) {
	if errs := validator.Validate(&req); len(errs) > 0 {
		return nil, errs
	}

	before, after, err := s.repo.AdjustQuantity(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}

	s.log.Info("stock adjusted",
		zap.Int64("part_id", id),
		zap.Int("delta", req.Delta),
		zap.Int("quantity", after.Quantity),
		zap.String("reason", req.Reason),
	)

	prev, next := before.StockStatus(), after.StockStatus()
	if needsReorder(next) && prev != next {
		s.log.Warn("part needs reorder",
			zap.Int64("part_id", id),
			zap.String("part_number", after.PartNumber),
			zap.String("stock_status", string(next)),
		)
		if s.events != nil {
			s.events.Publish(TopicLowStock, LowStockEvent{
				PartID:       after.ID,
				PartNumber:   after.PartNumber,
				Name:         after.Name,
				Quantity:     after.Quantity,
				ReorderPoint: after.ReorderPoint,
				Status:       next,
			})
		}
	}
	return after, nil
}
