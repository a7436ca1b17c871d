package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autoshop/internal/pkg/listing"
	"autoshop/internal/pkg/validator"
)

type Service struct {
	repo     Repository
	log      *zap.Logger
	pageSize int
}

func NewService(repo Repository, log *zap.Logger, pageSize int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, pageSize: pageSize}
}

func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*RepairService, error) {
	errs := validator.Validate(&req)
	errs.Amount("price", req.Price)
	checkDiscount(&errs, req.Discount, req.Price)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	svc := &RepairService{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Category:         req.Category,
		Price:            req.Price,
		Unit:             req.Unit,
		DurationMinutes:  req.DurationMinutes,
		Discount:         req.Discount,
		IsActive:         true,
	}
	if svc.Unit == "" {
		svc.Unit = "per job"
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	// gorm skips false on insert because of the column default
	if !svc.IsActive {
		if err := s.repo.SetActive(ctx, svc.ID, false); err != nil {
			return nil, err
		}
	}
	s.log.Info("service created", zap.Int64("service_id", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateServiceRequest) (*RepairService, error) {
	errs := validator.Validate(&req)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.ShortDescription != nil {
		svc.ShortDescription = *req.ShortDescription
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Unit != nil {
		svc.Unit = *req.Unit
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = req.DurationMinutes
	}
	if req.Discount != nil {
		svc.Discount = req.Discount
	}

	errs.Amount("price", svc.Price)
	checkDiscount(&errs, svc.Discount, svc.Price)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// ToggleActive flips availability. Price and history are untouched.
func (s *Service) ToggleActive(ctx context.Context, id int64) (*RepairService, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.IsActive = !svc.IsActive
	if err := s.repo.SetActive(ctx, id, svc.IsActive); err != nil {
		return nil, err
	}
	s.log.Info("service availability toggled", zap.Int64("service_id", id), zap.Bool("active", svc.IsActive))
	return svc, nil
}

// Delete soft-deletes a service, or removes it permanently when hard is set.
func (s *Service) Delete(ctx context.Context, id int64, hard bool) error {
	if err := s.repo.Delete(ctx, id, hard); err != nil {
		return err
	}
	s.log.Info("service deleted", zap.Int64("service_id", id), zap.Bool("hard", hard))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*RepairService, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[RepairService], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[RepairService]{}, err
	}
	return ListSpec.Apply(items, q, s.pageSize), nil
}

// PricesFor returns the unit price of each active service among ids.
// Unknown, deleted and inactive services are absent from the result.
func (s *Service) PricesFor(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	items, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[int64]decimal.Decimal, len(items))
	for _, it := range items {
		if it.IsActive {
			prices[it.ID] = it.Price
		}
	}
	return prices, nil
}

func checkDiscount(errs *validator.Errors, discount *decimal.Decimal, price decimal.Decimal) {
	if discount == nil {
		return
	}
	errs.Amount("discount", *discount)
	if discount.GreaterThan(price) {
		errs.Add("discount", validator.InvalidNumericValue, "must not exceed the price")
	}
}
