package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autoshop/internal/config"
	"autoshop/internal/database"
	"autoshop/internal/domain/auth"
	"autoshop/internal/domain/bundle"
	"autoshop/internal/domain/catalog"
	"autoshop/internal/domain/document"
	"autoshop/internal/domain/inventory"
	"autoshop/internal/domain/refund"
	"autoshop/internal/logger"
	"autoshop/internal/schema"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.AppEnv, false)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl, nil)
	if err != nil {
		zl.Fatal("DB connection failed", zap.Error(err))
	}
	if err := schema.Migrate(db); err != nil {
		zl.Fatal("AutoMigrate failed", zap.Error(err))
	}

	zl.Info("cleaning old data")
	if err := schema.Reset(db); err != nil {
		zl.Fatal("reset failed", zap.Error(err))
	}

	ctx := context.Background()
	s := seeder{log: zl}

	// ================== USERS ==================
	users := auth.NewService(auth.NewUserRepository(db), nil, zl)
	s.must(users.CreateUser(ctx, "Administrator", "admin@autoshop.local", "", "admin12345", auth.RoleAdmin))
	s.must(users.CreateUser(ctx, "Northside Service Center", "north@autoshop.local", "+7 701 555 0101", "center12345", auth.RoleServiceCenter))
	s.must(users.CreateUser(ctx, "Aigerim K.", "aigerim@example.com", "+7 702 555 0199", "customer123", auth.RoleCustomer))
	zl.Info("users created", zap.String("admin", "admin@autoshop.local / admin12345"))

	// ================== SERVICES ==================
	services := catalog.NewService(catalog.NewRepository(db), zl, cfg.ListPageSize)
	minutes := func(m int) *int { return &m }
	var serviceIDs []int64
	for _, req := range []catalog.CreateServiceRequest{
		{Name: "Oil change", Category: "maintenance", Price: decimal.NewFromInt(2500), DurationMinutes: minutes(30), ShortDescription: "Engine oil and filter"},
		{Name: "Brake pads replacement", Category: "brakes", Price: decimal.NewFromInt(5000), DurationMinutes: minutes(90)},
		{Name: "Wheel alignment", Category: "suspension", Price: decimal.NewFromInt(7500), DurationMinutes: minutes(60)},
		{Name: "Cabin filter", Category: "maintenance", Price: decimal.NewFromInt(1200), DurationMinutes: minutes(15)},
		{Name: "Diagnostics", Category: "electrical", Price: decimal.NewFromInt(3000), Unit: "per hour", DurationMinutes: minutes(60)},
	} {
		svc := s.must(services.Create(ctx, req))
		serviceIDs = append(serviceIDs, svc.(*catalog.RepairService).ID)
	}

	// ================== PACKAGES ==================
	packages := bundle.NewService(bundle.NewRepository(db), services, nil, zl, cfg.ListPageSize)
	custom := decimal.NewFromInt(9900)
	s.must(packages.Create(ctx, bundle.SaveRequest{
		Name:       "Full service",
		ServiceIDs: serviceIDs[:3],
		Discount:   &bundle.Discount{Type: bundle.DiscountPercent, Value: decimal.NewFromInt(10)},
	}))
	s.must(packages.Create(ctx, bundle.SaveRequest{
		Name:        "Winter check",
		ServiceIDs:  []int64{serviceIDs[0], serviceIDs[3], serviceIDs[4]},
		Discount:    &bundle.Discount{Type: bundle.DiscountFixed, Value: decimal.NewFromInt(500)},
		CustomTotal: &custom,
	}))

	// ================== PARTS ==================
	parts := inventory.NewService(inventory.NewRepository(db), nil, zl, cfg.ListPageSize)
	for _, req := range []inventory.CreatePartRequest{
		{Name: "Brake pads (front)", PartNumber: "BRK-001", Category: "brakes", Supplier: "Bosch", Quantity: 3, ReorderPoint: 5, MaxStock: 40, UnitCost: decimal.NewFromInt(4200), Location: "A1"},
		{Name: "Oil filter", PartNumber: "FLT-010", Category: "filters", Supplier: "Mann", Quantity: 25, ReorderPoint: 10, MaxStock: 60, UnitCost: decimal.NewFromInt(900), Location: "B2"},
		{Name: "Cabin filter", PartNumber: "FLT-020", Category: "filters", Supplier: "Mann", Quantity: 0, ReorderPoint: 4, MaxStock: 20, UnitCost: decimal.NewFromInt(1100), Location: "B3"},
		{Name: "Wiper blades", PartNumber: "WPR-100", Category: "body", Supplier: "Valeo", Quantity: 80, ReorderPoint: 10, MaxStock: 50, UnitCost: decimal.RequireFromString("650.50"), Location: "C1"},
	} {
		s.must(parts.Create(ctx, req))
	}

	// ================== DOCUMENTS ==================
	docs := document.NewService(document.NewRepository(db), zl, cfg.ListPageSize)
	s.must(docs.Create(ctx, document.CreateRequest{Kind: document.KindEstimate, CustomerName: "Aigerim K.", Vehicle: "Toyota Camry 2019", Total: decimal.NewFromInt(13500)}))
	s.must(docs.Create(ctx, document.CreateRequest{Kind: document.KindInvoice, CustomerName: "Daniyar S.", Vehicle: "Hyundai Tucson 2021", Total: decimal.NewFromInt(9900)}))

	// ================== REFUNDS ==================
	refunds := refund.NewService(refund.NewRepository(db), nil, nil, zl, refund.Config{Location: cfg.ShopLocation, PageSize: cfg.ListPageSize})
	now := time.Now().UTC()
	for _, r := range []struct {
		ref, customer, center string
		daysAhead             int
		advance               int64
	}{
		{"BK-1001", "Aigerim K.", "Northside Service Center", 11, 10000},
		{"BK-1002", "Daniyar S.", "Northside Service Center", 5, 2125},
		{"BK-1003", "Madina T.", "Eastgate Auto", 1, 8000},
		{"BK-1004", "Ruslan B.", "Eastgate Auto", 3, 4500},
	} {
		s.must(refunds.Create(ctx, refund.CreateRequest{
			BookingRef:    r.ref,
			CustomerName:  r.customer,
			ServiceCenter: r.center,
			ServiceName:   "Full service",
			CancelledAt:   now,
			CheckInAt:     now.AddDate(0, 0, r.daysAhead),
			AdvanceAmount: decimal.NewFromInt(r.advance),
		}))
	}

	zl.Info("seed complete")
}

type seeder struct {
	log *zap.Logger
}

func (s seeder) must(v any, err error) any {
	if err != nil {
		s.log.Fatal("seed step failed", zap.Error(err))
	}
	return v
}
