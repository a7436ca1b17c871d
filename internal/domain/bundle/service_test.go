package bundle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"autoshop/internal/database"
	"autoshop/internal/domain/catalog"
	"autoshop/internal/pkg/listing"
	"autoshop/internal/pkg/validator"
)

type fakePublisher struct {
	topics []string
}

func (p *fakePublisher) Publish(topic string, _ any) {
	p.topics = append(p.topics, topic)
}

type fixture struct {
	svc     *Service
	catalog *catalog.Service
	events  *fakePublisher
	ids     []int64
}

func setupTestService(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t, &catalog.RepairService{}, &Package{}, &PackageItem{})

	cat := catalog.NewService(catalog.NewRepository(db), zap.NewNop(), 10)
	f := &fixture{catalog: cat, events: &fakePublisher{}}
	for i, price := range []string{"2500", "5000", "7500"} {
		s, err := cat.Create(context.Background(), catalog.CreateServiceRequest{
			Name:     "Service " + strconv.Itoa(i+1),
			Category: "Maintenance",
			Price:    dec(price),
		})
		require.NoError(t, err)
		f.ids = append(f.ids, s.ID)
	}

	f.svc = NewService(NewRepository(db), cat, f.events, zap.NewNop(), 10)
	return f
}

func TestService_CreatePersistsComputedPrices(t *testing.T) {
	f := setupTestService(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, SaveRequest{
		Name:       "Full service",
		ServiceIDs: f.ids,
		Discount:   &Discount{Type: DiscountPercent, Value: dec("10")},
	})
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ids, stored.ServiceIDs())
	assert.True(t, stored.Subtotal.Equal(dec("15000")))
	assert.True(t, stored.DiscountAmount.Equal(dec("1500")))
	assert.True(t, stored.CalculatedTotal.Equal(dec("13500")))
	assert.True(t, stored.Total.Equal(dec("13500")))
	assert.Equal(t, []string{TopicSaved}, f.events.topics)
}

func TestService_CreateRejectsEmptySelection(t *testing.T) {
	f := setupTestService(t)

	_, err := f.svc.Create(context.Background(), SaveRequest{Name: "Nothing"})
	errs, ok := validator.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has(validator.EmptySelection))
	assert.Empty(t, f.events.topics)
}

func TestService_UpdateRepricesFromCatalog(t *testing.T) {
	f := setupTestService(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, SaveRequest{Name: "Pair", ServiceIDs: f.ids[:2]})
	require.NoError(t, err)
	assert.True(t, p.Total.Equal(dec("7500")))

	newPrice := dec("3000")
	_, err = f.catalog.Update(ctx, f.ids[0], catalog.UpdateServiceRequest{Price: &newPrice})
	require.NoError(t, err)

	custom := dec("6000")
	p, err = f.svc.Update(ctx, p.ID, SaveRequest{
		Name:        "Pair",
		ServiceIDs:  []int64{f.ids[1], f.ids[0]},
		Discount:    &Discount{Type: DiscountFixed, Value: dec("500")},
		CustomTotal: &custom,
	})
	require.NoError(t, err)
	assert.True(t, p.Subtotal.Equal(dec("8000")))
	assert.True(t, p.CalculatedTotal.Equal(dec("7500")))
	assert.True(t, p.Total.Equal(dec("6000")))

	stored, err := f.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.ids[1], f.ids[0]}, stored.ServiceIDs())
}

func TestService_QuoteAndDelete(t *testing.T) {
	f := setupTestService(t)
	ctx := context.Background()

	q, err := f.svc.Quote(ctx, QuoteRequest{ServiceIDs: f.ids, Discount: &Discount{Type: DiscountPercent, Value: dec("10")}})
	require.NoError(t, err)
	assert.True(t, q.DisplayTotal.Equal(dec("13500")))

	_, err = f.svc.Quote(ctx, QuoteRequest{ServiceIDs: f.ids, Discount: &Discount{Type: DiscountPercent, Value: dec("101")}})
	_, ok := validator.AsErrors(err)
	assert.True(t, ok)

	negative := dec("-1")
	_, err = f.svc.Quote(ctx, QuoteRequest{ServiceIDs: f.ids, CustomTotal: &negative})
	errs, ok := validator.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "custom_total", errs[0].Field)
	assert.True(t, errs.Has(validator.InvalidNumericValue))

	custom := dec("9999.99")
	q, err = f.svc.Quote(ctx, QuoteRequest{ServiceIDs: f.ids, CustomTotal: &custom})
	require.NoError(t, err)
	assert.True(t, q.DisplayTotal.Equal(custom))
	assert.True(t, q.CalculatedTotal.Equal(dec("15000")))

	p, err := f.svc.Create(ctx, SaveRequest{Name: "Single", ServiceIDs: f.ids[:1]})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID), ErrNotFound)
}

func TestService_List(t *testing.T) {
	f := setupTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Winter prep", "basic check", "Premium care"} {
		_, err := f.svc.Create(ctx, SaveRequest{Name: name, ServiceIDs: f.ids[:1]})
		require.NoError(t, err)
	}

	res, err := f.svc.List(ctx, listing.Query{Sort: "Name (A-Z)"})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "basic check", res.Items[0].Name)
	assert.Equal(t, "Winter prep", res.Items[2].Name)
}

func TestHandler_CreateValidationAndQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setupTestService(t)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewHandler(f.svc, zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages", strings.NewReader(`{"name":"","service_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "EmptySelection")
	assert.Contains(t, w.Body.String(), "MissingRequiredField")

	body := `{"service_ids":[` + strconv.FormatInt(f.ids[0], 10) + `],"discount":{"type":"fixed","value":"abc"}}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/packages/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "InvalidNumericValue")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages/404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
