package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/internal/config"
	"autoshop/internal/database"
	"autoshop/internal/domain/auth"
	"autoshop/internal/domain/bundle"
	"autoshop/internal/domain/catalog"
	"autoshop/internal/domain/refund"
	"autoshop/internal/pkg/apiclient"
	"autoshop/internal/pkg/listing"
	"autoshop/internal/realtime"
	"autoshop/internal/schema"
)

type suite struct {
	app *App
	srv *httptest.Server
	api string
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.OpenTest(t, schema.Models()...)
	cfg := &config.Config{
		JWTSecret:    "test_secret_key_32_characters_min",
		JWTAccessTTL: time.Hour,
		ShopLocation: time.UTC,
		ListPageSize: 10,
	}
	app, err := New(cfg, db, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	_, err = app.Auth.CreateUser(ctx, "Admin", "admin@autoshop.local", "", "admin12345", auth.RoleAdmin)
	require.NoError(t, err)
	_, err = app.Auth.CreateUser(ctx, "Northside", "north@autoshop.local", "", "center12345", auth.RoleServiceCenter)
	require.NoError(t, err)

	return &suite{app: app, srv: srv, api: srv.URL + "/api/v1"}
}

func (s *suite) login(t *testing.T, email, password string) *apiclient.Client {
	t.Helper()
	c := apiclient.New(s.api, "", apiclient.NewSession())
	_, err := c.Login(context.Background(), email, password)
	require.NoError(t, err)
	return c
}

func (s *suite) seedRefund(t *testing.T, ref string, advance int64) *refund.Booking {
	t.Helper()
	cancelled := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b, err := s.app.Refunds.Create(context.Background(), refund.CreateRequest{
		BookingRef:    ref,
		CustomerName:  "Daniyar S.",
		ServiceCenter: "Northside",
		CancelledAt:   cancelled,
		CheckInAt:     cancelled.AddDate(0, 0, 5),
		AdvanceAmount: decimal.NewFromInt(advance),
	})
	require.NoError(t, err)
	return b
}

func TestHealth(t *testing.T) {
	s := setupSuite(t)
	resp, err := http.Get(s.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestE2E_AdminRefundFlow(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()
	admin := s.login(t, "admin@autoshop.local", "admin12345")

	st, err := admin.AuthStatus(ctx)
	require.NoError(t, err)
	assert.True(t, st.Authenticated)
	assert.Equal(t, auth.RoleAdmin, st.User.Role)

	b := s.seedRefund(t, "BK-2125", 2125)
	s.seedRefund(t, "BK-9000", 9000)

	res, err := admin.ListRefunds(ctx, listing.Query{}.WithSearch("bk-2125"))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	got := res.Items[0]
	assert.Equal(t, refund.EligibilityHalf, got.Eligibility)
	assertAmount(t, "1062.5", got.Breakdown.CustomerRefund)
	assertAmount(t, "170", got.Breakdown.PlatformCommission)
	assertAmount(t, "892.5", got.Breakdown.ServiceCenterPayout)

	processed, err := admin.TransitionRefund(ctx, b.ID, refund.StatusProcessed)
	require.NoError(t, err)
	assert.Equal(t, refund.StatusProcessed, processed.Status)
	assert.True(t, processed.BreakdownLocked)

	_, err = admin.TransitionRefund(ctx, b.ID, refund.StatusPending)
	var rf *apiclient.RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusConflict, rf.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", rf.Code)
	assert.Contains(t, rf.Message, refund.ErrInvalidTransition.Error())
	assert.True(t, admin.Session().Valid())
}

func TestE2E_ServiceCenterAccess(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()
	center := s.login(t, "north@autoshop.local", "center12345")

	var ids []int64
	for _, price := range []int64{2500, 5000, 7500} {
		svc, err := s.app.Catalog.Create(ctx, catalog.CreateServiceRequest{Name: "Service", Category: "maintenance", Price: decimal.NewFromInt(price)})
		require.NoError(t, err)
		ids = append(ids, svc.ID)
	}

	q, err := center.QuotePackage(ctx, bundle.QuoteRequest{
		ServiceIDs: ids,
		Discount:   &bundle.Discount{Type: bundle.DiscountPercent, Value: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	assertAmount(t, "15000", q.Subtotal)
	assertAmount(t, "1500", q.DiscountAmount)
	assertAmount(t, "13500", q.DisplayTotal)

	services, err := center.ListServices(ctx, listing.Query{}.WithSort("Price (High to Low)"))
	require.NoError(t, err)
	require.Len(t, services.Items, 3)
	assertAmount(t, "7500", services.Items[0].Price)

	_, err = center.ListParts(ctx, listing.Query{})
	require.NoError(t, err)

	_, err = center.ListRefunds(ctx, listing.Query{})
	var rf *apiclient.RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusForbidden, rf.StatusCode)
	assert.Equal(t, "Access denied: insufficient permissions", rf.Message)
}

func TestE2E_UnauthenticatedInvalidatesSession(t *testing.T) {
	s := setupSuite(t)
	session := apiclient.NewSession()
	session.Set("not-a-real-token")
	c := apiclient.New(s.api, "", session)

	_, err := c.ListServices(context.Background(), listing.Query{})
	var rf *apiclient.RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusUnauthorized, rf.StatusCode)
	assert.False(t, session.Valid())
}

func TestE2E_RealtimeStatusEvent(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()
	admin := s.login(t, "admin@autoshop.local", "admin12345")
	b := s.seedRefund(t, "BK-WS", 4000)

	wsURL := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws?topics=" + refund.TopicStatusChanged + "&token=" + admin.Session().Token()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.app.Hub.Subscribers(refund.TopicStatusChanged) == 1 }, time.Second, 10*time.Millisecond)

	_, err = admin.TransitionRefund(ctx, b.ID, refund.StatusProcessed)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev realtime.Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, refund.TopicStatusChanged, ev.Topic)
	payload, ok := ev.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BK-WS", payload["booking_ref"])
}

func TestE2E_WebsocketRejectsCustomers(t *testing.T) {
	s := setupSuite(t)
	_, err := s.app.Auth.Register(context.Background(), auth.RegisterRequest{Name: "Cust", Email: "c@example.com", Password: "customer123"})
	require.NoError(t, err)
	c := s.login(t, "c@example.com", "customer123")

	wsURL := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/ws?token=" + c.Session().Token()
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
