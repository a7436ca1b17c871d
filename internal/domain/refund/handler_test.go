package refund

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	h := NewHandler(svc, zap.NewNop())

	r := gin.New()
	api := r.Group("/api/v1")
	RegisterPublicRoutes(api, h)
	RegisterAdminRoutes(api.Group("/admin"), h)
	return r, svc
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_Evaluate(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/refunds/evaluate", map[string]any{
		"days_before_check_in": 5,
		"advance_amount":       "2125",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Eligibility         string `json:"eligibility"`
		CustomerRefund      string `json:"customer_refund"`
		PlatformCommission  string `json:"platform_commission"`
		ServiceCenterPayout string `json:"service_center_payout"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Equal(t, "50%", result.Eligibility)
	assert.Equal(t, "1062.5", result.CustomerRefund)
	assert.Equal(t, "170", result.PlatformCommission)
	assert.Equal(t, "892.5", result.ServiceCenterPayout)
}

func TestHandler_Evaluate_NonNumericAdvance(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/refunds/evaluate", map[string]any{
		"days_before_check_in": 5,
		"advance_amount":       "lots",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
}

func TestHandler_Policy(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/refunds/policy", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var policy PolicyResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &policy))
	assert.Len(t, policy.Tiers, 3)
	assert.Equal(t, DefaultPolicy.Lines(), policy.Lines)
}

func TestHandler_TransitionAndLock(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := createRequest("BK-9", 2, "800")
	w := doJSON(r, http.MethodPost, "/api/v1/admin/refunds", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created Booking
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, EligibilityNone, created.Eligibility)

	path := "/api/v1/admin/refunds/" + itoa(created.ID)

	w = doJSON(r, http.MethodPost, path+"/transition", TransitionRequest{Status: StatusCompleted})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, path+"/transition", TransitionRequest{Status: StatusProcessed})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPatch, path+"/advance", map[string]any{"advance_amount": "900"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BREAKDOWN_LOCKED", decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, path+"/transition", map[string]any{"status": "Refunded"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetAndList(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/admin/refunds/77", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/admin/refunds/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, ref := range []string{"BK-1", "BK-2", "BK-3"} {
		w = doJSON(r, http.MethodPost, "/api/v1/admin/refunds", createRequest(ref, 9, "100"))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/admin/refunds?q=bk-2&status=all", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items   []Booking `json:"items"`
		Total   int       `json:"total"`
		HasMore bool      `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "BK-2", page.Items[0].BookingRef)

	w = doJSON(r, http.MethodGet, "/api/v1/admin/refunds/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
