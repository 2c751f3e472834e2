package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapter "bibdelivery/internal/adapters/in/http"
	"bibdelivery/internal/core/application/usecases/commands"
	"bibdelivery/internal/core/application/usecases/queries"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/services"
	"bibdelivery/internal/pkg/auth"
	"bibdelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counters register on the global prometheus registry, so create them once
// for the whole test binary.
var testMetrics = metrics.NewOrderMetrics()

type fixedDistance struct{ km float64 }

func (d fixedDistance) EstimateKm(_, _ kernel.Address) float64 { return d.km }

func newTestServer(t *testing.T, tokens auth.TokenService) *echo.Echo {
	t.Helper()

	origin, err := kernel.NewAddress("1 Event Plaza", "Kolkata", "700001", nil)
	require.NoError(t, err)

	pricing := services.NewPricingEstimator(services.PricingConfig{}, fixedDistance{km: 5.0})

	// handlers that reach the database are only exercised behind auth and
	// role checks in these tests, so their dependencies stay nil
	server := adapter.NewServer(
		commands.CreateOrderCommandHandler{},
		commands.NewAssignCourierCommandHandler(nil, commands.NopOrderEventPublisher{}),
		commands.NewPerformOrderActionCommandHandler(nil, commands.NopOrderEventPublisher{}),
		queries.GetOrderQueryHandler{},
		queries.ListOrdersQueryHandler{},
		tokens,
		pricing,
		origin,
		testMetrics,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func newTokenService() auth.TokenService {
	return auth.NewTokenService("test-secret", time.Hour)
}

func signToken(t *testing.T, tokens auth.TokenService, role auth.Role) string {
	t.Helper()
	token, err := tokens.Sign(auth.Identity{ID: kernel.NewUUID(), Role: role})
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, newTokenService())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEstimateDelivery_Serviceable(t *testing.T) {
	e := newTestServer(t, newTokenService())

	body := `{"deliveryAddress":{"street":"22 Finish Line Rd","postalCode":"700042"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/estimate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		DistanceKm  float64 `json:"distanceKm"`
		DeliveryFee int     `json:"deliveryFee"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 5.0, resp.DistanceKm, 0.001)
	assert.Equal(t, 90, resp.DeliveryFee)
}

func TestEstimateDelivery_OutsideZone(t *testing.T) {
	e := newTestServer(t, newTokenService())

	body := `{"deliveryAddress":{"street":"22 Finish Line Rd","postalCode":"711000"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/estimate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEstimateDelivery_MissingAddress(t *testing.T) {
	e := newTestServer(t, newTokenService())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/estimate", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutes_RequireBearerToken(t *testing.T) {
	e := newTestServer(t, newTokenService())

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/orders/" + kernel.NewUUID().String()},
		{http.MethodPost, "/api/v1/orders/manage"},
		{http.MethodPost, "/api/v1/orders/" + kernel.NewUUID().String() + "/actions"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestProtectedRoutes_RejectGarbageToken(t *testing.T) {
	e := newTestServer(t, newTokenService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutes_RejectTokenSignedWithOtherSecret(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(t, tokens)

	other := auth.NewTokenService("other-secret", time.Hour)
	token := signToken(t, other, auth.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_ForbiddenForNonCustomers(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(t, tokens)

	for _, role := range []auth.Role{auth.RoleCourier, auth.RoleOrganizer, auth.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, tokens, role))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestManageOrder_ForbiddenForNonAdmins(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(t, tokens)

	body := `{"orderId":"` + kernel.NewUUID().String() + `","courierId":"` + kernel.NewUUID().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/manage", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, tokens, auth.RoleCustomer))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPerformOrderAction_UnknownAction(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(t, tokens)

	body := `{"action":"TELEPORT","pin":"1111"}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/actions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, tokens, auth.RoleCourier))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPerformOrderAction_MissingCode(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(t, tokens)

	body := `{"action":"DELIVER"}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/actions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, tokens, auth.RoleCourier))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_MalformedID(t *testing.T) {
	tokens := newTokenService()
	e := newTestServer(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, tokens, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
