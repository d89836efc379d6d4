package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/configs"
	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/payments"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

const testSecret = "routes-secret"

type stubGateway struct{ sessions map[string]payments.Session }

func (g stubGateway) CreateCheckoutSession(_ context.Context, req payments.CheckoutRequest) (payments.Session, error) {
	return payments.Session{ID: "cs_stub", Status: payments.StatusPending, AmountMinor: req.AmountMinor, URL: "https://pay.test/cs_stub"}, nil
}

func (g stubGateway) RetrieveSession(_ context.Context, id string) (payments.Session, error) {
	s, ok := g.sessions[id]
	if !ok {
		return payments.Session{}, payments.ErrSessionNotFound
	}
	return s, nil
}

func (g stubGateway) PublishableKey() string { return "pk_stub" }

type api struct {
	t        *testing.T
	r        *gin.Engine
	db       *gorm.DB
	customer entity.Customer
	menu     entity.Menu
	agent    entity.DeliveryUser
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &configs.Config{
		JWTSecret:   testSecret,
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
		DB:          configs.DBConfig{Driver: "sqlite", Source: filepath.Join(t.TempDir(), "api.db"), MaxOpenConns: 1},
	}
	db, err := configs.ConnectDB(cfg.DB, nil)
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	a := &api{t: t, db: db}
	a.customer = entity.Customer{FullName: "Ana Lima", Email: "ana@example.com"}
	require.NoError(t, db.Create(&a.customer).Error)
	a.menu = entity.Menu{Name: "Quinoa Bowl", Price: decimal.RequireFromString("8.99")}
	require.NoError(t, db.Create(&a.menu).Error)
	a.agent = entity.DeliveryUser{Username: "rider", FullName: "Rider"}
	require.NoError(t, db.Create(&a.agent).Error)

	gw := stubGateway{sessions: map[string]payments.Session{
		"cs_paid":   {ID: "cs_paid", Status: payments.StatusPaid, AmountMinor: 1798, CustomerID: a.customer.ID},
		"cs_unpaid": {ID: "cs_unpaid", Status: payments.StatusPending, AmountMinor: 1798, CustomerID: a.customer.ID},
	}}

	a.r = gin.New()
	RegisterRoutes(a.r, db, cfg, gw, zap.NewNop())
	return a
}

func (a *api) token(role entity.Role, id uint) string {
	tok, err := utils.GenerateToken(id, role, testSecret, time.Hour)
	require.NoError(a.t, err)
	return tok
}

type envelope struct {
	OK    bool            `json:"ok"`
	Code  string          `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) orderBody(extra map[string]any) map[string]any {
	body := map[string]any{
		"customer_id":  a.customer.ID,
		"items":        []map[string]any{{"menu_id": a.menu.ID, "quantity": 2, "price": 8.99}},
		"total_amount": 17.98,
		"contact":      map[string]any{"phone": "555-0100", "address": "2 New Street"},
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func (a *api) countOrders() int64 {
	var n int64
	require.NoError(a.t, a.db.Model(&entity.Order{}).Count(&n).Error)
	return n
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	code, env := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}

func TestPlaceOrderAndReadStatus(t *testing.T) {
	a := newAPI(t)
	tok := a.token(entity.RoleCustomer, a.customer.ID)

	code, env := a.do(http.MethodPost, "/customer/orders", tok, a.orderBody(nil))
	require.Equal(t, http.StatusCreated, code, env.Error)
	var created struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotZero(t, created.OrderID)

	code, env = a.do(http.MethodGet, "/customer/orders/"+itoa(created.OrderID)+"/status", tok, nil)
	require.Equal(t, http.StatusOK, code)
	var st struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "Pending", st.Status)

	var c entity.Customer
	require.NoError(t, a.db.First(&c, a.customer.ID).Error)
	assert.Equal(t, "2 New Street", c.Address)

	code, env = a.do(http.MethodGet, "/customer/orders", tok, nil)
	require.Equal(t, http.StatusOK, code)
	var list []struct {
		ID    uint `json:"id"`
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Items[0].Quantity)
}

func TestOrderBodyGuards(t *testing.T) {
	a := newAPI(t)
	tok := a.token(entity.RoleCustomer, a.customer.ID)

	code, env := a.do(http.MethodPost, "/customer/orders", tok, a.orderBody(map[string]any{"customer_id": a.customer.ID + 1}))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", env.Code)

	code, _ = a.do(http.MethodPost, "/customer/orders", tok, a.orderBody(map[string]any{"discount": 5}))
	assert.Equal(t, http.StatusBadRequest, code, "unknown fields are rejected")

	code, env = a.do(http.MethodPost, "/customer/orders", tok, a.orderBody(map[string]any{"total_amount": 20}))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_error", env.Code)

	code, env = a.do(http.MethodPost, "/customer/orders", tok, a.orderBody(map[string]any{
		"items":        []map[string]any{{"menu_id": 999, "quantity": 1, "price": 17.98}},
		"total_amount": 17.98,
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "reference_error", env.Code)

	code, _ = a.do(http.MethodPost, "/customer/orders", "", a.orderBody(nil))
	assert.Equal(t, http.StatusUnauthorized, code)

	assert.Zero(t, a.countOrders())
}

func TestCheckoutConfirm(t *testing.T) {
	a := newAPI(t)
	tok := a.token(entity.RoleCustomer, a.customer.ID)

	code, env := a.do(http.MethodGet, "/customer/stripe/publishable", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"key":"pk_stub"}`, string(env.Data))

	code, env = a.do(http.MethodPost, "/customer/checkout/session", tok, map[string]any{"total_amount": 17.98})
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.JSONEq(t, `{"id":"cs_stub","url":"https://pay.test/cs_stub"}`, string(env.Data))

	code, env = a.do(http.MethodPost, "/customer/checkout/confirm", tok, a.orderBody(map[string]any{"session_id": "cs_unpaid"}))
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "payment_not_completed", env.Code)
	assert.Zero(t, a.countOrders())

	code, env = a.do(http.MethodPost, "/customer/checkout/confirm", tok, a.orderBody(map[string]any{"session_id": "cs_paid"}))
	require.Equal(t, http.StatusCreated, code, env.Error)
	first := string(env.Data)
	assert.Equal(t, int64(1), a.countOrders())

	code, env = a.do(http.MethodPost, "/customer/checkout/confirm", tok, a.orderBody(map[string]any{"session_id": "cs_paid"}))
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.JSONEq(t, first, string(env.Data), "a repeated confirm returns the same order")
	assert.Equal(t, int64(1), a.countOrders())
}

func TestAdminAndDeliveryFlow(t *testing.T) {
	a := newAPI(t)
	customer := a.token(entity.RoleCustomer, a.customer.ID)
	admin := a.token(entity.RoleAdmin, 1)
	rider := a.token(entity.RoleDelivery, a.agent.ID)

	code, env := a.do(http.MethodPost, "/customer/orders", customer, a.orderBody(nil))
	require.Equal(t, http.StatusCreated, code, env.Error)
	var created struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	orderPath := "/orders/" + itoa(created.OrderID)

	code, _ = a.do(http.MethodGet, "/admin/orders", customer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodPut, "/admin"+orderPath+"/status", admin, map[string]any{"status": "Out for Delivery", "delivery_user_id": a.agent.ID + 50})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Code)

	code, env = a.do(http.MethodPut, "/admin"+orderPath+"/status", admin, map[string]any{"status": "Preparing"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodPut, "/admin"+orderPath+"/assign", admin, map[string]any{"delivery_user_id": a.agent.ID})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodGet, "/delivery/orders", rider, nil)
	require.Equal(t, http.StatusOK, code)
	var assigned []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &assigned))
	require.Len(t, assigned, 1)
	assert.Equal(t, created.OrderID, assigned[0].ID)

	code, _ = a.do(http.MethodPut, "/delivery"+orderPath+"/status", rider, map[string]any{"status": "Cancelled"})
	assert.Equal(t, http.StatusBadRequest, code)

	for i := 0; i < 2; i++ {
		code, env = a.do(http.MethodPut, "/delivery"+orderPath+"/status", rider, map[string]any{"status": "Delivered"})
		require.Equal(t, http.StatusOK, code, env.Error)
	}

	code, env = a.do(http.MethodGet, "/delivery/history", rider, nil)
	require.Equal(t, http.StatusOK, code)
	var hist []struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hist))
	assert.Len(t, hist, 1)

	code, env = a.do(http.MethodPut, "/admin"+orderPath+"/status", admin, map[string]any{"status": "Cancelled"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invalid_state", env.Code)

	code, env = a.do(http.MethodGet, "/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		TotalOrders int64 `json:"total_orders"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalOrders)
}

func TestStaffDirectoryRoles(t *testing.T) {
	a := newAPI(t)
	admin := a.token(entity.RoleAdmin, 1)
	super := a.token(entity.RoleSuperAdmin, 2)
	body := map[string]any{"username": "rider2", "password": "secret99", "full_name": "Second Rider"}

	code, _ := a.do(http.MethodPost, "/admin/delivery-users", admin, body)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := a.do(http.MethodPost, "/admin/delivery-users", super, body)
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.NotContains(t, string(env.Data), "secret99")

	code, env = a.do(http.MethodGet, "/admin/delivery-users", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var users []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)

	code, _ = a.do(http.MethodDelete, "/admin/delivery-users/"+itoa(a.agent.ID), admin, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestFavoritesEndpoints(t *testing.T) {
	a := newAPI(t)
	tok := a.token(entity.RoleCustomer, a.customer.ID)
	menuPath := "/customer/favorites/" + itoa(a.menu.ID)

	code, _ := a.do(http.MethodPost, "/customer/favorites", tok, map[string]any{"menu_id": a.menu.ID})
	require.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodPost, "/customer/favorites", tok, map[string]any{"menu_id": a.menu.ID})
	require.Equal(t, http.StatusOK, code)

	code, env := a.do(http.MethodPost, menuPath+"/toggle", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"menu_id":`+itoa(a.menu.ID)+`,"favorite":false}`, string(env.Data))

	code, _ = a.do(http.MethodDelete, menuPath, tok, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = a.do(http.MethodGet, "/customer/favorites", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func itoa(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestAdminDirectoryEndpoints(t *testing.T) {
	a := newAPI(t)
	admin := a.token(entity.RoleAdmin, 1)
	super := a.token(entity.RoleSuperAdmin, 2)
	body := map[string]any{"username": "ops", "password": "secret99", "full_name": "Ops Desk", "role": "admin"}

	code, _ := a.do(http.MethodPost, "/admin/admins", admin, body)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := a.do(http.MethodPost, "/admin/admins", super, body)
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.NotContains(t, string(env.Data), "secret99")
	var created struct {
		ID   uint   `json:"ID"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "admin", created.Role)

	code, env = a.do(http.MethodGet, "/admin/admins", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var list []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	code, env = a.do(http.MethodDelete, "/admin/admins/"+itoa(created.ID+50), admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Code)

	code, _ = a.do(http.MethodDelete, "/admin/admins/"+itoa(created.ID), super, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = a.do(http.MethodGet, "/admin/admins", a.token(entity.RoleDelivery, a.agent.ID), nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestCustomerProfileEndpoints(t *testing.T) {
	a := newAPI(t)
	tok := a.token(entity.RoleCustomer, a.customer.ID)

	code, env := a.do(http.MethodPut, "/customer/profile", tok, map[string]any{"phone": "555-0199", "address": "9 Elm Row"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(http.MethodGet, "/customer/profile", tok, nil)
	require.Equal(t, http.StatusOK, code)
	var p struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Ana Lima", p.FullName, "blank fields are left unchanged")
	assert.Equal(t, "555-0199", p.Phone)
	assert.Equal(t, "9 Elm Row", p.Address)
	assert.NotContains(t, string(env.Data), "password")

	code, _ = a.do(http.MethodPut, "/customer/profile", tok, map[string]any{"email": "new@example.com"})
	assert.Equal(t, http.StatusBadRequest, code, "email is not editable")

	code, env = a.do(http.MethodGet, "/customer/profile", a.token(entity.RoleCustomer, a.customer.ID+40), nil)
	assert.Equal(t, http.StatusNotFound, code, env.Error)
}
