package public

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^PC\d{8}\d{6}$`)

func TestAddToCartAndView(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "falcon-x", "4999.90")

	w, env := doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var added struct {
		Success   bool `json:"success"`
		CartCount int  `json:"cart_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &added))
	assert.True(t, added.Success)
	assert.Equal(t, 1, added.CartCount)

	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")

	w, env = doJSON(t, r, http.MethodGet, "/api/cart", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Items []struct {
			ID       uint   `json:"id"`
			Quantity int    `json:"quantity"`
			Subtotal string `json:"subtotal"`
		} `json:"items"`
		Total string `json:"total"`
		Count int    `json:"cart_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "9999.80", view.Total)
	assert.Equal(t, 1, view.Count)
}

func TestAddToCartUnknownPC(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	r := newPublicEngine(h)

	w, env := doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": 9999}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "/pcs", data["redirect"])
}

func TestAddToCartMissingPCIDIsNotFound(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	r := newPublicEngine(h)

	for _, body := range []map[string]interface{}{{"pc_id": 0}, {}} {
		w, env := doJSON(t, r, http.MethodPost, "/api/cart/add", body, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		var data map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "/pcs", data["redirect"])
	}

	w, _ := doForm(t, r, "/api/cart/add", url.Values{"pc_id": {"0"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartZeroRemovesLine(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "storm", "3000")

	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")
	w, env := doJSON(t, r, http.MethodPost, "/api/cart/update", map[string]interface{}{"pc_id": pc.ID, "quantity": 0}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Items)
}

func TestCheckoutEmptyCartRedirectsToCatalog(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	r := newPublicEngine(h)

	w, env := doJSON(t, r, http.MethodGet, "/api/checkout", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "/pcs", data["redirect"])
}

func TestGuestOrderWithPixDiscount(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "nebula", "1000.00")
	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")

	body := checkoutBody("pix")
	body["setup_service"] = true
	w, env := doJSON(t, r, http.MethodPost, "/api/checkout", body, "")
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))

	var data struct {
		Success bool                   `json:"success"`
		Order   GuestOrderConfirmation `json:"order"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Success)
	assert.Regexp(t, orderNumberPattern, data.Order.OrderNumber)
	assert.Equal(t, "1000.00", data.Order.Subtotal.StringFixed(2))
	assert.Equal(t, "150.00", data.Order.SetupFee.StringFixed(2))
	assert.Equal(t, "1092.50", data.Order.Total.StringFixed(2))
	assert.Equal(t, "57.50", data.Order.Discount.StringFixed(2))

	var order models.Order
	require.NoError(t, db.Where("order_number = ?", data.Order.OrderNumber).First(&order).Error)
	assert.Nil(t, order.CustomerID)
	assert.Equal(t, "SP", order.ShippingState)

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestGuestOrderFromFormWithSetupCheckbox(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "eclipse", "2999.90")
	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")

	form := url.Values{}
	for key, value := range checkoutBody("pix") {
		form.Set(key, value.(string))
	}
	form.Set("setup_service", "on")
	w, env := doForm(t, r, "/api/checkout", form)
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))

	var data struct {
		Order GuestOrderConfirmation `json:"order"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Regexp(t, orderNumberPattern, data.Order.OrderNumber)
	assert.Equal(t, "150.00", data.Order.SetupFee.StringFixed(2))
	assert.Equal(t, "2992.41", data.Order.Total.StringFixed(2))
}

func TestProcessOrderFormWithoutCheckboxSkipsSetup(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "comet", "1000.00")
	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")

	form := url.Values{}
	for key, value := range checkoutBody("card") {
		form.Set(key, value.(string))
	}
	w, env := doForm(t, r, "/api/checkout", form)
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))

	var data struct {
		Order GuestOrderConfirmation `json:"order"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Order.SetupFee.IsZero())
	assert.Equal(t, "1000.00", data.Order.Total.StringFixed(2))
}

func TestProcessOrderRejectsInvalidAddress(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "vortex", "2000")
	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")

	body := checkoutBody("card")
	body["cep"] = "123"
	body["state"] = "XX"
	w, env := doJSON(t, r, http.MethodPost, "/api/checkout", body, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var data struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data.Fields, "cep")
	assert.Contains(t, data.Fields, "state")

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestProcessOrderUnknownPaymentMethod(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "aurora", "2000")
	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, "")

	w, env := doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody("bitcoin"), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "/checkout", data["redirect"])
}

func TestCustomerOrderFlow(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	pc := seedProduct(t, db, "titan", "5000")

	w, env := doJSON(t, r, http.MethodPost, "/api/register", map[string]interface{}{
		"name":     "Bruno Lima",
		"email":    "bruno@example.com",
		"password": "segredo123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	require.NotEmpty(t, registered.Token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "pixelcraft_token=")

	doJSON(t, r, http.MethodPost, "/api/cart/add", map[string]interface{}{"pc_id": pc.ID}, registered.Token)
	w, env = doJSON(t, r, http.MethodPost, "/api/checkout", checkoutBody("card"), registered.Token)
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))
	var placed struct {
		OrderNumber string `json:"order_number"`
		Redirect    string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, "/minha-conta/pedidos/"+placed.OrderNumber, placed.Redirect)

	w, _ = doJSON(t, r, http.MethodGet, "/api/account/orders/"+placed.OrderNumber, nil, registered.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/account/orders/PC20990101000001", nil, registered.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/account/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "/login", data["redirect"])
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	body := map[string]interface{}{"name": "Carla", "email": "carla@example.com", "password": "segredo123"}

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/register", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/login", map[string]interface{}{"email": "carla@example.com", "password": "errada"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchEmptyTermReturnsEmptyList(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)
	seedProduct(t, db, "phantom", "1000")

	w, env := doJSON(t, r, http.MethodGet, "/api/search?q=", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	w, env = doJSON(t, r, http.MethodGet, "/api/search?q=phan", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "phantom", results[0]["slug"])
}

func TestGetPCUnknownSlug(t *testing.T) {
	h, _ := setupPublicHandlerTest(t)
	r := newPublicEngine(h)

	w, _ := doJSON(t, r, http.MethodGet, "/api/pcs/nao-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	h, db := setupPublicHandlerTest(t)
	r := newPublicEngine(h)

	w, _ := doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]interface{}{"email": "Dani@Example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	w, env := doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]interface{}{"email": "dani@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, true, data["success"])

	var count int64
	require.NoError(t, db.Model(&models.NewsletterSubscriber{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w, _ = doJSON(t, r, http.MethodPost, "/api/newsletter", map[string]interface{}{"email": "nao-e-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
