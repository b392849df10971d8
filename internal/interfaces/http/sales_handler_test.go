package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/comercio-api/internal/interfaces/http"
)

// buildSalesApp arma la ruta de checkout sobre el store en memoria con un
// producto sembrado (10 unidades a 50).
func buildSalesApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID:            "p1",
		CompanyID:     testCompanyID,
		SKU:           "SKU-p1",
		Name:          "Producto p1",
		PurchasePrice: decimal.RequireFromString("30"),
		SalePrice:     decimal.RequireFromString("50"),
		Quantity:      10,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))

	handler := apphttp.NewSalesHandler(sales.NewUseCase(store, store.Sales(), store.Products()))
	app := fiber.New()
	app.Post("/api/sales", apphttp.AuthMiddleware(testJWTSecret), handler.Checkout)
	return app, store
}

func postCheckout(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCheckoutHandler_DescuentoNegativo(t *testing.T) {
	app, store := buildSalesApp(t)

	resp := postCheckout(t, app, `{"items":[{"product_id":"p1","quantity":1}],"discount":-500,"discount_type":"fixed","payment_method":"efectivo"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_DISCOUNT")

	// El rechazo ocurre antes de tocar stock.
	p, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(10), p.Quantity)
}

func TestCheckoutHandler_PorcentajeFueraDeRango(t *testing.T) {
	app, _ := buildSalesApp(t)

	resp := postCheckout(t, app, `{"items":[{"product_id":"p1","quantity":1}],"discount":150,"discount_type":"percentage","payment_method":"efectivo"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_DISCOUNT")
}

func TestCheckoutHandler_DescuentoValido(t *testing.T) {
	app, _ := buildSalesApp(t)

	resp := postCheckout(t, app, `{"items":[{"product_id":"p1","quantity":1}],"discount":10,"discount_type":"percentage","payment_method":"efectivo"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sale dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))
	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("50")),
		"subtotal %s", sale.Subtotal)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("45")),
		"total %s", sale.Total)
}
