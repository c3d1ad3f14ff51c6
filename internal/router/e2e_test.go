//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"farmapos/internal/config"
	"farmapos/internal/infra"
	"farmapos/internal/middleware"
	"farmapos/internal/router"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const testSecret = "e2e-secret"

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func mintToken(t *testing.T, rol string) string {
	t.Helper()
	claims := &middleware.JWTClaims{
		UserID: "5f7be0c3-0000-4000-8000-000000000042",
		Nombre: "Admin E2E",
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// ── Test env ─────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // administrador JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("farmapos_test"),
		tcPostgres.WithUsername("farmapos"),
		tcPostgres.WithPassword("farmapos"),
		tcPostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pgC)
	require.NoError(t, err)

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, rdC)
	require.NoError(t, err)

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		JWTSecret:      testSecret,
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		WorkerPoolSize: 1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, token: mintToken(t, "administrador")}
}

// crearProducto creates the minimal catalog (categoría + proveedor + producto)
// and returns the product id.
func crearProducto(t *testing.T, env *testEnv, nombre string, precio float64, stock int) string {
	t.Helper()

	catResp := do(t, env.server, "POST", "/v1/categorias",
		jsonBody(t, map[string]any{"nombre": "Categoría " + nombre}), env.token)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, catResp, &cat)

	provResp := do(t, env.server, "POST", "/v1/proveedores",
		jsonBody(t, map[string]any{"nombre": "Proveedor " + nombre}), env.token)
	require.Equal(t, http.StatusCreated, provResp.StatusCode)
	var prov struct {
		ID string `json:"id"`
	}
	decodeJSON(t, provResp, &prov)

	prodResp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":       nombre,
			"categoria_id": cat.ID,
			"proveedor_id": prov.ID,
			"precio":       precio,
			"costo":        precio / 2,
			"stock":        stock,
			"stock_minimo": 2,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)
	return prod.ID
}

func stockDe(t *testing.T, env *testEnv, productoID string) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/productos/"+productoID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, resp, &prod)
	return prod.Stock
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2EVentaCompleta(t *testing.T) {
	env := setupTestEnv(t)
	productoID := crearProducto(t, env, "Paracetamol 500mg", 3.50, 20)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"metodo_pago": "efectivo",
			"detalles": []map[string]any{{
				"producto_id":     productoID,
				"cantidad":        3,
				"precio_unitario": 3.50,
				"subtotal":        10.50,
			}},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID            string `json:"id"`
		ClienteNombre string `json:"cliente_nombre"`
		Total         string `json:"total"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "Cliente General", venta.ClienteNombre)

	assert.Equal(t, 17, stockDe(t, env, productoID))

	// the salida movement landed in the ledger with the sale reference
	movResp := do(t, env.server, "GET", "/v1/inventario/movimientos?producto_id="+productoID, nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movs struct {
		Data []struct {
			Tipo          string  `json:"tipo"`
			Cantidad      int     `json:"cantidad"`
			StockAnterior int     `json:"stock_anterior"`
			StockNuevo    int     `json:"stock_nuevo"`
			ReferenciaID  *string `json:"referencia_id"`
		} `json:"data"`
	}
	decodeJSON(t, movResp, &movs)
	require.Len(t, movs.Data, 1)
	assert.Equal(t, "salida", movs.Data[0].Tipo)
	assert.Equal(t, 20, movs.Data[0].StockAnterior)
	assert.Equal(t, 17, movs.Data[0].StockNuevo)
	require.NotNil(t, movs.Data[0].ReferenciaID)
	assert.Equal(t, venta.ID, *movs.Data[0].ReferenciaID)

	// receipt renders
	ticketResp := do(t, env.server, "GET", "/v1/ventas/"+venta.ID+"/ticket", nil, env.token)
	require.Equal(t, http.StatusOK, ticketResp.StatusCode)
	assert.Equal(t, "application/pdf", ticketResp.Header.Get("Content-Type"))
	ticketResp.Body.Close()
}

// A sale that survives pre-flight but fails a guarded decrement mid
// transaction leaves nothing behind: no venta, no movement, stock intact.
// Two lines for the same product (3 + 3 against stock 5) each pass the
// pre-flight check on their own, the first decrement takes 5 to 2 and the
// second fails the guard, rolling the whole commit back.
func TestE2EVentaFallaAMitadDeTransaccion(t *testing.T) {
	env := setupTestEnv(t)
	productoID := crearProducto(t, env, "Jarabe Duplicado", 6.00, 5)

	linea := map[string]any{
		"producto_id":     productoID,
		"cantidad":        3,
		"precio_unitario": 6.00,
		"subtotal":        18.00,
	}
	resp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"metodo_pago": "efectivo",
			"detalles":    []map[string]any{linea, linea},
		}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 5, stockDe(t, env, productoID))

	ventasResp := do(t, env.server, "GET", "/v1/ventas", nil, env.token)
	var ventas struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, ventasResp, &ventas)
	assert.Equal(t, int64(0), ventas.Total)

	movResp := do(t, env.server, "GET", "/v1/inventario/movimientos?producto_id="+productoID, nil, env.token)
	var movs struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, movResp, &movs)
	assert.Equal(t, int64(0), movs.Total)
}

// Two racing commits for the last unit: exactly one wins, stock never goes
// negative, and the ledger has exactly one salida.
func TestE2EVentaConcurrenteUltimaUnidad(t *testing.T) {
	env := setupTestEnv(t)
	productoID := crearProducto(t, env, "Última Unidad", 9.99, 1)

	venta := func() int {
		resp := do(t, env.server, "POST", "/v1/ventas",
			jsonBody(t, map[string]any{
				"metodo_pago": "efectivo",
				"detalles": []map[string]any{{
					"producto_id":     productoID,
					"cantidad":        1,
					"precio_unitario": 9.99,
					"subtotal":        9.99,
				}},
			}), env.token)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = venta()
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			exitos++
		}
	}
	require.Equal(t, 1, exitos, "exactly one of the two racing sales must commit, got %v", codes)
	assert.Equal(t, 0, stockDe(t, env, productoID))

	// the loser's venta row rolled back with its transaction
	ventasResp := do(t, env.server, "GET", "/v1/ventas", nil, env.token)
	var ventas struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, ventasResp, &ventas)
	assert.Equal(t, int64(1), ventas.Total)

	movResp := do(t, env.server, "GET", "/v1/inventario/movimientos?producto_id="+productoID, nil, env.token)
	var movs struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, movResp, &movs)
	assert.Equal(t, int64(1), movs.Total)
}

func TestE2ECarritoConfirmar(t *testing.T) {
	env := setupTestEnv(t)
	productoID := crearProducto(t, env, "Vitamina C", 12.00, 10)

	addResp := do(t, env.server, "POST", "/v1/carrito/items",
		jsonBody(t, map[string]any{"producto_id": productoID}), env.token)
	require.Equal(t, http.StatusOK, addResp.StatusCode)
	addResp.Body.Close()

	setResp := do(t, env.server, "PUT", "/v1/carrito/items/"+productoID,
		jsonBody(t, map[string]any{"cantidad": 4}), env.token)
	require.Equal(t, http.StatusOK, setResp.StatusCode)
	setResp.Body.Close()

	confResp := do(t, env.server, "POST", "/v1/carrito/confirmar",
		jsonBody(t, map[string]any{"metodo_pago": "tarjeta"}), env.token)
	require.Equal(t, http.StatusCreated, confResp.StatusCode)
	var venta struct {
		Total string `json:"total"`
	}
	decodeJSON(t, confResp, &venta)
	assert.Equal(t, "48", fmt.Sprintf("%.0f", mustFloat(t, venta.Total)))

	assert.Equal(t, 6, stockDe(t, env, productoID))

	// confirmed cart is gone
	carritoResp := do(t, env.server, "GET", "/v1/carrito", nil, env.token)
	var carrito struct {
		Items []any `json:"items"`
	}
	decodeJSON(t, carritoResp, &carrito)
	assert.Empty(t, carrito.Items)
}

func TestE2EMovimientosYReportes(t *testing.T) {
	env := setupTestEnv(t)
	productoID := crearProducto(t, env, "Ibuprofeno", 4.20, 10)

	entResp := do(t, env.server, "POST", "/v1/inventario/movimientos",
		jsonBody(t, map[string]any{
			"producto_id": productoID,
			"tipo":        "entrada",
			"cantidad":    15,
			"motivo":      "Reposición proveedor",
		}), env.token)
	require.Equal(t, http.StatusCreated, entResp.StatusCode)
	entResp.Body.Close()
	assert.Equal(t, 25, stockDe(t, env, productoID))

	// salida beyond stock is a conflict, ledger untouched
	salResp := do(t, env.server, "POST", "/v1/inventario/movimientos",
		jsonBody(t, map[string]any{
			"producto_id": productoID,
			"tipo":        "salida",
			"cantidad":    100,
			"motivo":      "Prueba de guarda",
		}), env.token)
	require.Equal(t, http.StatusConflict, salResp.StatusCode)
	salResp.Body.Close()
	assert.Equal(t, 25, stockDe(t, env, productoID))

	// inventory report sees the product valued at cost
	invResp := do(t, env.server, "GET", "/v1/reportes/inventario", nil, env.token)
	require.Equal(t, http.StatusOK, invResp.StatusCode)
	var inv struct {
		Productos []struct {
			Nombre string `json:"nombre"`
			Stock  int    `json:"stock"`
		} `json:"productos"`
	}
	decodeJSON(t, invResp, &inv)
	require.Len(t, inv.Productos, 1)
	assert.Equal(t, 25, inv.Productos[0].Stock)

	// CSV export variant
	csvResp := do(t, env.server, "GET", "/v1/reportes/inventario?export=csv", nil, env.token)
	require.Equal(t, http.StatusOK, csvResp.StatusCode)
	assert.Contains(t, csvResp.Header.Get("Content-Type"), "text/csv")
	csvResp.Body.Close()
}

func TestE2ERolesConsultaNoVende(t *testing.T) {
	env := setupTestEnv(t)
	productoID := crearProducto(t, env, "Solo Lectura", 1.00, 5)
	consulta := mintToken(t, "consulta")

	// reads are fine
	resp := do(t, env.server, "GET", "/v1/productos/"+productoID, nil, consulta)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// selling is not
	resp = do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"metodo_pago": "efectivo",
			"detalles": []map[string]any{{
				"producto_id":     productoID,
				"cantidad":        1,
				"precio_unitario": 1.00,
				"subtotal":        1.00,
			}},
		}), consulta)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	var f float64
	_, err := fmt.Sscanf(s, "%f", &f)
	require.NoError(t, err)
	return f
}
