package http

import (
	"context"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/storefront/internal/app/dto"
	"github.com/mrops-br/storefront/internal/app/service"
	"github.com/mrops-br/storefront/internal/domain"
	"github.com/mrops-br/storefront/internal/infrastructure/config"
	"github.com/mrops-br/storefront/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront/internal/infrastructure/http/session"
	"github.com/mrops-br/storefront/internal/infrastructure/http/view"
	"github.com/mrops-br/storefront/internal/infrastructure/kv/memkv"
	"github.com/mrops-br/storefront/internal/infrastructure/repository/kvstore"
	"github.com/mrops-br/storefront/internal/infrastructure/telemetry"
)

type testApp struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	kv     *memkv.Store
	store  *kvstore.CatalogStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tel := telemetry.NewNoOpTelemetry(io.Discard)
	tracer := tel.TracerProvider.Tracer("test")
	logger := slog.New(slog.DiscardHandler)

	kv := memkv.New()
	store := kvstore.NewCatalogStore(kv, tracer, logger)

	tick := time.UnixMilli(1700000000000)
	ids := service.TimestampIDs{Now: func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}}

	catalog := service.NewCatalogService(store, ids, tracer, tel.MeterProvider.Meter("test"), logger)
	gate := service.NewAdminGate(store, "", tracer, logger)

	sessions, err := session.NewManager("test-secret", logger)
	require.NoError(t, err)
	views, err := view.NewRenderer()
	require.NoError(t, err)
	pages := handler.NewPages(views, sessions, logger)

	server := NewServer(&config.ServerConfig{Host: "127.0.0.1", Port: "0"}, Handlers{
		Storefront: handler.NewStorefrontHandler(catalog, pages),
		Admin:      handler.NewAdminHandler(catalog, gate, sessions, pages),
		API:        handler.NewProductHandler(catalog, logger),
	}, logger, tel)

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		t:      t,
		srv:    srv,
		client: &http.Client{Jar: jar},
		kv:     kv,
		store:  store,
	}
}

func (a *testApp) get(path string) (int, string) {
	a.t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	require.NoError(a.t, err)
	return readBody(a.t, resp)
}

func (a *testApp) post(path string, values url.Values) (int, string) {
	a.t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, values)
	require.NoError(a.t, err)
	return readBody(a.t, resp)
}

func (a *testApp) login() {
	a.t.Helper()
	a.get("/admin")
	status, body := a.post("/admin/login", url.Values{"password": {"SHOP"}})
	require.Equal(a.t, http.StatusOK, status)
	require.Contains(a.t, body, "AUTHENTICATED")
}

func (a *testApp) products() []domain.Product {
	a.t.Helper()
	products, err := a.store.ListProducts(context.Background())
	require.NoError(a.t, err)
	return products
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestAdminBootstrapDisclosesCredentialOnce(t *testing.T) {
	app := newTestApp(t)

	status, body := app.get("/admin")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ADMIN PASSWORD SET")
	assert.Contains(t, body, "Your admin password is: SHOP")
	assert.Contains(t, body, "ADMIN LOGIN")

	stored, ok, err := app.kv.Get(context.Background(), kvstore.AdminPasswordKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "SHOP", stored)

	_, body = app.get("/admin")
	assert.NotContains(t, body, "ADMIN PASSWORD SET")
}

func TestAdminBootstrapKeepsExistingCredential(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.kv.Set(context.Background(), kvstore.AdminPasswordKey, "hunter2"))

	_, body := app.get("/admin")
	assert.NotContains(t, body, "ADMIN PASSWORD SET")

	_, body = app.post("/admin/login", url.Values{"password": {"SHOP"}})
	assert.Contains(t, body, "INCORRECT PASSWORD")

	_, body = app.post("/admin/login", url.Values{"password": {"hunter2"}})
	assert.Contains(t, body, "AUTHENTICATED")
}

func TestAdminLoginAndLogout(t *testing.T) {
	app := newTestApp(t)
	app.get("/admin")

	status, body := app.post("/admin/login", url.Values{"password": {"shop"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "INCORRECT PASSWORD")
	assert.Contains(t, body, "ADMIN LOGIN")

	_, body = app.post("/admin/login", url.Values{"password": {"SHOP"}})
	assert.Contains(t, body, "AUTHENTICATED")
	assert.Contains(t, body, "PRODUCTS (0)")

	_, body = app.post("/admin/logout", nil)
	assert.Contains(t, body, "ADMIN LOGIN")
}

func TestAdminMutationsRequireLogin(t *testing.T) {
	app := newTestApp(t)

	_, body := app.post("/admin/products", url.Values{"name": {"Tee"}, "price": {"20"}, "category": {"Tops"}})
	assert.Contains(t, body, "ADMIN LOGIN")
	assert.Empty(t, app.products())
}

func TestProductLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.login()

	_, body := app.post("/admin/products", url.Values{
		"name":     {"Tee"},
		"price":    {"20"},
		"category": {"Tops"},
		"sizes":    {"S, M"},
		"in_stock": {"on"},
	})
	assert.Contains(t, body, "PRODUCT ADDED")
	assert.Contains(t, body, "PRODUCTS (1)")

	products := app.products()
	require.Len(t, products, 1)
	id := products[0].ID
	assert.Equal(t, "1700000000001", id)
	assert.Equal(t, []string{"S", "M"}, products[0].Sizes)
	assert.Equal(t, []string{}, products[0].Images)

	status, body := app.get("/product/" + id)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Tee")

	_, body = app.get("/admin/products/" + id + "/edit")
	assert.Contains(t, body, "EDIT PRODUCT")
	assert.Contains(t, body, `value="S, M"`)
	assert.Contains(t, body, `name="editing_id" value="`+id+`"`)

	_, body = app.post("/admin/products", url.Values{
		"editing_id": {id},
		"name":       {"Tee v2"},
		"price":      {"25.5"},
		"category":   {"Tops"},
		"sizes":      {"S, M, L"},
	})
	assert.Contains(t, body, "PRODUCT UPDATED")
	assert.Contains(t, body, "ADD PRODUCT")

	products = app.products()
	require.Len(t, products, 1)
	assert.Equal(t, domain.Product{
		ID:       id,
		Name:     "Tee v2",
		Price:    25.5,
		Category: "Tops",
		Sizes:    []string{"S", "M", "L"},
		Images:   []string{},
		InStock:  false,
	}, products[0])

	_, body = app.post("/admin/products/"+id+"/delete", nil)
	assert.Contains(t, body, "PRODUCT DELETED")
	assert.Contains(t, body, "PRODUCTS (0)")

	status, body = app.get("/product/" + id)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "PRODUCT NOT FOUND")
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	app := newTestApp(t)
	app.login()

	status, body := app.post("/admin/products", url.Values{
		"name":     {"  "},
		"price":    {"20"},
		"category": {"Tops"},
		"sizes":    {"S, M"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "INVALID PRODUCT")
	assert.Contains(t, body, domain.ErrInvalidProductName.Error())
	assert.Contains(t, body, `value="S, M"`)
	assert.Empty(t, app.products())
}

func TestEditUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	app.login()

	_, body := app.get("/admin/products/nope/edit")
	assert.Contains(t, body, "PRODUCT NOT FOUND")
	assert.Contains(t, body, "ADD PRODUCT")
}

func TestAddToCart(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.ReplaceAll(context.Background(), []domain.Product{
		{ID: "1", Name: "Tee", Price: 20, Category: "Tops", Sizes: []string{"S", "M"}, Images: []string{}, InStock: true},
		{ID: "2", Name: "Mug", Price: 9, Category: "Home", Sizes: []string{}, Images: []string{}, InStock: true},
		{ID: "3", Name: "Cap", Price: 15, Category: "Hats", Sizes: []string{}, Images: []string{}, InStock: false},
	}))

	_, body := app.post("/product/1/cart", nil)
	assert.Contains(t, body, "SELECT SIZE")
	assert.Contains(t, body, "Please select a size before adding to cart")

	_, body = app.post("/product/1/cart", url.Values{"size": {"M"}})
	assert.Contains(t, body, "ADDED TO CART")
	assert.Contains(t, body, "Tee - Size M")
	assert.Contains(t, body, `value="M" checked`)

	_, body = app.post("/product/2/cart", nil)
	assert.Contains(t, body, "ADDED TO CART")

	_, body = app.post("/product/3/cart", nil)
	assert.Contains(t, body, "is currently unavailable")

	status, _ := app.post("/product/9/cart", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestShopAndDetailPages(t *testing.T) {
	app := newTestApp(t)

	_, body := app.get("/shop")
	assert.Contains(t, body, "NO PRODUCTS AVAILABLE")

	require.NoError(t, app.store.ReplaceAll(context.Background(), []domain.Product{
		{ID: "1", Name: "Tee", Price: 20, Category: "Tops", Images: []string{"a.jpg", "b.jpg"}, InStock: true},
	}))

	_, body = app.get("/shop")
	assert.Contains(t, body, `href="/product/1"`)

	_, body = app.get("/product/1?image=1")
	assert.Contains(t, body, `src="b.jpg" alt="Tee"`)

	_, body = app.get("/product/1?image=7")
	assert.Contains(t, body, `src="a.jpg" alt="Tee"`)
}

func TestCorruptCatalogAnswers500(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.kv.Set(context.Background(), kvstore.ProductsKey, "{not json"))

	status, body := app.get("/shop")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "SOMETHING WENT WRONG")

	status, _ = app.get("/api/products")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestProductAPI(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.store.ReplaceAll(context.Background(), []domain.Product{
		{ID: "1", Name: "Tee", Price: 20, Category: "Tops", InStock: true},
	}))

	status, body := app.get("/api/products")
	assert.Equal(t, http.StatusOK, status)

	var records []dto.ProductRecord
	require.NoError(t, jsoniter.Unmarshal([]byte(body), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Tee", records[0].Name)
	assert.Contains(t, body, `"sizes":[]`)
	assert.Contains(t, body, `"inStock":true`)

	status, body = app.get("/api/products/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.True(t, strings.Contains(body, `"error":"not_found"`))
}

func TestHealthAndUnknownPath(t *testing.T) {
	app := newTestApp(t)

	status, body := app.get("/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	status, body = app.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "PAGE NOT FOUND")
}

// firstMatch returns the unescaped first capture of pattern in body
func firstMatch(t *testing.T, body, pattern string) string {
	t.Helper()
	m := regexp.MustCompile(pattern).FindStringSubmatch(body)
	require.Len(t, m, 2, "no match for %s", pattern)
	return html.UnescapeString(m[1])
}

func TestReservedCharacterIDsAreReachable(t *testing.T) {
	for _, id := range []string{"a/b", "x?y", "q#1", "50%", "a b/c?d"} {
		t.Run(id, func(t *testing.T) {
			app := newTestApp(t)
			require.NoError(t, app.store.ReplaceAll(context.Background(), []domain.Product{
				{ID: id, Name: "Odd", Price: 5, Category: "Misc", Sizes: []string{"S"}, Images: []string{}, InStock: true},
			}))

			_, body := app.get("/shop")
			detail := firstMatch(t, body, `href="(/product/[^"]+)"`)
			status, body := app.get(detail)
			require.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, "Odd")

			cart := firstMatch(t, body, `action="(/product/[^"]+/cart)"`)
			_, body = app.post(cart, url.Values{"size": {"S"}})
			assert.Contains(t, body, "Odd - Size S")

			app.login()
			_, body = app.get("/admin")
			edit := firstMatch(t, body, `href="(/admin/products/[^"]+/edit)"`)
			_, body = app.get(edit)
			assert.Contains(t, body, "EDIT PRODUCT")

			_, body = app.get("/admin")
			del := firstMatch(t, body, `action="(/admin/products/[^"]+/delete)"`)
			status, body = app.post(del, nil)
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, "PRODUCT DELETED")
			assert.Empty(t, app.products())
		})
	}
}
