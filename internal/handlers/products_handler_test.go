package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ant-man74/HeraWebMono/internal/catalog"
)

func TestCreateProductRejectsPresetID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/products", catalog.Product{ID: "p-1", Name: "Trail Runner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, env.dynamo.Calls(testProductsTable).Put)
}

func TestUpdateProductRequiresID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/products", catalog.Product{Name: "Trail Runner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/products", map[string]interface{}{
		"price":    -1.0,
		"quantity": 3,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errs, ok := resp["errors"].(map[string]interface{})
	require.True(t, ok, "expected field errors, got %v", resp)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
}

func TestCreateThenGetProduct(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, catalog.Product{Name: "Trail Runner", Price: 49.9})
	require.NotEmpty(t, created.ID)

	w := env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Trail Runner", got.Name)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, catalog.Product{Name: "Trail Runner", Price: 49.9})
	created.Price = 39.9
	w := env.do(t, http.MethodPut, "/api/products", created)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 39.9, got.Price)
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	created := env.createProduct(t, catalog.Product{Name: "Trail Runner"})

	w := env.do(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListProductsPaginationHeaders(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"A", "B", "C"} {
		env.createProduct(t, catalog.Product{Name: name})
	}

	w := env.do(t, http.MethodGet, "/api/products?page=0&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-Total-Count"))
	assert.Contains(t, w.Header().Get("Link"), `rel="last"`)

	var items []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestListProductsFiltered(t *testing.T) {
	env := newTestEnv(t)

	seedCatalog(t, env)

	w := env.do(t, http.MethodGet, "/api/products?categories=shoes&name=run&priceFrom=10&priceTo=50", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Trail Runner", items[0].Name)
}

func TestListProductsFilteredPartialQuery(t *testing.T) {
	env := newTestEnv(t)

	seedCatalog(t, env)

	// a price ceiling alone still filters; the other predicates stay open
	w := env.do(t, http.MethodGet, "/api/products?priceTo=20", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Running Belt", items[0].Name)
}

func TestListProductsFilteredBadPrice(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products?priceFrom=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProductsByCategory(t *testing.T) {
	env := newTestEnv(t)

	seedCatalog(t, env)

	w := env.do(t, http.MethodGet, "/api/products/category/shoes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "2", w.Header().Get("X-Total-Count"))
}

func TestListProductsByBasket(t *testing.T) {
	env := newTestEnv(t)

	p1 := env.createProduct(t, catalog.Product{Name: "A"})
	env.createProduct(t, catalog.Product{Name: "B"})

	w := env.do(t, http.MethodGet, "/api/products/basket?ids="+p1.ID+",p-404", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, p1.ID, items[0].ID)
}

func TestListProductsByBasketRequiresIDs(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products/basket", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProductsByName(t *testing.T) {
	env := newTestEnv(t)

	seedCatalog(t, env)

	w := env.do(t, http.MethodGet, "/api/products/name/RUNNER", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Trail Runner", items[0].Name)
}

func seedCatalog(t *testing.T, env *testEnv) {
	t.Helper()
	for _, p := range []catalog.Product{
		{Name: "Trail Runner", Price: 39.9, Categories: []string{"shoes"}},
		{Name: "City Loafer", Price: 29.9, Categories: []string{"shoes"}},
		{Name: "Running Belt", Price: 19.9, Categories: []string{"gear"}},
		{Name: "Rain Jacket", Price: 89.9, Categories: []string{"apparel"}},
	} {
		env.createProduct(t, p)
	}
}
