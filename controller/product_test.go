package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/iamsurajx/new-seller-server/models"
	"github.com/iamsurajx/new-seller-server/repository"
	"github.com/iamsurajx/new-seller-server/service"
	"github.com/iamsurajx/new-seller-server/utils"
)

type fakeProductService struct {
	products   map[string]*models.Product
	lastCreate *service.CreateProductInput
	lastImage  *utils.StagedFile
	lastVideo  *utils.StagedFile
	deletedIDs []string
	listCalls  int
}

func newFakeProductService() *fakeProductService {
	return &fakeProductService{products: map[string]*models.Product{}}
}

func (f *fakeProductService) Create(_ context.Context, input service.CreateProductInput, image, video *utils.StagedFile) (*models.Product, error) {
	f.lastCreate = &input
	f.lastImage = image
	f.lastVideo = video
	product := &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		SalePrice: input.SalePrice,
	}
	f.products[product.ID.Hex()] = product
	return product, nil
}

func (f *fakeProductService) Update(_ context.Context, id string, _ service.UpdateProductInput, _, _ *utils.StagedFile) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductService) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeProductService) Get(_ context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductService) List(context.Context) ([]models.Product, error) {
	f.listCalls++
	all := []models.Product{}
	for _, p := range f.products {
		all = append(all, *p)
	}
	return all, nil
}

func newProductRouter(t *testing.T, svc ProductService, cache *redis.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := NewProductController(svc, cache, zap.NewNop().Sugar(), t.TempDir())
	router := gin.New()
	router.POST("/add-product", ctrl.CreateProduct)
	router.GET("/products", ctrl.GetProducts)
	router.GET("/products/:id", ctrl.GetProductByID)
	router.PUT("/products/:id", ctrl.UpdateProduct)
	router.DELETE("/products/:id", ctrl.DeleteProduct)
	return router
}

func productRouter(t *testing.T, svc ProductService) *gin.Engine {
	t.Helper()
	return newProductRouter(t, svc, nil)
}

// cachedProductRouter backs the controller with a real Redis client over an
// in-process server so the read-through path is exercised end to end.
func cachedProductRouter(t *testing.T, svc ProductService) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return newProductRouter(t, svc, client), mr
}

func productForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validProductFields() map[string]string {
	return map[string]string{
		"product_name":        "Blue T-Shirt",
		"product_description": "A blue t-shirt",
		"category":            "apparel",
		"product_type":        "physical",
		"sale_price":          "19.99",
	}
}

func TestCreateProductWithoutMedia(t *testing.T) {
	svc := newFakeProductService()
	router := productRouter(t, svc)

	body, contentType := productForm(t, validProductFields())
	req := httptest.NewRequest(http.MethodPost, "/add-product", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastCreate)
	assert.Equal(t, "Blue T-Shirt", svc.lastCreate.Name)
	assert.Equal(t, 19.99, svc.lastCreate.SalePrice)
	assert.Nil(t, svc.lastImage)
	assert.Nil(t, svc.lastVideo)
}

func TestCreateProductValidationFailsFast(t *testing.T) {
	svc := newFakeProductService()
	router := productRouter(t, svc)

	fields := validProductFields()
	delete(fields, "product_name")
	delete(fields, "sale_price")
	body, contentType := productForm(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/add-product", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.lastCreate, "validation must fail before any side effect")

	// Field errors are keyed by the names the client sent.
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "This field is required", resp.Fields["product_name"])
	assert.Equal(t, "This field is required", resp.Fields["sale_price"])
	assert.NotContains(t, resp.Fields, "name")
	assert.NotContains(t, resp.Fields, "salePrice")
}

func TestUpdateProductRejectsNonMultipartBody(t *testing.T) {
	svc := newFakeProductService()
	id := primitive.NewObjectID()
	svc.products[id.Hex()] = &models.Product{ID: id, Name: "One", SalePrice: 5}
	router := productRouter(t, svc)

	req := httptest.NewRequest(http.MethodPut, "/products/"+id.Hex(), bytes.NewBufferString(`{"sale_price": 9.99}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Request body must be multipart/form-data", resp["error"])
}

func TestGetProductByIDNotFound(t *testing.T) {
	router := productRouter(t, newFakeProductService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Product not found", resp["error"])
}

func TestGetProductsReturnsArray(t *testing.T) {
	svc := newFakeProductService()
	id := primitive.NewObjectID()
	svc.products[id.Hex()] = &models.Product{ID: id, Name: "One", SalePrice: 5}
	router := productRouter(t, svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "One", products[0].Name)
}

func TestGetProductsSecondHitServedFromCache(t *testing.T) {
	svc := newFakeProductService()
	id := primitive.NewObjectID()
	svc.products[id.Hex()] = &models.Product{ID: id, Name: "One", SalePrice: 5}
	router, mr := cachedProductRouter(t, svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.listCalls)

	// The fill happens off the request goroutine.
	assert.Eventually(t, func() bool {
		return mr.Exists(AllProductsCacheKey)
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, ProductCacheTTL, mr.TTL(AllProductsCacheKey))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.listCalls, "second read must be served from cache")

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "One", products[0].Name)
}

func TestGetProductByIDServedFromCache(t *testing.T) {
	svc := newFakeProductService() // empty: a cache miss would 404
	router, mr := cachedProductRouter(t, svc)

	id := primitive.NewObjectID()
	cached, err := json.Marshal(models.Product{ID: id, Name: "Cached", SalePrice: 7})
	require.NoError(t, err)
	require.NoError(t, mr.Set("product:"+id.Hex(), string(cached)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/"+id.Hex(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Cached", product.Name)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	svc := newFakeProductService()
	id := primitive.NewObjectID()
	svc.products[id.Hex()] = &models.Product{ID: id, Name: "One", SalePrice: 5}
	router, mr := cachedProductRouter(t, svc)

	require.NoError(t, mr.Set(AllProductsCacheKey, "[]"))
	require.NoError(t, mr.Set("product:"+id.Hex(), "{}"))

	body, contentType := productForm(t, map[string]string{"sale_price": "9.99"})
	req := httptest.NewRequest(http.MethodPut, "/products/"+id.Hex(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Invalidation runs in the background; both entries must go away.
	assert.Eventually(t, func() bool {
		return !mr.Exists(AllProductsCacheKey) && !mr.Exists("product:"+id.Hex())
	}, time.Second, 5*time.Millisecond)
}

func TestDeleteProductInvalidatesCache(t *testing.T) {
	svc := newFakeProductService()
	id := primitive.NewObjectID()
	svc.products[id.Hex()] = &models.Product{ID: id, Name: "One", SalePrice: 5}
	router, mr := cachedProductRouter(t, svc)

	require.NoError(t, mr.Set(AllProductsCacheKey, "[]"))
	require.NoError(t, mr.Set("product:"+id.Hex(), "{}"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/"+id.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Eventually(t, func() bool {
		return !mr.Exists(AllProductsCacheKey) && !mr.Exists("product:"+id.Hex())
	}, time.Second, 5*time.Millisecond)
}

func TestDeleteProduct(t *testing.T) {
	svc := newFakeProductService()
	id := primitive.NewObjectID()
	svc.products[id.Hex()] = &models.Product{ID: id, Name: "One", SalePrice: 5}
	router := productRouter(t, svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/"+id.Hex(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Second delete: the record is gone.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/"+id.Hex(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []string{id.Hex()}, svc.deletedIDs)
}

func TestUpdateProductNotFound(t *testing.T) {
	router := productRouter(t, newFakeProductService())

	body, contentType := productForm(t, map[string]string{"sale_price": "9.99"})
	req := httptest.NewRequest(http.MethodPut, "/products/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
