package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iamsurajx/new-seller-server/models"
	"github.com/iamsurajx/new-seller-server/repository"
	"github.com/iamsurajx/new-seller-server/service"
	"github.com/iamsurajx/new-seller-server/utils"
)

const (
	AllProductsCacheKey = "all_products"
	ProductCacheTTL     = 5 * time.Minute
)

// ProductService is what the handlers need from the lifecycle service;
// tests substitute a fake.
type ProductService interface {
	Create(ctx context.Context, input service.CreateProductInput, image, video *utils.StagedFile) (*models.Product, error)
	Update(ctx context.Context, id string, input service.UpdateProductInput, image, video *utils.StagedFile) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

type ProductController struct {
	svc       ProductService
	cache     *redis.Client
	log       *zap.SugaredLogger
	uploadDir string
}

func NewProductController(svc ProductService, cache *redis.Client, log *zap.SugaredLogger, uploadDir string) *ProductController {
	return &ProductController{svc: svc, cache: cache, log: log, uploadDir: uploadDir}
}

type createProductForm struct {
	Name          string   `form:"product_name" binding:"required"`
	Description   string   `form:"product_description" binding:"required"`
	Category      string   `form:"category" binding:"required"`
	SellerID      string   `form:"seller_id"`
	ProductType   string   `form:"product_type" binding:"required"`
	OriginalPrice *float64 `form:"original_price"`
	SalePrice     float64  `form:"sale_price" binding:"required"`
}

type updateProductForm struct {
	Name          *string  `form:"product_name"`
	Description   *string  `form:"product_description"`
	Category      *string  `form:"category"`
	SellerID      *string  `form:"seller_id"`
	ProductType   *string  `form:"product_type"`
	OriginalPrice *float64 `form:"original_price"`
	SalePrice     *float64 `form:"sale_price"`
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Creates a product from a multipart form with optional image and video parts.
// @Tags products
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.Product
// @Router /add-product [post]
func (h *ProductController) CreateProduct(c *gin.Context) {
	var form createProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	image, err := utils.StageUpload(c, "image", h.uploadDir)
	if err != nil {
		h.stagingError(c, "Failed to create product", err)
		return
	}
	video, err := utils.StageUpload(c, "video", h.uploadDir)
	if err != nil {
		if rerr := image.Remove(); rerr != nil {
			h.log.Warnw("failed to remove staged upload", "error", rerr)
		}
		h.stagingError(c, "Failed to create product", err)
		return
	}

	input := service.CreateProductInput{
		Name:          form.Name,
		Description:   form.Description,
		Category:      form.Category,
		SellerID:      form.SellerID,
		ProductType:   form.ProductType,
		OriginalPrice: form.OriginalPrice,
		SalePrice:     form.SalePrice,
	}

	product, err := h.svc.Create(c.Request.Context(), input, image, video)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product", "details": err.Error()})
		return
	}

	h.invalidateCache(product.ID.Hex())
	c.JSON(http.StatusCreated, product)
}

// GetProducts godoc
// @Summary Get all products
// @Description Get a list of all products, with caching.
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductController) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try to get from cache first
	if h.cache != nil {
		cacheData, err := h.cache.Get(ctx, AllProductsCacheKey).Result()
		if err == nil {
			var products []models.Product
			if json.Unmarshal([]byte(cacheData), &products) == nil {
				c.JSON(http.StatusOK, products)
				return
			}
		}
	}

	// 2. If cache miss, get from DB
	products, err := h.svc.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products", "details": err.Error()})
		return
	}

	// 3. Set to cache for next time (in background)
	if h.cache != nil {
		if productsJSON, err := json.Marshal(products); err == nil {
			go h.cache.Set(context.Background(), AllProductsCacheKey, productsJSON, ProductCacheTTL)
		}
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get a single product by its ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Router /products/{id} [get]
func (h *ProductController) GetProductByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	productCacheKey := "product:" + id

	if h.cache != nil {
		cachedProduct, err := h.cache.Get(ctx, productCacheKey).Result()
		if err == nil {
			var product models.Product
			if json.Unmarshal([]byte(cachedProduct), &product) == nil {
				c.JSON(http.StatusOK, product)
				return
			}
		}
	}

	product, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product", "details": err.Error()})
		return
	}

	if h.cache != nil {
		if productJSON, err := json.Marshal(product); err == nil {
			go h.cache.Set(context.Background(), productCacheKey, productJSON, ProductCacheTTL)
		}
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct godoc
// @Summary Update an existing product
// @Description Partial update from a multipart form; new image/video parts replace the stored assets.
// @Tags products
// @Accept mpfd
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Router /products/{id} [put]
func (h *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var form updateProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, bindErrorResponse(err))
		return
	}

	image, err := utils.StageUpload(c, "image", h.uploadDir)
	if err != nil {
		h.stagingError(c, "Failed to update product", err)
		return
	}
	video, err := utils.StageUpload(c, "video", h.uploadDir)
	if err != nil {
		if rerr := image.Remove(); rerr != nil {
			h.log.Warnw("failed to remove staged upload", "error", rerr)
		}
		h.stagingError(c, "Failed to update product", err)
		return
	}

	input := service.UpdateProductInput{
		Name:          form.Name,
		Description:   form.Description,
		Category:      form.Category,
		SellerID:      form.SellerID,
		ProductType:   form.ProductType,
		OriginalPrice: form.OriginalPrice,
		SalePrice:     form.SalePrice,
	}

	product, err := h.svc.Update(c.Request.Context(), id, input, image, video)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}

	h.invalidateCache(id)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Deletes a product and its remote media by ID.
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id} [delete]
func (h *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product", "details": err.Error()})
		return
	}

	h.invalidateCache(id)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// stagingError reports a failure while staging uploads. A body that is not
// multipart/form-data is the client's mistake, not a server fault.
func (h *ProductController) stagingError(c *gin.Context, action string, err error) {
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be multipart/form-data"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": action, "details": err.Error()})
}

// invalidateCache drops the list cache and the per-product entry after a
// mutation. Best effort only.
func (h *ProductController) invalidateCache(id string) {
	if h.cache == nil {
		return
	}
	go h.cache.Del(context.Background(), AllProductsCacheKey, "product:"+id)
}
