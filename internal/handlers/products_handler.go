package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Ant-man74/HeraWebMono/internal/catalog"
	"github.com/Ant-man74/HeraWebMono/internal/httperr"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
	"github.com/Ant-man74/HeraWebMono/internal/service"
	"github.com/Ant-man74/HeraWebMono/internal/validation"
)

// ProductsHandler handles product-related HTTP requests.
type ProductsHandler struct {
	svc      *service.ProductService
	validate *validatorv10.Validate
	logger   *slog.Logger
}

func NewProductsHandler(svc *service.ProductService, v *validatorv10.Validate, logger *slog.Logger) *ProductsHandler {
	return &ProductsHandler{svc: svc, validate: v, logger: logger}
}

// Create handles POST /api/products. The body must not carry an id.
func (h *ProductsHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var payload validation.ProductPayload
	if err := validation.BindAndValidate(c, &payload, h.validate); err != nil {
		return
	}
	if payload.ID != "" {
		httperr.Write(c, http.StatusBadRequest, "a new product cannot already have an id")
		return
	}

	saved, err := h.svc.Save(ctx, payload.Product())
	if err != nil {
		h.logger.Error("create product", "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to save product")
		return
	}

	c.Header("Location", "/api/products/"+saved.ID)
	c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /api/products. The body must carry an id.
func (h *ProductsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var payload validation.ProductPayload
	if err := validation.BindAndValidate(c, &payload, h.validate); err != nil {
		return
	}
	if payload.ID == "" {
		httperr.Write(c, http.StatusBadRequest, "invalid id")
		return
	}

	saved, err := h.svc.Save(ctx, payload.Product())
	if err != nil {
		h.logger.Error("update product", "product_id", payload.ID, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to save product")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// List handles GET /api/products. The categories, name, priceFrom and
// priceTo query parameters filter conjunctively when present.
func (h *ProductsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	req := pagination.FromQuery(c.Request.URL.Query())

	categories := splitCSV(c.QueryArray("categories"))
	name := c.Query("name")
	fromStr, toStr := c.Query("priceFrom"), c.Query("priceTo")

	var (
		page pagination.Page[catalog.Product]
		err  error
	)
	if len(categories) == 0 && name == "" && fromStr == "" && toStr == "" {
		page, err = h.svc.FindAll(ctx, req)
	} else {
		from := 0.0
		to := math.MaxFloat64
		if fromStr != "" {
			if from, err = strconv.ParseFloat(fromStr, 64); err != nil {
				httperr.Write(c, http.StatusBadRequest, "invalid priceFrom")
				return
			}
		}
		if toStr != "" {
			if to, err = strconv.ParseFloat(toStr, 64); err != nil {
				httperr.Write(c, http.StatusBadRequest, "invalid priceTo")
				return
			}
		}
		page, err = h.svc.FindFiltered(ctx, categories, name, from, to, req)
	}
	if err != nil {
		h.logger.Error("list products", "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to list products")
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page, "/api/products")
	c.JSON(http.StatusOK, page.Items)
}

// Get handles GET /api/products/:id. Absent products yield a bare 404.
func (h *ProductsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	p, err := h.svc.FindOne(ctx, id)
	if err != nil {
		h.logger.Error("get product", "product_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to get product")
		return
	}
	if p == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/products/:id. Deleting an absent id still
// returns 200.
func (h *ProductsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.svc.Delete(ctx, id); err != nil {
		h.logger.Error("delete product", "product_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to delete product")
		return
	}
	c.Status(http.StatusOK)
}

// ListByCategory handles GET /api/products/category/:category.
func (h *ProductsHandler) ListByCategory(c *gin.Context) {
	ctx := c.Request.Context()
	req := pagination.FromQuery(c.Request.URL.Query())
	category := c.Param("category")

	page, err := h.svc.FindCategory(ctx, category, req)
	if err != nil {
		h.logger.Error("list products by category", "category", category, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to list products")
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page, "/api/products/category/"+category)
	c.JSON(http.StatusOK, page.Items)
}

// ListByBasket handles GET /api/products/basket?ids=a,b,c. Results keep
// store order, not the order of ids.
func (h *ProductsHandler) ListByBasket(c *gin.Context) {
	ctx := c.Request.Context()
	req := pagination.FromQuery(c.Request.URL.Query())

	ids := splitCSV(c.QueryArray("ids"))
	if len(ids) == 0 {
		httperr.Write(c, http.StatusBadRequest, "ids is required")
		return
	}

	page, err := h.svc.FindByBasket(ctx, ids, req)
	if err != nil {
		h.logger.Error("list products by basket", "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to list products")
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page, "/api/products/basket")
	c.JSON(http.StatusOK, page.Items)
}

// ListByName handles GET /api/products/name/:name, a case-insensitive
// substring match.
func (h *ProductsHandler) ListByName(c *gin.Context) {
	ctx := c.Request.Context()
	req := pagination.FromQuery(c.Request.URL.Query())
	name := c.Param("name")

	page, err := h.svc.FindByName(ctx, name, req)
	if err != nil {
		h.logger.Error("list products by name", "name", name, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to list products")
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page, "/api/products/name/"+name)
	c.JSON(http.StatusOK, page.Items)
}

// splitCSV flattens repeated query values and splits comma-separated entries.
func splitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
