package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Ant-man74/HeraWebMono/internal/catalog"
	"github.com/Ant-man74/HeraWebMono/internal/httperr"
	"github.com/Ant-man74/HeraWebMono/internal/orders"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
	"github.com/Ant-man74/HeraWebMono/internal/pdf"
	"github.com/Ant-man74/HeraWebMono/internal/service"
	"github.com/Ant-man74/HeraWebMono/internal/validation"
)

// OrderAndProducts pairs an order with its resolved products, in basket-item
// order. Built per request, never persisted.
type OrderAndProducts struct {
	Order    orders.Order      `json:"order"`
	Products []catalog.Product `json:"products"`
}

// OrdersHandler handles order-related HTTP requests.
type OrdersHandler struct {
	svc      *service.OrderService
	products *service.ProductService
	renderer *pdf.Renderer
	validate *validatorv10.Validate
	logger   *slog.Logger
}

func NewOrdersHandler(svc *service.OrderService, products *service.ProductService, renderer *pdf.Renderer, v *validatorv10.Validate, logger *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		svc:      svc,
		products: products,
		renderer: renderer,
		validate: v,
		logger:   logger,
	}
}

// Create handles POST /api/orders. The body must not carry an id.
func (h *OrdersHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var payload validation.OrderPayload
	if err := validation.BindAndValidate(c, &payload, h.validate); err != nil {
		return
	}
	if payload.ID != "" {
		httperr.Write(c, http.StatusBadRequest, "a new order cannot already have an id")
		return
	}

	saved, err := h.svc.Save(ctx, payload.Order())
	if err != nil {
		h.logger.Error("create order", "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to save order")
		return
	}

	c.Header("Location", "/api/orders/"+saved.ID)
	c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /api/orders. The body must carry an id.
func (h *OrdersHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var payload validation.OrderPayload
	if err := validation.BindAndValidate(c, &payload, h.validate); err != nil {
		return
	}
	if payload.ID == "" {
		httperr.Write(c, http.StatusBadRequest, "invalid id")
		return
	}

	saved, err := h.svc.Save(ctx, payload.Order())
	if err != nil {
		h.logger.Error("update order", "order_id", payload.ID, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to save order")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// List handles GET /api/orders with pagination headers.
func (h *OrdersHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	req := pagination.FromQuery(c.Request.URL.Query())

	page, err := h.svc.FindAll(ctx, req)
	if err != nil {
		h.logger.Error("list orders", "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to list orders")
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page, "/api/orders")
	c.JSON(http.StatusOK, page.Items)
}

// Get handles GET /api/orders/:id. Absent orders yield a bare 404.
func (h *OrdersHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	o, err := h.svc.FindOne(ctx, id)
	if err != nil {
		h.logger.Error("get order", "order_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to get order")
		return
	}
	if o == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GetPDF handles GET /api/orders/pdf/:id, returning the receipt document.
func (h *OrdersHandler) GetPDF(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	o, err := h.svc.FindOne(ctx, id)
	if err != nil {
		h.logger.Error("get order for pdf", "order_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to get order")
		return
	}
	if o == nil {
		httperr.Write(c, http.StatusNotFound, "order not found")
		return
	}

	doc, err := h.renderer.Receipt(*o)
	if err != nil {
		h.logger.Error("render receipt", "order_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to render receipt")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", o.ID))
	c.Header("Content-Length", strconv.Itoa(len(doc)))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Delete handles DELETE /api/orders/:id. Deleting an absent id still
// returns 200.
func (h *OrdersHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.svc.Delete(ctx, id); err != nil {
		h.logger.Error("delete order", "order_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to delete order")
		return
	}
	c.Status(http.StatusOK)
}

// GetWithProducts handles GET /api/orders/id/:id, returning the order with
// its products resolved in basket-item order. A missing order or a missing
// referenced product yields 404.
func (h *OrdersHandler) GetWithProducts(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	o, err := h.svc.FindOne(ctx, id)
	if err != nil {
		h.logger.Error("get order", "order_id", id, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to get order")
		return
	}
	if o == nil {
		httperr.Write(c, http.StatusNotFound, "order not found")
		return
	}

	products := make([]catalog.Product, 0, len(o.OrderLine))
	for _, item := range o.OrderLine {
		p, err := h.products.FindOne(ctx, item.Prod)
		if err != nil {
			h.logger.Error("resolve basket product", "product_id", item.Prod, "error", err)
			httperr.Write(c, http.StatusInternalServerError, "failed to resolve products")
			return
		}
		if p == nil {
			httperr.Write(c, http.StatusNotFound, "product "+item.Prod+" not found")
			return
		}
		products = append(products, *p)
	}

	c.JSON(http.StatusOK, OrderAndProducts{Order: *o, Products: products})
}

// ListByUser handles GET /api/orders/user/:user, returning one page of the
// user's orders (newest first) with products resolved. Product lookups are
// memoized for the duration of the request so a product shared across orders
// is fetched once. Pagination headers reflect the order page.
func (h *OrdersHandler) ListByUser(c *gin.Context) {
	ctx := c.Request.Context()
	user := c.Param("user")
	req := pagination.FromQuery(c.Request.URL.Query())

	page, err := h.svc.FindOrdersByUser(ctx, user, req)
	if err != nil {
		h.logger.Error("list orders by user", "user", user, "error", err)
		httperr.Write(c, http.StatusInternalServerError, "failed to list orders")
		return
	}

	resolved := map[string]catalog.Product{}
	ret := make([]OrderAndProducts, 0, len(page.Items))
	for _, o := range page.Items {
		products := make([]catalog.Product, 0, len(o.OrderLine))
		for _, item := range o.OrderLine {
			p, ok := resolved[item.Prod]
			if !ok {
				found, err := h.products.FindOne(ctx, item.Prod)
				if err != nil {
					h.logger.Error("resolve basket product", "product_id", item.Prod, "error", err)
					httperr.Write(c, http.StatusInternalServerError, "failed to resolve products")
					return
				}
				if found == nil {
					httperr.Write(c, http.StatusNotFound, "product "+item.Prod+" not found")
					return
				}
				p = *found
				resolved[item.Prod] = p
			}
			products = append(products, p)
		}
		ret = append(ret, OrderAndProducts{Order: o, Products: products})
	}

	pagination.SetHeaders(c.Writer.Header(), page, "/api/orders/user/"+user)
	c.JSON(http.StatusOK, ret)
}
