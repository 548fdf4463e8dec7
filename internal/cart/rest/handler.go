package rest

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prasetya/cart-service/internal/cart/app"
	"github.com/prasetya/cart-service/internal/cart/domain"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// NewRouter builds the gin engine for the service. ready is consulted by
// /readyz; pass nil to always report ready.
func NewRouter(h *Handler, log *slog.Logger, ready func(ctx context.Context) error) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/getOrGenerate", h.GetOrGenerate)
	r.POST("/add", h.Add)
	r.GET("/summary", h.Summary)
	r.DELETE("/items/:productId", h.RemoveItem)
	r.DELETE("/items", h.Clear)

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "not ready"})
				return
			}
		}
		c.Status(http.StatusOK)
	})

	return r
}

func (h *Handler) GetOrGenerate(c *gin.Context) {
	cart, err := h.svc.GetOrCreate(c.Request.Context(), c.Query("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

type addRequest struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", "malformed request body"))
		return
	}

	if strings.TrimSpace(req.ProductID) == "" {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", "productId is required"))
		return
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", err.Error()))
		return
	}

	cart, err := h.svc.AddProduct(c.Request.Context(), req.ID, req.ProductID, quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) Summary(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", "id is required"))
		return
	}

	priced, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPricedCartResponse(priced))
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", "id is required"))
		return
	}

	cart, err := h.svc.RemoveProduct(c.Request.Context(), id, c.Param("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *Handler) Clear(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_ARGUMENT", "id is required"))
		return
	}

	cart, err := h.svc.ClearCart(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// parseQuantity applies the strict boundary rule: empty means the default of
// 1, anything else must be a base-10 integer of at least 1.
func parseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("quantity must be an integer")
	}
	if n < 1 {
		return 0, errors.New("quantity must be at least 1")
	}
	return n, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
	}
	c.JSON(status, errorBody(code, "request failed"))
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func errorBody(code, message string) gin.H {
	return gin.H{"code": code, "error": message}
}

type cartItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	ID    string             `json:"id"`
	Items []cartItemResponse `json:"items"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return cartResponse{ID: cart.ID, Items: items}
}

type pricedItemResponse struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price,omitempty"`
	Name      string   `json:"name,omitempty"`
	Image     string   `json:"image,omitempty"`
	Total     *float64 `json:"total"`
}

type pricedCartResponse struct {
	ID    string               `json:"id"`
	Items []pricedItemResponse `json:"items"`
	Total *float64             `json:"total"`
}

func toPricedCartResponse(cart domain.PricedCart) pricedCartResponse {
	items := make([]pricedItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, pricedItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     nanToNull(it.Price),
			Name:      it.Name,
			Image:     it.Image,
			Total:     nanToNull(it.Total),
		})
	}
	return pricedCartResponse{
		ID:    cart.ID,
		Items: items,
		Total: nanToNull(cart.Total),
	}
}

// nanToNull maps the missing-product NaN sentinel to JSON null, which is what
// the summary put on the wire historically.
func nanToNull(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}
