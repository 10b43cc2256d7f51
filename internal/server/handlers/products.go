package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pticevod/poultry-ledger/internal/apperr"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
	"github.com/pticevod/poultry-ledger/internal/domain/units"
)

// ProductHandler is plain CRUD over the product collaborator; the only
// write that carries a business rule (consumption) lives in batchops.
type ProductHandler struct {
	products *products.Repo
	log      *slog.Logger
}

func NewProductHandler(productRepo *products.Repo, log *slog.Logger) *ProductHandler {
	return &ProductHandler{products: productRepo, log: log}
}

type createProductRequest struct {
	Name          string  `json:"name"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	Stock         float64 `json:"stock"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := &apperr.ValidationError{}
	if req.Name == "" {
		v.Add("name", "is required")
	} else if len(req.Name) > 100 {
		v.Add("name", "must be at most 100 characters, got %d", len(req.Name))
	}
	unit := units.Unit(req.UnitOfMeasure)
	if !unit.Valid() {
		v.Add("unitOfMeasure", "unknown unit %q", req.UnitOfMeasure)
	}
	if req.Stock < 0 {
		v.Add("stock", "must not be negative, got %v", req.Stock)
	}
	if err := v.Err(); err != nil {
		writeError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.products.GetByName(ctx, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if existing != nil {
		v := &apperr.ValidationError{}
		v.Add("name", "product %q already exists", req.Name)
		writeError(c, h.log, v)
		return
	}

	p, err := h.products.Create(ctx, req.Name, unit, req.Stock)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toProductJSON(p))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.products.GetByID(c.Request.Context(), id, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if p == nil {
		writeError(c, h.log, apperr.NotFound("product", id))
		return
	}
	c.JSON(http.StatusOK, toProductJSON(p))
}

func (h *ProductHandler) List(c *gin.Context) {
	onlyActive := c.Query("active") == "true"
	list, err := h.products.List(c.Request.Context(), onlyActive)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, toProductJSON(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

type receiveStockRequest struct {
	Quantity float64 `json:"quantity"`
}

// ReceiveStock books a delivery: a positive adjustment in the native unit.
func (h *ProductHandler) ReceiveStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req receiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Quantity <= 0 {
		v := &apperr.ValidationError{}
		v.Add("quantity", "must be greater than zero, got %v", req.Quantity)
		writeError(c, h.log, v)
		return
	}
	p, err := h.products.AddStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if p == nil {
		writeError(c, h.log, apperr.NotFound("product", id))
		return
	}
	c.JSON(http.StatusOK, toProductJSON(p))
}
