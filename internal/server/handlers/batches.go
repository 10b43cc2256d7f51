package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pticevod/poultry-ledger/internal/apperr"
	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
	"github.com/pticevod/poultry-ledger/internal/domain/units"
	"github.com/pticevod/poultry-ledger/internal/service/batchops"
	"github.com/pticevod/poultry-ledger/internal/service/reports"
)

// BatchHandler exposes batch commands and reads. Commands go through the
// batchops service; plain reads hit the repos directly.
type BatchHandler struct {
	svc        *batchops.Service
	batches    *batches.Repo
	products   *products.Repo
	activities *activities.Repo
	log        *slog.Logger
}

func NewBatchHandler(svc *batchops.Service, batchRepo *batches.Repo, productRepo *products.Repo,
	activityRepo *activities.Repo, log *slog.Logger) *BatchHandler {
	return &BatchHandler{svc: svc, batches: batchRepo, products: productRepo, activities: activityRepo, log: log}
}

type createBatchRequest struct {
	Name         string    `json:"name"`
	Breed        string    `json:"breed"`
	Shed         string    `json:"shed"`
	StartDate    time.Time `json:"startDate"`
	MaleCount    int       `json:"maleCount"`
	FemaleCount  int       `json:"femaleCount"`
	UnsexedCount int       `json:"unsexedCount"`
}

func (h *BatchHandler) Create(c *gin.Context) {
	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	b, err := h.svc.CreateBatch(c.Request.Context(), batchops.CreateBatchInput{
		Name:         req.Name,
		Breed:        req.Breed,
		Shed:         req.Shed,
		StartDate:    req.StartDate,
		MaleCount:    req.MaleCount,
		FemaleCount:  req.FemaleCount,
		UnsexedCount: req.UnsexedCount,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toBatchJSON(b))
}

func (h *BatchHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.batches.GetByID(c.Request.Context(), id, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if b == nil {
		writeError(c, h.log, apperr.NotFound("batch", id))
		return
	}
	c.JSON(http.StatusOK, toBatchJSON(b))
}

func (h *BatchHandler) List(c *gin.Context) {
	list, err := h.batches.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, toBatchJSON(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

type renameBatchRequest struct {
	Name string `json:"name"`
}

func (h *BatchHandler) Rename(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req renameBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	b, err := h.svc.RenameBatch(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toBatchJSON(b))
}

type mortalityRequest struct {
	NumberOfDeaths int       `json:"numberOfDeaths"`
	Sex            string    `json:"sex"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes"`
}

func (h *BatchHandler) RegisterMortality(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req mortalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	act, err := h.svc.RegisterMortality(c.Request.Context(), batchops.MortalityInput{
		BatchID:        id,
		NumberOfDeaths: req.NumberOfDeaths,
		Sex:            batches.Sex(req.Sex),
		Date:           req.Date,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toActivityJSON(act))
}

type statusSwitchRequest struct {
	NewStatus string    `json:"newStatus"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

func (h *BatchHandler) SwitchStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusSwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	act, err := h.svc.SwitchStatus(c.Request.Context(), batchops.StatusSwitchInput{
		BatchID:   id,
		NewStatus: batches.Status(req.NewStatus),
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toActivityJSON(act))
}

type consumptionRequest struct {
	ProductID     int64     `json:"productId"`
	Stock         float64   `json:"stock"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes"`
}

func (h *BatchHandler) RegisterConsumption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req consumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	act, err := h.svc.RegisterConsumption(c.Request.Context(), batchops.ConsumptionInput{
		BatchID:   id,
		ProductID: req.ProductID,
		Quantity:  req.Stock,
		Unit:      units.Unit(req.UnitOfMeasure),
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toActivityJSON(act))
}

type weightRequest struct {
	AverageWeight float64   `json:"averageWeight"`
	SampleSize    int       `json:"sampleSize"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes"`
}

func (h *BatchHandler) RegisterWeight(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req weightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	act, err := h.svc.RegisterWeight(c.Request.Context(), batchops.WeightInput{
		BatchID:       id,
		AverageWeight: req.AverageWeight,
		SampleSize:    req.SampleSize,
		Unit:          units.Unit(req.UnitOfMeasure),
		Date:          req.Date,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toActivityJSON(act))
}

func (h *BatchHandler) ListActivities(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.batches.GetByID(c.Request.Context(), id, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if b == nil {
		writeError(c, h.log, apperr.NotFound("batch", id))
		return
	}
	acts, err := h.activities.ListByBatch(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]gin.H, 0, len(acts))
	for i := range acts {
		out = append(out, toActivityJSON(&acts[i]))
	}
	c.JSON(http.StatusOK, out)
}

// LedgerReport streams the batch ledger as an xlsx workbook.
func (h *BatchHandler) LedgerReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	b, err := h.batches.GetByID(ctx, id, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if b == nil {
		writeError(c, h.log, apperr.NotFound("batch", id))
		return
	}
	acts, err := h.activities.ListByBatch(ctx, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	prods, err := h.products.List(ctx, false)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	names := make(map[int64]string, len(prods))
	for _, p := range prods {
		names[p.ID] = p.Name
	}

	f, err := reports.BuildLedgerXLSX(b, acts, names)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=batch_%d_ledger.xlsx", b.ID))
	if err := f.Write(c.Writer); err != nil {
		h.log.Error("report write failed", "batch", b.ID, "err", err)
	}
}
