package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pticevod/poultry-ledger/internal/apperr"
	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
)

// writeError maps domain errors to HTTP: validation → 422 with the field
// list, broken references → 404, anything else → 500.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
		return
	}
	if apperr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Error("request failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id " + c.Param("id")})
		return 0, false
	}
	return id, true
}

func toBatchJSON(b *batches.Batch) gin.H {
	return gin.H{
		"id":                b.ID,
		"name":              b.Name,
		"breed":             b.Breed,
		"shed":              b.Shed,
		"startDate":         b.StartDate,
		"status":            b.Status,
		"initialPopulation": b.InitialPopulation,
		"population":        b.Population(),
		"maleCount":         b.MaleCount,
		"femaleCount":       b.FemaleCount,
		"unsexedCount":      b.UnsexedCount,
		"createdAt":         b.CreatedAt,
	}
}

func toActivityJSON(a *activities.Activity) gin.H {
	h := gin.H{
		"id":        a.ID,
		"batchId":   a.BatchID,
		"type":      a.Type,
		"date":      a.Date,
		"createdAt": a.CreatedAt,
	}
	if a.Notes != "" {
		h["notes"] = a.Notes
	}
	switch p := a.Payload.(type) {
	case activities.Mortality:
		h["numberOfDeaths"] = p.NumberOfDeaths
		h["sex"] = p.Sex
	case activities.StatusSwitch:
		h["newStatus"] = p.NewStatus
	case activities.ProductConsumption:
		h["productId"] = p.ProductID
		h["stock"] = p.Quantity
		h["unitOfMeasure"] = p.Unit
	case activities.WeightMeasurement:
		h["averageWeight"] = p.AverageWeight
		h["sampleSize"] = p.SampleSize
		h["unitOfMeasure"] = p.Unit
	}
	return h
}

func toProductJSON(p *products.Product) gin.H {
	return gin.H{
		"id":            p.ID,
		"name":          p.Name,
		"unitOfMeasure": p.Unit,
		"stock":         p.Stock,
		"active":        p.Active,
		"createdAt":     p.CreatedAt,
	}
}
