package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"fleetquote/internal/app/dto"
	quotesapp "fleetquote/internal/app/handlers/quotes"
	"fleetquote/internal/app/policies"
	"fleetquote/internal/app/queries"
	domainquote "fleetquote/internal/domain/quote"
)

// QuoteHandler wires quote queries to HTTP.
type QuoteHandler struct {
	Queries queries.Bus
}

type computeQuoteRequest struct {
	Pickup   time.Time            `json:"pickup"`
	Dropoff  time.Time            `json:"dropoff"`
	Currency string               `json:"currency"`
	Rules    []dto.PricingRule    `json:"rules"`
	Offers   []dto.ActiveOffer    `json:"offers"`
	Extras   []dto.ExtraSelection `json:"extras"`
}

type vehicleQuoteRequest struct {
	Pickup  time.Time         `json:"pickup"`
	Dropoff time.Time         `json:"dropoff"`
	Extras  []extraPickedItem `json:"extras"`
}

type extraPickedItem struct {
	ExtraID  string `json:"extra_id"`
	Quantity int    `json:"quantity"`
}

// Compute quotes a rental against a catalog supplied inline in the body.
func (h QuoteHandler) Compute(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote handler unavailable"})
		return
	}
	var req computeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := quotesapp.ComputeQuoteQuery{
		Pickup:   req.Pickup,
		Dropoff:  req.Dropoff,
		Currency: req.Currency,
		Rules:    req.Rules,
		Offers:   req.Offers,
		Extras:   req.Extras,
	}
	result, err := queries.Ask[quotesapp.ComputeQuoteQuery, dto.PricingInfo](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// VehicleQuote quotes a rental against the stored catalog of one vehicle.
func (h QuoteHandler) VehicleQuote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote handler unavailable"})
		return
	}
	vehicleID := c.Param("id")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle id is required"})
		return
	}
	var req vehicleQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := quotesapp.VehicleQuoteQuery{
		VehicleID: vehicleID,
		Pickup:    req.Pickup,
		Dropoff:   req.Dropoff,
	}
	for _, pick := range req.Extras {
		query.Extras = append(query.Extras, quotesapp.ExtraPick{ExtraID: pick.ExtraID, Quantity: pick.Quantity})
	}
	result, err := queries.Ask[quotesapp.VehicleQuoteQuery, dto.PricingInfo](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// VehicleCatalog returns the stored pricing catalog of one vehicle.
func (h QuoteHandler) VehicleCatalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote handler unavailable"})
		return
	}
	vehicleID := c.Param("id")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle id is required"})
		return
	}
	query := quotesapp.GetCatalogQuery{VehicleID: vehicleID}
	result, err := queries.Ask[quotesapp.GetCatalogQuery, dto.VehicleCatalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondQuoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondQuoteError maps domain errors onto HTTP statuses: caller mistakes
// are 400, missing catalogs 404, misconfigured catalogs 422.
func respondQuoteError(c *gin.Context, err error) {
	var noRule domainquote.NoRuleError
	var ambiguous domainquote.AmbiguousRuleError
	var badQuantity domainquote.InvalidQuantityError
	switch {
	case errors.Is(err, domainquote.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &badQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": badQuantity.Error(), "extra_id": badQuantity.ExtraID})
	case errors.Is(err, quotesapp.ErrUnknownExtra):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, policies.ErrCatalogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &noRule):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": noRule.Error(), "day": noRule.Day.String()})
	case errors.As(err, &ambiguous):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ambiguous.Error(), "day": ambiguous.Day.String(), "rule_ids": ambiguous.RuleIDs})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ QuoteHTTP = QuoteHandler{}
