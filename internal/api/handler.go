package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/middleware"
	"github.com/guttosm/coinpulse/internal/service"
)

// FetchFailedMessage is the error text returned when no fallback can serve a request.
const FetchFailedMessage = "Failed to fetch data"

// Handler provides the HTTP handler for the aggregated market data endpoint.
//
// Responsibilities:
//   - Delegate to the aggregation service (cache, live fetch, fallbacks)
//   - Map the outcome to an HTTP status and JSON body
type Handler struct {
	svc service.CryptoDataService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.CryptoDataService) *Handler {
	return &Handler{svc: svc}
}

// GetCryptoData handles /api/crypto-data.
//
// CORS headers and the OPTIONS pre-flight are handled by middleware; every other
// method reaches this handler.
//
// Responses:
//   - 200 OK: AggregatedData; inspect cached/cacheAge/error/mock for provenance.
//   - 500 Internal Server Error: upstream failed and nothing is cached.
//
// GetCryptoData godoc
// @Summary      Aggregated crypto market data
// @Description  Global market snapshot, tracked coin prices and 24h hourly bitcoin chart, cached for 60 seconds
// @Tags         market
// @Produce      json
// @Success      200  {object}  models.AggregatedData  "Fresh, cached, stale or mock data"
// @Failure      500  {object}  dto.ErrorResponse      "Upstream failed and no cache is available"
// @Router       /api/crypto-data [get]
func (h *Handler) GetCryptoData(c *gin.Context) {
	data, err := h.svc.GetCryptoData(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, FetchFailedMessage, err)
		return
	}

	c.Set(middleware.CacheStatusKey, cacheStatus(data))
	c.JSON(http.StatusOK, data)
}

func cacheStatus(d *models.AggregatedData) string {
	switch {
	case d.Mock:
		return "mock"
	case d.Cached && d.Error != "":
		return "stale"
	case d.Cached:
		return "hit"
	default:
		return "fresh"
	}
}
