package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/domain/model"
)

const (
	// MarketContextKey is a gin context key for the selected market.
	MarketContextKey = "market"
	marketHeader     = "X-Market"
)

// MarketSelector resolves the market partition for the request from the
// X-Market header. An absent header selects the default market; an unknown
// value is rejected before any handler runs.
func MarketSelector() gin.HandlerFunc {
	return func(c *gin.Context) {
		market := model.MarketRO
		if value := c.GetHeader(marketHeader); value != "" {
			market = model.Market(value)
			if !market.Valid() {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown market"})
				return
			}
		}
		c.Set(MarketContextKey, market)
		c.Next()
	}
}
