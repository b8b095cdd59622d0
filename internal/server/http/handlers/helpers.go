package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/server/http/middleware"
)

// CurrentUser extracts the authenticated account from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

// CurrentMarket extracts the selected market from context.
func CurrentMarket(c *gin.Context) model.Market {
	val, ok := c.Get(middleware.MarketContextKey)
	if !ok {
		return model.MarketRO
	}
	market, _ := val.(model.Market)
	return market
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var ve *domainErrors.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Error()})
	case errors.Is(err, domainErrors.ErrNoOrdersAvailable):
		c.Status(http.StatusNoContent)
	case errors.Is(err, domainErrors.ErrOrderNotAvailable),
		errors.Is(err, domainErrors.ErrAlreadyHoldingOrder),
		errors.Is(err, domainErrors.ErrNotHoldingOrder),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.Status(http.StatusUnauthorized)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// parseInterval reads the from/to query parameters as RFC 3339 timestamps.
// A missing "to" defaults to now, a missing "from" to 30 days before "to".
func parseInterval(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now()
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, domainErrors.NewValidationError("to", "must be RFC 3339")
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -30)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, domainErrors.NewValidationError("from", "must be RFC 3339")
		}
		from = parsed
	}

	return from, to, nil
}
