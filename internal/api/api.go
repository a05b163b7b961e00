package api

import (
	"context"                  // Context for Redis and lookup calls
	"fmt"                      // Cache key formatting
	"net/http"                 // HTTP status codes
	"obra_system/internal/cep" // Postal code lookup
	"obra_system/internal/utils"
	"time" // Date parsing and lookup timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// dateLayout is the wire format for all date fields
const dateLayout = "2006-01-02"

// currentUserID pulls the authenticated user id the JWT middleware stored in
// the context. Every query is scoped by this value explicitly.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID") // Get userID from context
	if !exists {
		// If not, respond unauthorized; middleware should have aborted already
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint) // Assert stored type
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// parseDate parses a required yyyy-mm-dd field
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseDatePtr parses an optional yyyy-mm-dd field; empty means nil
func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// autofillAddress back-fills empty address fields from a postal code lookup.
// Lookup failure is soft: log and leave the submitted fields untouched.
func autofillAddress(lookup *cep.Client, zip string, address, city, state *string) {
	code, ok := cep.Normalize(zip) // Normalize to 8 digits
	if !ok {
		return // Not a complete postal code, nothing to do
	}
	if *address != "" && *city != "" && *state != "" {
		return // Nothing left to fill
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	found, err := lookup.Lookup(ctx, code) // Resolve the postal code
	if err != nil {
		// Soft failure: not-found and network errors never block the write
		logrus.WithFields(logrus.Fields{
			"cep":   code,
			"error": err.Error(),
		}).Warn("CEP lookup failed")
		return
	}
	cep.FillEmpty(found, address, city, state) // Fill only the empty fields
}

// invalidateFinanceCaches sweeps the cached dashboard and transaction list
// entries of one user after a write
func invalidateFinanceCaches(rdb *redis.Client, userID uint) {
	ctx := context.Background() // Context for Redis operations
	_ = utils.DeleteCachePattern(ctx, rdb, fmt.Sprintf("dashboard:user:%d:*", userID))
	_ = utils.DeleteCachePattern(ctx, rdb, fmt.Sprintf("transactions:user:%d:*", userID))
}

// invalidateDashboardCache sweeps only the cached dashboard entries of one user
func invalidateDashboardCache(rdb *redis.Client, userID uint) {
	ctx := context.Background() // Context for Redis operations
	_ = utils.DeleteCachePattern(ctx, rdb, fmt.Sprintf("dashboard:user:%d:*", userID))
}
