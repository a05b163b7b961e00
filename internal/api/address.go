package api

import (
	"errors"                   // Sentinel error matching
	"net/http"                 // HTTP status codes
	"obra_system/internal/cep" // Postal code lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// AddressLookupHandler resolves a postal code into an address via the lookup
// client
func AddressLookupHandler(lookup *cep.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, ok := cep.Normalize(c.Param("cep"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A postal code has 8 digits"})
			return
		}
		address, err := lookup.Lookup(c.Request.Context(), code)
		if err != nil {
			if errors.Is(err, cep.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Postal code not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Postal code lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}
