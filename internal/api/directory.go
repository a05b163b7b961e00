package api

import (
	"net/http"                       // HTTP status codes
	"obra_system/internal/directory" // Static supplier directory

	"github.com/gin-gonic/gin" // Gin web framework
)

// DirectoryHandler returns the directory rows matching the query facets
func DirectoryHandler(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		suppliers := dir.Find(directory.Filter{
			Rede:      c.Query("rede"),
			Bairro:    c.Query("bairro"),
			Municipio: c.Query("municipio"),
			UF:        c.Query("uf"),
			Query:     c.Query("q"),
		})
		c.JSON(http.StatusOK, gin.H{
			"suppliers": suppliers,
			"total":     len(suppliers),
		})
	}
}

// DirectoryFacetsHandler returns the distinct filter values of the directory
func DirectoryFacetsHandler(dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dir.Facets())
	}
}
