// Package api exposes the query pipeline over HTTP. The index and document
// store are read-only for the life of the process, so handlers share one
// Searcher across requests without locking.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"webseek/querier/internal/query"
	"webseek/querier/internal/search"
)

// Stats reports index-level counts for the health endpoint.
type Stats interface {
	NumTerms() int
	NumDocs() uint64
}

// API holds the handlers' shared state.
type API struct {
	searcher *search.Searcher
	stats    Stats
}

// SetupRoutes registers the search API on the router. stats may be nil.
func SetupRoutes(router *gin.Engine, searcher *search.Searcher, stats Stats) {
	api := &API{searcher: searcher, stats: stats}
	router.GET("/search", api.SearchHandler)
	router.GET("/healthz", api.HealthHandler)
}

// SearchHandler answers GET /search?q=<query>.
func (api *API) SearchHandler(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter 'q'"})
		return
	}

	resp, err := api.searcher.Run(q)
	if err != nil {
		var synErr *query.SyntaxError
		if errors.As(err, &synErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": synErr.Msg})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   resp.Query,
		"count":   len(resp.Results),
		"results": resp.Results,
	})
}

// HealthHandler answers GET /healthz with index stats.
func (api *API) HealthHandler(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if api.stats != nil {
		body["terms"] = api.stats.NumTerms()
		body["docs"] = api.stats.NumDocs()
	}
	c.JSON(http.StatusOK, body)
}
