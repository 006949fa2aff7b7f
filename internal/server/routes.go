// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-brief/pkg/types"
)

const (
	msgMissingQuery = "Missing 'query' in request body."
	msgInternal     = "Internal server error"
)

// searchRequest is the body of POST /api/search.
type searchRequest struct {
	Query string `json:"query"`
}

// searchResponse is the body of a successful POST /api/search.
type searchResponse struct {
	Papers []types.EnrichedPaper `json:"papers"`
}

// RegisterSearchRoutes registers the search endpoint.
func RegisterSearchRoutes(r *gin.Engine, s *Server) {
	r.POST("/api/search", s.handleSearch)
}

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingQuery})
		return
	}

	papers, err := s.enricher.Handle(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, types.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingQuery})
			return
		}
		s.logger.Error("search request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
		return
	}

	if papers == nil {
		papers = []types.EnrichedPaper{}
	}
	c.JSON(http.StatusOK, searchResponse{Papers: papers})
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
