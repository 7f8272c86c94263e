package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"scanalyze/internal/gateway"
)

// dashboard returns the local aggregates (per-currency summaries and limit
// status) plus, when a flow service is configured, its analysis. A broken
// flow service degrades the dashboard instead of failing it. Aggregate
// amounts are minor units of their currency.
func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	summaries, err := s.insights.Summary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, err := s.insights.LimitReport(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	body := gin.H{
		"summaries": summaries,
		"limit":     limit,
	}
	analysis, err := s.insights.Analyze(ctx)
	switch {
	case err == nil:
		body["analysis"] = analysis
	case errors.Is(err, gateway.ErrDisabled):
		// No flow service configured, local aggregates only.
	default:
		slog.Warn("Flow analysis unavailable", "error", err)
		body["analysis_error"] = "flow service unavailable"
	}
	c.JSON(http.StatusOK, body)
}

// taxReport sums GST per receipt. Amounts are minor units; ?currency overrides
// the settings limit currency.
func (s *Server) taxReport(c *gin.Context) {
	report, err := s.insights.TaxReport(c.Request.Context(), c.Query("currency"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) exportTaxReport(c *gin.Context) {
	ref, err := s.insights.ExportTaxReport(c.Request.Context(), c.Query("currency"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ref": ref})
}

func (s *Server) inventory(c *gin.Context) {
	stats, err := s.insights.Inventory(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": stats})
}

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	resp, err := s.insights.Chat(c.Request.Context(), req.Question)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
