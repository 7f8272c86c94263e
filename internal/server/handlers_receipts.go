package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanalyze/internal/models"
)

func (s *Server) createReceipt(c *gin.Context) {
	var req receiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	receipt, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recorded, err := s.receipts.Record(c.Request.Context(), receipt)
	if err != nil {
		writeError(c, err)
		return
	}
	receiptsRecorded.Inc()

	resp, err := toReceiptResponse(*recorded)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) listReceipts(c *gin.Context) {
	receipts, err := s.receipts.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]receiptResponse, 0, len(receipts))
	for _, r := range receipts {
		resp, err := toReceiptResponse(r)
		if err != nil {
			writeError(c, err)
			return
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"receipts": out})
}

func (s *Server) getReceipt(c *gin.Context) {
	receipt, err := s.receipts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := toReceiptResponse(*receipt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.receipts.Settings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := toSettingsResponse(settings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	limit, err := parseLimit(req.MonthlyLimit, req.LimitCurrency)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings := models.Settings{
		MonthlyLimit:  limit,
		LimitCurrency: req.LimitCurrency,
		UsageType:     models.UsageType(req.UsageType),
	}

	updated, err := s.receipts.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := toSettingsResponse(updated)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
