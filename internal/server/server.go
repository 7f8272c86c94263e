// Package server wires the HTTP API: receipts, settings, split sessions,
// insights and the chat passthrough.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scanalyze/internal/service"
)

// Server holds the application services behind the HTTP handlers.
type Server struct {
	receipts *service.ReceiptService
	splits   *service.SplitService
	insights *service.InsightsService
}

// New creates a Server over the given services.
func New(receipts *service.ReceiptService, splits *service.SplitService, insights *service.InsightsService) *Server {
	return &Server{receipts: receipts, splits: splits, insights: insights}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), loggingMiddleware(), metricsMiddleware(), corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/receipts", s.createReceipt)
		api.GET("/receipts", s.listReceipts)
		api.GET("/receipts/:id", s.getReceipt)
		api.POST("/receipts/:id/split", s.openSplit)

		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.updateSettings)

		sp := api.Group("/split/:sid")
		{
			sp.GET("", s.viewSplit)
			sp.DELETE("", s.closeSplit)
			sp.POST("/participants", s.addParticipant)
			sp.DELETE("/participants/:pid", s.removeParticipant)
			sp.PATCH("/participants/:pid", s.renameParticipant)
			sp.POST("/assignments", s.assignQuantity)
			sp.GET("/remaining", s.remainingQuantities)
			sp.POST("/calculate", s.calculateSplit)
			sp.POST("/edit", s.editSplit)
		}

		api.GET("/insights/dashboard", s.dashboard)
		api.GET("/insights/tax", s.taxReport)
		api.POST("/insights/tax/export", s.exportTaxReport)
		api.GET("/insights/inventory", s.inventory)

		api.POST("/chat", s.chat)
	}

	return r
}
