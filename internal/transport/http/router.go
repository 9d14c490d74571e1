package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/printshop-pricing/internal/pkg/logger"
)

// NewRouter builds the gin engine for the pricing API.
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(log), AccessLog(log), ErrorHandler(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	quotes := v1.Group("/quotes")
	{
		quotes.POST("/evaluate", h.EvaluateQuote)
		quotes.POST("/evaluate/batch", h.EvaluateQuoteBatch)
		quotes.GET("/:id/discount", h.GetQuoteDiscount)
	}

	rules := v1.Group("/rules")
	{
		rules.GET("", h.ListRules)
		rules.POST("", h.CreateRule)
		rules.GET("/:id", h.GetRule)
		rules.PATCH("/:id/active", h.SetRuleActive)
	}

	return router
}
