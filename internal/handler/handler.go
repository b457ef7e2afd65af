package handler

import (
	"net/http"

	"naomi/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer    trace.Tracer
	assistant *service.AssistantService
}

func New(tracer trace.Tracer, assistant *service.AssistantService) *Handler {
	return &Handler{
		tracer:    tracer,
		assistant: assistant,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/chat", h.Chat)
	r.POST("/api/classify", h.Classify)
	r.POST("/api/safety/check", h.CheckSafety)
	r.GET("/api/coins/:symbol/analysis", h.GetCoinAnalysis)
	r.DELETE("/api/sessions/:id", h.ResetSession)
	r.GET("/ws/chat", h.ChatSocket)
}

// Health godoc
// @Summary      Health check
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
