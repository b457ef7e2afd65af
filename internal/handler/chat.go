package handler

import (
	"errors"
	"net/http"
	"strings"

	"naomi/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type classifyRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type safetyCheckRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat godoc
// @Summary      Send a message to the assistant
// @Description  Runs the message through the safety filter and intent classifier, fetches market data and returns the assistant's reply
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body  chatRequest  true  "Message and optional session id"
// @Success      200  {object}  domain.Reply
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.chat")
	defer span.End()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("session_id", req.SessionID))

	reply, err := h.assistant.Ask(ctx, req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"reply":      reply,
	})
}

// Classify godoc
// @Summary      Classify a message without answering it
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body  classifyRequest  true  "Message and optional session id"
// @Success      200  {object}  domain.Classification
// @Failure      400  {object}  map[string]string
// @Router       /api/classify [post]
func (h *Handler) Classify(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.classify")
	defer span.End()

	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	c.JSON(http.StatusOK, h.assistant.Classify(req.SessionID, req.Message))
}

// CheckSafety godoc
// @Summary      Evaluate a message against the content safety filter
// @Tags         safety
// @Accept       json
// @Produce      json
// @Param        request  body  safetyCheckRequest  true  "Message to evaluate"
// @Success      200  {object}  domain.SafetyVerdict
// @Failure      400  {object}  map[string]string
// @Router       /api/safety/check [post]
func (h *Handler) CheckSafety(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.check-safety")
	defer span.End()

	var req safetyCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	c.JSON(http.StatusOK, h.assistant.CheckSafety(req.Message))
}

// GetCoinAnalysis godoc
// @Summary      Full data analysis for one asset
// @Description  Returns market data, smart money flows and social sentiment for a symbol
// @Tags         coins
// @Produce      json
// @Param        symbol  path  string  true  "Asset symbol or name (e.g., BTC, ethereum)"
// @Success      200  {object}  domain.CoinAnalysis
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/coins/{symbol}/analysis [get]
func (h *Handler) GetCoinAnalysis(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-coin-analysis")
	defer span.End()

	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	analysis, err := h.assistant.AnalyzeCoin(ctx, symbol)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no data found for symbol: " + symbol})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// ResetSession godoc
// @Summary      Clear a conversation session
// @Tags         chat
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/sessions/{id} [delete]
func (h *Handler) ResetSession(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.reset-session")
	defer span.End()

	if err := h.assistant.ResetSession(ctx, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
