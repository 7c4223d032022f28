package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ecommerce-support-agent/internal/chat"
	pkgLog "ecommerce-support-agent/pkg/log"
	pkgResponse "ecommerce-support-agent/pkg/response"
)

type handler struct {
	l       pkgLog.Logger
	uc      chat.UseCase
	limiter *sessionLimiter
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID  string  `json:"session_id"`
	Response   string  `json:"response"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Chat handles one conversational turn.
// @Summary Chat turn
// @Description Send one customer message and receive the agent's reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body chatRequest true "User message with optional session id"
// @Success 200 {object} response.Resp
// @Router /api/v1/chat [post]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "chat handler: malformed request: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if h.limiter != nil && req.SessionID != "" && !h.limiter.Allow(req.SessionID) {
		pkgResponse.TooManyRequests(c)
		return
	}

	out, err := h.uc.Handle(ctx, chat.HandleInput{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			pkgResponse.Error(c, err, nil)
			return
		}
		h.l.Errorf(ctx, "chat handler: turn failed: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, chatResponse{
		SessionID:  out.SessionID,
		Response:   out.Response,
		Intent:     string(out.Intent),
		Confidence: out.Confidence,
	})
}
