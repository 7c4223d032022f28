package http

import (
	"github.com/gin-gonic/gin"

	"ecommerce-support-agent/internal/chat"
	pkgLog "ecommerce-support-agent/pkg/log"
)

// Handler is the interface for the chat HTTP delivery.
type Handler interface {
	Chat(c *gin.Context)
}

// New creates the chat delivery handler. requestsPerMin bounds each
// session's turn rate; zero disables limiting.
func New(l pkgLog.Logger, uc chat.UseCase, requestsPerMin int) Handler {
	h := &handler{
		l:  l,
		uc: uc,
	}
	if requestsPerMin > 0 {
		h.limiter = newSessionLimiter(requestsPerMin)
	}
	return h
}
