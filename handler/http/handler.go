package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buchat/src/core/assistant"
	"buchat/src/core/restaurant"
)

type Handler struct {
	guide      *assistant.Assistant
	worker     *assistant.Assistant
	restaurant *restaurant.Searcher
	sessions   *SessionRegistry
}

func NewHandler(guide, worker *assistant.Assistant, restaurantSearch *restaurant.Searcher) *Handler {
	return &Handler{
		guide:      guide,
		worker:     worker,
		restaurant: restaurantSearch,
		sessions:   NewSessionRegistry(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.POST("/assistants/:assistant/answer", h.Answer)
	v1.GET("/health", h.CheckHealth)
}

// Common error response structure
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func sendError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func sendJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// CheckHealth reports service liveness
func (h *Handler) CheckHealth(c *gin.Context) {
	sendJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
