package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"buchat/src/core/assistant"
)

type answerRequest struct {
	Query      string `json:"query" binding:"required"`
	TargetLang string `json:"target_lang"`
	SessionID  string `json:"session_id"`
}

type answerResponse struct {
	Answer            string `json:"answer"`
	SessionID         string `json:"session_id"`
	LowConfidence     bool   `json:"low_confidence"`
	TranslationFailed bool   `json:"translation_failed"`
}

// Answer runs one serving call against the named assistant. Calls within
// a session are serialized so conversation context merges stay ordered.
func (h *Handler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	session, sessionID := h.sessions.Acquire(req.SessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	var answer assistant.Answer
	switch c.Param("assistant") {
	case "guide":
		answer = h.guide.Answer(c.Request.Context(), req.Query, req.TargetLang, &session.conv)
	case "worker":
		answer = h.worker.Answer(c.Request.Context(), req.Query, req.TargetLang, &session.conv)
	case "restaurant":
		answer = assistant.Answer{Text: h.restaurant.Search(c.Request.Context(), req.Query)}
	default:
		sendError(c, http.StatusNotFound, "UNKNOWN_ASSISTANT",
			fmt.Errorf("unknown assistant %q", c.Param("assistant")))
		return
	}

	sendJSON(c, http.StatusOK, answerResponse{
		Answer:            answer.Text,
		SessionID:         sessionID,
		LowConfidence:     answer.LowConfidence,
		TranslationFailed: answer.TranslationFailed,
	})
}
