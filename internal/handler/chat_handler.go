package handler

import (
	"net/http"

	"shopmate-chat/internal/services"
	"shopmate-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat HTTP endpoints. All routes sit behind the auth
// middleware, which put the verified user id on the request context.
type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Message handles one chat turn.
func (h *ChatHandler) Message(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	reply, err := h.service.SendMessage(c.Request.Context(), userID, req.ChatID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ChatMessageResponse{Response: reply}))
}

// History returns all of the user's chats as transcripts.
func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	transcripts, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	chats := make([]httpdto.ChatTranscriptDTO, 0, len(transcripts))
	for _, t := range transcripts {
		entries := make([]httpdto.TranscriptEntryDTO, 0, len(t.Messages))
		for _, m := range t.Messages {
			entries = append(entries, httpdto.TranscriptEntryDTO{From: m.From, Text: m.Text})
		}
		chats = append(chats, httpdto.ChatTranscriptDTO{ChatID: t.ChatID, Messages: entries})
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.HistoryResponse{Chats: chats}))
}
