package handlers

import (
	"net/http"

	"servicehub/services/chat"
	"servicehub/services/session"
	"servicehub/utils"
	"servicehub/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxAttachmentSize caps chat uploads.
const maxAttachmentSize = 10 << 20

type ChatHandler struct {
	Chat     *chat.ChatService
	Sessions *session.Manager
}

func (h *ChatHandler) panelView(c *gin.Context, snap chat.Snapshot) {
	state, err := h.Sessions.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views.NewChatPanelView(snap, state.IsPremium()))
}

// Open handles POST /api/chats.
func (h *ChatHandler) Open(c *gin.Context) {
	var body struct {
		ProviderID string `json:"providerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	snap, err := h.Chat.Open(c.Request.Context(), sessionID(c), body.ProviderID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.panelView(c, snap)
}

// Current handles GET /api/chats/current.
func (h *ChatHandler) Current(c *gin.Context) {
	snap, err := h.Chat.Current(sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.panelView(c, snap)
}

// Send handles POST /api/chats/current/messages.
func (h *ChatHandler) Send(c *gin.Context) {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	msg, err := h.Chat.Send(c.Request.Context(), sessionID(c), body.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Attach handles POST /api/chats/current/attachments (multipart field "file"). Locked
// sessions get gateOpened and the file is not stored.
func (h *ChatHandler) Attach(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAttachmentSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missing file", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		getLogger(c).Error("Attach: failed to open upload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "unreadable file", err.Error())
		return
	}
	defer file.Close()

	result, err := h.Chat.Attach(c.Request.Context(), sessionID(c), fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleVoice handles POST /api/chats/current/voice.
func (h *ChatHandler) ToggleVoice(c *gin.Context) {
	result, err := h.Chat.ToggleVoice(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Close handles DELETE /api/chats/current.
func (h *ChatHandler) Close(c *gin.Context) {
	if err := h.Chat.Close(c.Request.Context(), sessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
