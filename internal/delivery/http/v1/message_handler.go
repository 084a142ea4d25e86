package v1

import (
	"net/http"

	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

func NewMessageHandler(protected *gin.RouterGroup, messageUC domain.MessageUsecase) {
	handler := &MessageHandler{messageUC: messageUC}

	messages := protected.Group("/messages")
	{
		messages.GET("/conversations", handler.ListConversations)
		messages.GET("/:conversationId", handler.ListMessages)
		messages.POST("/:conversationId", handler.Send)
	}
}

func (h *MessageHandler) ListConversations(c *gin.Context) {
	convs, err := h.messageUC.ListConversations(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	convID, err := pathID(c, "conversationId")
	if err != nil {
		c.Error(err)
		return
	}

	msgs, err := h.messageUC.ListMessages(c.Request.Context(), currentUserID(c), convID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	convID, err := pathID(c, "conversationId")
	if err != nil {
		c.Error(err)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Content is required"))
		return
	}

	msg, err := h.messageUC.SendMessage(c.Request.Context(), currentUserID(c), convID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
