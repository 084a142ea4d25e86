package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"peer-backend/internal/domain"
	"peer-backend/pkg/apperror"
)

type messageUsecase struct {
	messageRepo domain.MessageRepository
}

func NewMessageUsecase(messageRepo domain.MessageRepository) domain.MessageUsecase {
	return &messageUsecase{messageRepo: messageRepo}
}

func (u *messageUsecase) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	convs, err := u.messageRepo.FetchConversations(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return convs, nil
}

// ListMessages returns a thread after a participant check, and marks the
// counterparty's messages read as a side effect of viewing.
func (u *messageUsecase) ListMessages(ctx context.Context, userID, conversationID int64) ([]domain.Message, error) {
	if err := u.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msgs, err := u.messageRepo.FetchMessages(ctx, conversationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.messageRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return nil, apperror.Internal(err)
	}
	return msgs, nil
}

func (u *messageUsecase) SendMessage(ctx context.Context, userID, conversationID int64, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.BadRequest("Content is required")
	}
	if err := u.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := u.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}
	return msg, nil
}

func (u *messageUsecase) requireParticipant(ctx context.Context, conversationID, userID int64) error {
	ok, err := u.messageRepo.GetConversation(ctx, conversationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Conversation not found")
		}
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.Forbidden("You are not part of this conversation")
	}
	return nil
}
