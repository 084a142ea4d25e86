package domain

import (
	"context"
	"time"
)

// Conversation is a two-party thread. Sender and LastMessage are
// viewer-relative projections for the conversation list.
type Conversation struct {
	ID          int64     `json:"id"`
	Sender      string    `json:"sender"`
	LastMessage string    `json:"lastMessage"`
	Time        time.Time `json:"time"`
	Unread      int64     `json:"unread"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"timestamp"`
}

type MessageRepository interface {
	FetchConversations(ctx context.Context, userID int64) ([]Conversation, error)
	// GetConversation reports whether userID participates in the thread.
	GetConversation(ctx context.Context, conversationID, userID int64) (bool, error)
	FetchMessages(ctx context.Context, conversationID int64) ([]Message, error)
	CreateMessage(ctx context.Context, msg *Message) error
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type MessageUsecase interface {
	ListConversations(ctx context.Context, userID int64) ([]Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID int64) ([]Message, error)
	SendMessage(ctx context.Context, userID, conversationID int64, content string) (*Message, error)
}
