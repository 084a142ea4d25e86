package postgres

import (
	"context"
	"errors"

	"peer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

// FetchConversations projects each thread from the viewer's side: the
// counterparty's username, the latest message and the viewer's unread count.
func (r *messageRepo) FetchConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	query := `
		SELECT c.id,
			u.username,
			COALESCE(lm.content, ''),
			COALESCE(lm.created_at, c.created_at),
			COUNT(m.id) FILTER (WHERE m.is_read = FALSE AND m.sender_id <> $1)
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.user_a = $1 THEN c.user_b ELSE c.user_a END
		LEFT JOIN LATERAL (
			SELECT content, created_at FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC LIMIT 1
		) lm ON TRUE
		LEFT JOIN messages m ON m.conversation_id = c.id
		WHERE c.user_a = $1 OR c.user_b = $1
		GROUP BY c.id, u.username, lm.content, lm.created_at, c.created_at
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []domain.Conversation{}
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.Sender, &c.LastMessage, &c.Time, &c.Unread); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *messageRepo) GetConversation(ctx context.Context, conversationID, userID int64) (bool, error) {
	var ok bool
	query := `SELECT (user_a = $2 OR user_b = $2) FROM conversations WHERE id = $1`
	err := r.db.QueryRow(ctx, query, conversationID, userID).Scan(&ok)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return ok, nil
}

func (r *messageRepo) FetchMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	query := `SELECT id, conversation_id, sender_id, content, is_read, created_at
              FROM messages WHERE conversation_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *messageRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages (conversation_id, sender_id, content, is_read, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRow(ctx, query,
		msg.ConversationID, msg.SenderID, msg.Content, msg.IsRead, msg.CreatedAt,
	).Scan(&msg.ID)
}

func (r *messageRepo) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE conversation_id = $1 AND sender_id <> $2`,
		conversationID, readerID)
	return err
}
