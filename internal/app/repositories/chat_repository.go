package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arda/campushub/internal/app/models"
)

// ChatRepository handles database operations for club chat messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Insert stores a new chat message and sets its generated ID
func (r *ChatRepository) Insert(ctx context.Context, m *models.ChatMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (club_id, sender_id, message, message_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at`,
		m.ClubID, m.SenderID, m.Message, m.MessageType).
		Scan(&m.ID, &m.SentAt)
	if err != nil {
		return fmt.Errorf("error inserting chat message: %w", err)
	}
	return nil
}

// ListByClub retrieves messages for a club channel, newest first, optionally
// older than a cursor timestamp.
func (r *ChatRepository) ListByClub(ctx context.Context, clubID int64, before *time.Time, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT m.id, m.club_id, m.sender_id, m.message, m.message_type, m.sent_at,
		       u.id, u.email, u.name, u.department, u.year, u.college_id, u.profile_image, u.role
		FROM chat_messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.club_id = $1`
	args := []interface{}{clubID}
	if before != nil {
		query += " AND m.sent_at < $2"
		args = append(args, *before)
	}
	query += fmt.Sprintf(" ORDER BY m.sent_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		var u models.User
		err := rows.Scan(
			&m.ID, &m.ClubID, &m.SenderID, &m.Message, &m.MessageType, &m.SentAt,
			&u.ID, &u.Email, &u.Name, &u.Department, &u.Year, &u.CollegeID, &u.ProfileImage, &u.Role)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat message: %w", err)
		}
		m.Sender = &u
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ChannelSummary is one club channel with its most recent message
type ChannelSummary struct {
	ClubID      int64
	ClubName    string
	LastMessage *string
	LastSentAt  *time.Time
}

// ListChannelsForUser returns the channels of clubs where the user is an
// approved member, each with its latest message if any.
func (r *ChatRepository) ListChannelsForUser(ctx context.Context, userID int64) ([]ChannelSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, last.message, last.sent_at
		FROM club_memberships m
		JOIN clubs c ON c.id = m.club_id
		LEFT JOIN LATERAL (
			SELECT message, sent_at FROM chat_messages
			WHERE club_id = c.id
			ORDER BY sent_at DESC
			LIMIT 1
		) last ON TRUE
		WHERE m.user_id = $1 AND m.status = 'approved'
		ORDER BY last.sent_at DESC NULLS LAST`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing channels: %w", err)
	}
	defer rows.Close()

	channels := []ChannelSummary{}
	for rows.Next() {
		var ch ChannelSummary
		if err := rows.Scan(&ch.ClubID, &ch.ClubName, &ch.LastMessage, &ch.LastSentAt); err != nil {
			return nil, fmt.Errorf("error scanning channel: %w", err)
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}
