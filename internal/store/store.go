package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glamourhall/glamourhall/internal/models"
)

var ErrNotFound = errors.New("not found")

// Store reads conversation history and user preferences from Postgres.
// The advisor core only reads; the API layer records turns through
// AppendMessage after each served request.
type Store struct {
	pool *pgxpool.Pool
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// GetMessages returns the most recent messages of a conversation in
// chronological order, newest last.
func (s *Store) GetMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// AppendMessage stores one conversation turn.
func (s *Store) AppendMessage(ctx context.Context, conversationID, role, content string) (models.Message, error) {
	m := models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.ConversationID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return m, nil
}

// GetPreferences returns the stored styling profile for a user.
func (s *Store) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	var p models.Preferences

	err := s.pool.QueryRow(ctx, `
		SELECT user_id, COALESCE(gender, ''), COALESCE(age, 0), COALESCE(height, '')
		FROM preferences
		WHERE user_id = $1`,
		userID).Scan(&p.UserID, &p.Gender, &p.Age, &p.Height)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Preferences{}, ErrNotFound
		}
		return models.Preferences{}, fmt.Errorf("failed to query preferences: %w", err)
	}

	return p, nil
}
