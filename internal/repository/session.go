package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/strataseven/sevens-client/internal/repository/storage"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the last joined room, kept so a restarted client can offer to
// rejoin it.
type Session struct {
	PlayerID   string
	PlayerName string
	RoomCode   string
	SavedAt    time.Time
}

type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Last(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

type dbSession struct {
	storage *storage.Storage
}

func NewSessionRepository(storage *storage.Storage) SessionRepository {
	return &dbSession{
		storage: storage,
	}
}

func (that *dbSession) Save(ctx context.Context, session *Session) error {
	// One row only: the newest session replaces whatever was there.
	if _, err := that.storage.Connection.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	query := `INSERT INTO sessions (player_id, player_name, room_code, saved_at) VALUES (?, ?, ?, ?)`

	_, err := that.storage.Connection.ExecContext(ctx, query,
		session.PlayerID, session.PlayerName, session.RoomCode, session.SavedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *dbSession) Last(ctx context.Context) (*Session, error) {
	query := `SELECT player_id, player_name, room_code, saved_at FROM sessions ORDER BY saved_at DESC LIMIT 1`

	row := that.storage.Connection.QueryRowContext(ctx, query)

	var session Session
	var savedAt int64

	err := row.Scan(&session.PlayerID, &session.PlayerName, &session.RoomCode, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	session.SavedAt = time.UnixMilli(savedAt)

	return &session, nil
}

func (that *dbSession) Clear(ctx context.Context) error {
	if _, err := that.storage.Connection.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}
