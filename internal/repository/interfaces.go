package repository

import (
	"context"

	"shopmate-chat/internal/domain/chat"
	"shopmate-chat/internal/domain/user"
)

// UserRepository stores registered accounts.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// ChatRepository stores chat turns append-only. RecentTurns and AllTurns
// return turns in insertion order (oldest first).
type ChatRepository interface {
	Append(ctx context.Context, t *chat.Turn) error
	RecentTurns(ctx context.Context, chatID, userID int64, limit int) ([]chat.Turn, error)
	AllTurns(ctx context.Context, userID int64) ([]chat.Turn, error)
}
