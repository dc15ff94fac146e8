package repository

import (
	"context"
	"sync"

	"shopmate-chat/internal/domain/chat"
	"shopmate-chat/internal/domain/user"
	apperrors "shopmate-chat/pkg/errors"
)

// In-memory repositories backing unit tests and local development without
// Postgres. They mirror the ordering semantics of the SQL implementations.

type InMemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]user.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{nextID: 1, users: make(map[string]user.User)}
}

func (r *InMemoryUserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.Username]; exists {
		return apperrors.ErrAlreadyExists
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.Username] = *u
	return nil
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[username]
	if !exists {
		return user.User{}, apperrors.ErrNotFound
	}
	return u, nil
}

type InMemoryChatRepository struct {
	mu     sync.Mutex
	nextID int64
	turns  []chat.Turn
}

func NewInMemoryChatRepository() *InMemoryChatRepository {
	return &InMemoryChatRepository{nextID: 1}
}

func (r *InMemoryChatRepository) Append(_ context.Context, t *chat.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.turns = append(r.turns, *t)
	return nil
}

func (r *InMemoryChatRepository) RecentTurns(_ context.Context, chatID, userID int64, limit int) ([]chat.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []chat.Turn
	for _, t := range r.turns {
		if t.ChatID == chatID && t.UserID == userID {
			matched = append(matched, t)
		}
	}
	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

func (r *InMemoryChatRepository) AllTurns(_ context.Context, userID int64) ([]chat.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []chat.Turn
	for _, t := range r.turns {
		if t.UserID == userID {
			matched = append(matched, t)
		}
	}
	return matched, nil
}
