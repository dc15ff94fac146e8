package repository

import (
	"context"
	"fmt"
	"testing"

	"shopmate-chat/internal/domain/chat"
	"shopmate-chat/internal/domain/user"
	apperrors "shopmate-chat/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryUserRepository(t *testing.T) {
	repo := NewInMemoryUserRepository()
	ctx := context.Background()

	u := &user.User{Username: "alice", PasswordHash: "hash", Email: "a@x.com"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	err := repo.Create(ctx, &user.User{Username: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, *u, got)

	_, err = repo.GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "username match is case-sensitive")
}

func TestInMemoryChatRepositoryOrdering(t *testing.T) {
	repo := NewInMemoryChatRepository()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		turn := &chat.Turn{ChatID: 1, UserID: 1, Message: fmt.Sprintf("m%d", i), Response: fmt.Sprintf("r%d", i)}
		require.NoError(t, repo.Append(ctx, turn))
		assert.Equal(t, int64(i), turn.ID)
	}

	recent, err := repo.RecentTurns(ctx, 1, 1, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	// Most recent three, oldest first.
	assert.Equal(t, "m3", recent[0].Message)
	assert.Equal(t, "m4", recent[1].Message)
	assert.Equal(t, "m5", recent[2].Message)

	all, err := repo.AllTurns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}
}

func TestInMemoryChatRepositoryScoping(t *testing.T) {
	repo := NewInMemoryChatRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, &chat.Turn{ChatID: 1, UserID: 1, Message: "mine"}))
	require.NoError(t, repo.Append(ctx, &chat.Turn{ChatID: 1, UserID: 2, Message: "theirs"}))
	require.NoError(t, repo.Append(ctx, &chat.Turn{ChatID: 2, UserID: 1, Message: "other chat"}))

	recent, err := repo.RecentTurns(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "mine", recent[0].Message)

	all, err := repo.AllTurns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
