package repository

import (
	"context"
	"database/sql"
	"fmt"

	"shopmate-chat/internal/domain/chat"
	apperrors "shopmate-chat/pkg/errors"
)

type PostgresChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Append(ctx context.Context, t *chat.Turn) error {
	query := `INSERT INTO chat_history (chat_id, user_id, message, response)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query, t.ChatID, t.UserID, t.Message, t.Response).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("%w: append turn: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// RecentTurns returns at most limit most-recent turns for the chat/user pair,
// oldest first. The query walks the id index backwards, so the rows come out
// newest first and are reversed before returning.
func (r *PostgresChatRepository) RecentTurns(ctx context.Context, chatID, userID int64, limit int) ([]chat.Turn, error) {
	query := `SELECT id, chat_id, user_id, message, response FROM chat_history
	          WHERE chat_id = $1 AND user_id = $2
	          ORDER BY id DESC
	          LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, chatID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: recent turns: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func (r *PostgresChatRepository) AllTurns(ctx context.Context, userID int64) ([]chat.Turn, error) {
	query := `SELECT id, chat_id, user_id, message, response FROM chat_history
	          WHERE user_id = $1
	          ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: all turns: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

func scanTurns(rows *sql.Rows) ([]chat.Turn, error) {
	var turns []chat.Turn
	for rows.Next() {
		var t chat.Turn
		if err := rows.Scan(&t.ID, &t.ChatID, &t.UserID, &t.Message, &t.Response); err != nil {
			return nil, fmt.Errorf("%w: scan turn: %v", apperrors.ErrPersistence, err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate turns: %v", apperrors.ErrPersistence, err)
	}
	return turns, nil
}
