package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homestay/internal/models"
)

const messageColumns = `id, name, email, message, created_at`

type messageRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *messageRow) model() models.Message {
	return models.Message{ID: r.ID, Name: r.Name, Email: r.Email, Message: r.Message, CreatedAt: r.CreatedAt}
}

// ListMessages returns contact messages, newest first.
func (db *DB) ListMessages(ctx context.Context) ([]models.Message, error) {
	var rows []messageRow
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC, id DESC`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	messages := make([]models.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].model())
	}
	return messages, nil
}

func (db *DB) CreateMessage(ctx context.Context, in models.MessageInput) (*models.Message, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO messages (name, email, message, created_at) VALUES (?, ?, ?, ?)`,
		in.Name, in.Email, in.Message, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	var row messageRow
	err = db.GetContext(ctx, &row, `SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("message %d vanished after insert", id)
	}
	if err != nil {
		return nil, err
	}
	m := row.model()
	return &m, nil
}

func (db *DB) CountMessages(ctx context.Context) (int, error) {
	return db.count(ctx, "messages")
}
