package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"homework_notification_bot/internal/domain/homework"
)

const createStateTable = `CREATE TABLE IF NOT EXISTS homework_state (
    chat_id      TEXT PRIMARY KEY,
    from_date    BIGINT NOT NULL,
    last_message TEXT NOT NULL DEFAULT '',
    updated_at   BIGINT NOT NULL
)`

// SQLStateRepository stores one state row per chat in PostgreSQL or SQLite.
type SQLStateRepository struct {
	db      *sql.DB
	dialect Dialect
	chatID  string
}

func NewSQLStateRepository(db *sql.DB, dialect Dialect, chatID string) *SQLStateRepository {
	return &SQLStateRepository{db: db, dialect: dialect, chatID: chatID}
}

// EnsureSchema creates the state table when it does not exist yet.
func (r *SQLStateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createStateTable); err != nil {
		return fmt.Errorf("error creating homework_state table: %w", err)
	}
	return nil
}

func (r *SQLStateRepository) Load(ctx context.Context) (*homework.State, error) {
	query := r.rebind(`SELECT from_date, last_message, updated_at FROM homework_state WHERE chat_id = ?`)
	st := &homework.State{}
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, query, r.chatID).Scan(&st.FromDate, &st.LastMessage, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, homework.ErrStateNotFound
		}
		return nil, fmt.Errorf("error getting homework state: %w", err)
	}
	st.UpdatedAt = time.UnixMilli(updatedAt)
	return st, nil
}

func (r *SQLStateRepository) Save(ctx context.Context, st *homework.State) error {
	query := r.rebind(`INSERT INTO homework_state (chat_id, from_date, last_message, updated_at)
               VALUES (?, ?, ?, ?)
               ON CONFLICT (chat_id) DO UPDATE
               SET from_date = excluded.from_date,
                   last_message = excluded.last_message,
                   updated_at = excluded.updated_at`)

	updatedAt := st.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	if _, err := r.db.ExecContext(ctx, query, r.chatID, st.FromDate, st.LastMessage, updatedAt.UnixMilli()); err != nil {
		return fmt.Errorf("error saving homework state: %w", err)
	}
	return nil
}

// rebind turns "?" placeholders into "$n" for PostgreSQL.
func (r *SQLStateRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
