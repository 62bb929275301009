package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// SessionRepository implements [scs.Store] and [scs.CtxStore] on the sessions table.
type SessionRepository struct {
	db     *sql.DB
	logger *log.Logger
	stop   chan struct{}
	done   chan struct{}
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection.
//
// The sessions table must already exist; see shared.RunMigrations.
func NewSessionRepository(db *sql.DB, logger *log.Logger) *SessionRepository {
	return &SessionRepository{db: db, logger: logger}
}

// Find returns the encoded session for token. found is false for unknown or expired tokens.
func (r *SessionRepository) Find(token string) ([]byte, bool, error) {
	return r.FindCtx(context.Background(), token)
}

// Commit inserts or replaces the session for token with the given absolute expiry.
func (r *SessionRepository) Commit(token string, b []byte, expiry time.Time) error {
	return r.CommitCtx(context.Background(), token, b, expiry)
}

// Delete removes the session for token. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(token string) error {
	return r.DeleteCtx(context.Background(), token)
}

func (r *SessionRepository) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	query := `
		SELECT data FROM sessions
		WHERE token = ? AND julianday('now') < expiry
	`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, token).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storeError("find", err)
	}

	return data, true, nil
}

func (r *SessionRepository) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	query := `
		REPLACE INTO sessions (token, data, expiry) VALUES (?, ?, julianday(?))
	`

	if _, err := r.db.ExecContext(ctx, query, token, b, expiry.UTC().Format(sqliteTimeFormat)); err != nil {
		return storeError("commit", err)
	}
	return nil
}

func (r *SessionRepository) DeleteCtx(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return storeError("delete", err)
	}
	return nil
}

// Count returns the number of unexpired sessions.
func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE julianday('now') < expiry").Scan(&n)
	if err != nil {
		return 0, storeError("count", err)
	}
	return n, nil
}

// DeleteExpired removes expired sessions and reports how many rows went away.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expiry < julianday('now')")
	if err != nil {
		return 0, storeError("delete expired", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, storeError("delete expired", err)
	}
	return rows, nil
}

// StartCleanup sweeps expired sessions every interval until [SessionRepository.StopCleanup] is called.
func (r *SessionRepository) StartCleanup(interval time.Duration) {
	if r.stop != nil {
		return
	}
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n, err := r.DeleteExpired(context.Background())
				if err != nil {
					r.logger.Error("session cleanup failed", "error", err)
					continue
				}
				if n > 0 {
					r.logger.Debug("expired sessions removed", "count", n)
				}
			case <-r.stop:
				return
			}
		}
	}()
}

// StopCleanup stops the sweep and waits for it to exit.
func (r *SessionRepository) StopCleanup() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop, r.done = nil, nil
}
