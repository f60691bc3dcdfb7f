package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agora-ai/agora/internal/domain"
	"github.com/agora-ai/agora/internal/domain/deliberation"
)

// Store implements sessionstore.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

func scanSession(row scannable) (deliberation.Session, error) {
	var (
		s       deliberation.Session
		results []byte
	)
	err := row.Scan(&s.ID, &s.Topic, &s.Context, &s.Mode, &s.Status, &s.Phase,
		&s.PhaseName, &s.Error, &results, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return deliberation.Session{}, err
	}
	if len(results) > 0 {
		var r deliberation.Results
		if err := json.Unmarshal(results, &r); err != nil {
			return deliberation.Session{}, fmt.Errorf("unmarshal results: %w", err)
		}
		s.Results = &r
	}
	return s, nil
}

func marshalResults(r *deliberation.Results) (any, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}
	return data, nil
}

// CreateSession inserts a new session record.
func (s *Store) CreateSession(ctx context.Context, sess *deliberation.Session) error {
	results, err := marshalResults(sess.Results)
	if err != nil {
		return fmt.Errorf("create session %s: %w", sess.ID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, topic, context, mode, status, phase, phase_name, error, results, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		sess.ID, sess.Topic, sess.Context, sess.Mode, sess.Status, sess.Phase,
		sess.PhaseName, sess.Error, results, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create session %s: %w", sess.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create session %s: %w", sess.ID, err)
	}
	return nil
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(ctx context.Context, id string) (*deliberation.Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, topic, context, mode, status, phase, phase_name, error, results, created_at, updated_at
		 FROM sessions WHERE id = $1`, id)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get session %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &sess, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]deliberation.Session, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, topic, context, mode, status, phase, phase_name, error, results, created_at, updated_at
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []deliberation.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// UpdateSession replaces the stored record for sess.ID.
func (s *Store) UpdateSession(ctx context.Context, sess *deliberation.Session) error {
	results, err := marshalResults(sess.Results)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions
		 SET topic = $2, context = $3, mode = $4, status = $5, phase = $6,
		     phase_name = $7, error = $8, results = $9, updated_at = $10
		 WHERE id = $1`,
		sess.ID, sess.Topic, sess.Context, sess.Mode, sess.Status, sess.Phase,
		sess.PhaseName, sess.Error, results, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update session %s: %w", sess.ID, domain.ErrNotFound)
	}
	return nil
}
