package goals

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"goalmanager/internal/debug"
	appErrors "goalmanager/internal/errors"
	"goalmanager/internal/telemetry"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS goals (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL DEFAULT '',
	icon           TEXT,
	target_date    TEXT,
	target_amount  TEXT NOT NULL DEFAULT '0',
	current_amount TEXT NOT NULL DEFAULT '0',
	status         TEXT NOT NULL DEFAULT 'active',
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_goals_created_at ON goals(created_at);
`

const selectColumns = `id, name, icon, target_date, target_amount, current_amount, status, created_at, updated_at`

// SQLiteOption configures a sqliteClient.
type SQLiteOption func(*sqliteClient)

// WithClock overrides the time source used for IDs and timestamps.
func WithClock(now func() time.Time) SQLiteOption {
	return func(c *sqliteClient) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEntropy overrides the randomness used for ULID generation.
func WithEntropy(r io.Reader) SQLiteOption {
	return func(c *sqliteClient) {
		if r != nil {
			c.entropy = ulid.Monotonic(r, 0)
		}
	}
}

// sqliteClient stores goals in a local SQLite database.
type sqliteClient struct {
	db     *sql.DB
	dbPath string
	tracer oteltrace.Tracer

	now       func() time.Time
	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

// NewSQLiteClient opens (creating if needed) the goal database at dbPath and
// applies the schema.
func NewSQLiteClient(ctx context.Context, dbPath string, opts ...SQLiteOption) (Client, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, storageError("open goal db", errors.New("database path is empty"))
	}
	//nolint:gosec // G301: goal database directory lives under the user config dir
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, storageError("create goal db directory", err)
	}

	db, err := sql.Open("sqlite", buildSQLiteDSN(trimmed))
	if err != nil {
		return nil, storageError("open goal db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageError("ping goal db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, storageError("migrate goal db", err)
	}

	c := &sqliteClient{
		db:      db,
		dbPath:  trimmed,
		tracer:  telemetry.Tracer("goals"),
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	debug.Event("goal db opened", "path", trimmed)
	return c, nil
}

// buildSQLiteDSN creates a read-write WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	q.Add("_pragma", "foreign_keys(on)")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *sqliteClient) newID(at time.Time) (string, error) {
	c.entropyMu.Lock()
	defer c.entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(at), c.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Create inserts a stub goal carrying only the icon.
func (c *sqliteClient) Create(ctx context.Context, icon *string) (*Goal, error) {
	ctx, span := c.tracer.Start(ctx, "goals.Create",
		oteltrace.WithAttributes(attribute.Bool("goal.has_icon", icon != nil)))
	defer span.End()

	now := c.now().UTC()
	id, err := c.newID(now)
	if err != nil {
		return nil, recordSpanError(span, createError(err))
	}

	var iconCol sql.NullString
	if icon != nil {
		iconCol = sql.NullString{String: *icon, Valid: true}
	}

	stamp := now.Format(time.RFC3339Nano)
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, icon, target_date, target_amount, current_amount, status, created_at, updated_at)
		VALUES (?, '', ?, NULL, '0', '0', ?, ?, ?)
	`, id, iconCol, string(StatusActive), stamp, stamp)
	if err != nil {
		return nil, recordSpanError(span, createError(err))
	}

	goal := &Goal{
		ID:            id,
		Icon:          copyString(icon),
		TargetAmount:  decimal.Zero,
		CurrentAmount: decimal.Zero,
		Status:        StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	span.SetAttributes(attribute.String("goal.id", id))
	debug.Event("goal created", "id", id, "has_icon", icon != nil)
	return goal, nil
}

// List returns all goals ordered by creation time.
func (c *sqliteClient) List(ctx context.Context) ([]Goal, error) {
	ctx, span := c.tracer.Start(ctx, "goals.List")
	defer span.End()

	rows, err := c.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, recordSpanError(span, storageError("query goals", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			if !appErrors.IsCode(err, appErrors.CodeParseFailed) {
				err = storageError("scan goal", err)
			}
			return nil, recordSpanError(span, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, recordSpanError(span, storageError("iterate goals", err))
	}
	span.SetAttributes(attribute.Int("goal.count", len(out)))
	return out, nil
}

// Get returns a single goal by ID.
func (c *sqliteClient) Get(ctx context.Context, id string) (Goal, error) {
	ctx, span := c.tracer.Start(ctx, "goals.Get",
		oteltrace.WithAttributes(attribute.String("goal.id", id)))
	defer span.End()

	row := c.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Goal{}, recordSpanError(span, notFoundError(id))
	case appErrors.IsCode(err, appErrors.CodeParseFailed):
		return Goal{}, recordSpanError(span, err)
	case err != nil:
		return Goal{}, recordSpanError(span, storageError("get goal", err))
	}
	return g, nil
}

// Close releases the database handle.
func (c *sqliteClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (Goal, error) {
	var (
		g                  Goal
		icon, targetDate   sql.NullString
		target, current    string
		status             string
		createdAt, updated string
	)
	if err := row.Scan(&g.ID, &g.Name, &icon, &targetDate, &target, &current, &status, &createdAt, &updated); err != nil {
		return Goal{}, err
	}
	if icon.Valid {
		v := icon.String
		g.Icon = &v
	}
	if targetDate.Valid && targetDate.String != "" {
		t, err := time.Parse(time.RFC3339Nano, targetDate.String)
		if err != nil {
			return Goal{}, parseError("target_date", err)
		}
		g.TargetDate = &t
	}
	var err error
	if g.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return Goal{}, parseError("target_amount", err)
	}
	if g.CurrentAmount, err = decimal.NewFromString(current); err != nil {
		return Goal{}, parseError("current_amount", err)
	}
	g.Status = Status(status)
	if !g.Status.Valid() {
		return Goal{}, parseError("status", fmt.Errorf("unknown status %q", status))
	}
	if g.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Goal{}, parseError("created_at", err)
	}
	if g.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return Goal{}, parseError("updated_at", err)
	}
	return g, nil
}

func recordSpanError(span oteltrace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
