package goals

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	appErrors "goalmanager/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ...SQLiteOption) Client {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "goals.db")
	c, err := NewSQLiteClient(context.Background(), dbPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewSQLiteClientRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteClient(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeStorage))
}

func TestCreateStoresIconOnlyStub(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestClient(t,
		WithClock(func() time.Time { return fixed }),
		WithEntropy(bytes.NewReader(bytes.Repeat([]byte{7}, 64))),
	)
	ctx := context.Background()

	icon := "🏖"
	created, err := c.Create(ctx, &icon)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Len(t, created.ID, 26)
	require.NotNil(t, created.Icon)
	assert.Equal(t, "🏖", *created.Icon)
	assert.Empty(t, created.Name)
	assert.Nil(t, created.TargetDate)
	assert.True(t, created.TargetAmount.Equal(decimal.Zero))
	assert.Equal(t, StatusActive, created.Status)
	assert.True(t, created.CreatedAt.Equal(fixed))

	icon = "changed"
	assert.Equal(t, "🏖", *created.Icon, "returned goal must not alias the caller's icon")

	fetched, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	require.NotNil(t, fetched.Icon)
	assert.Equal(t, "🏖", *fetched.Icon)
	assert.True(t, fetched.CreatedAt.Equal(fixed))
}

func TestCreateWithoutIcon(t *testing.T) {
	c := newTestClient(t)

	created, err := c.Create(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, created.Icon)
	assert.False(t, created.HasIcon())

	fetched, err := c.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Icon)
}

func TestListOrdersByCreation(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	c := newTestClient(t, WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))
	ctx := context.Background()

	var ids []string
	for _, token := range []string{"🎯", "🏠", "🚗"} {
		tok := token
		g, err := c.Create(ctx, &tok)
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, g := range list {
		assert.Equal(t, ids[i], g.ID)
	}
}

func TestGetMissingGoal(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Get(context.Background(), "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound))
}

func TestCorruptRowsReportParseFailure(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{name: "target amount", column: "target_amount", value: "lots"},
		{name: "target date", column: "target_date", value: "next summer"},
		{name: "status", column: "status", value: "paused"},
		{name: "created at", column: "created_at", value: "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t)
			ctx := context.Background()
			created, err := c.Create(ctx, nil)
			require.NoError(t, err)

			db := c.(*sqliteClient).db
			_, err = db.ExecContext(ctx, `UPDATE goals SET `+tt.column+` = ? WHERE id = ?`, tt.value, created.ID)
			require.NoError(t, err)

			_, err = c.Get(ctx, created.ID)
			require.Error(t, err)
			assert.True(t, appErrors.IsCode(err, appErrors.CodeParseFailed), "Get: %v", err)
			assert.Contains(t, err.Error(), tt.column)

			_, err = c.List(ctx)
			require.Error(t, err)
			assert.True(t, appErrors.IsCode(err, appErrors.CodeParseFailed), "List: %v", err)
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusCompleted, StatusArchived} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("paused").Valid())
}

func TestCreateAfterCloseFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "goals.db")
	c, err := NewSQLiteClient(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = c.Create(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeCreateFailed))
}

func TestReopenKeepsGoals(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "goals.db")
	ctx := context.Background()

	first, err := NewSQLiteClient(ctx, dbPath)
	require.NoError(t, err)
	icon := "🎓"
	created, err := first.Create(ctx, &icon)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteClient(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	list, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetAmount: decimal.NewFromInt(2000), CurrentAmount: decimal.NewFromInt(500)}
	assert.Equal(t, "0.25", g.Progress().String())

	g.CurrentAmount = decimal.NewFromInt(5000)
	assert.Equal(t, "1", g.Progress().String())

	g.TargetAmount = decimal.Zero
	assert.True(t, g.Progress().IsZero())

	assert.Equal(t, "Untitled goal", Goal{}.DisplayName())
	assert.Equal(t, "Trip", Goal{Name: "Trip"}.DisplayName())
}

func TestMockClientRecordsCalls(t *testing.T) {
	m := NewMockClient()
	icon := "🎯"

	g, err := m.Create(context.Background(), &icon)
	require.NoError(t, err)
	assert.Equal(t, "goal-mock", g.ID)
	assert.Equal(t, 1, m.Calls())
	require.Len(t, m.CreateCallArgs, 1)
	assert.Equal(t, "🎯", *m.CreateCallArgs[0])

	_, err = m.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrMockNotImplemented)
}
