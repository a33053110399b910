package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

func TestCustomerGetForeignRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New().Customers()

	c, err := repo.Create(ctx, "owner-a", repository.CustomerInput{Name: "Ada", Email: "ada@example.com", Status: repository.CustomerActive})
	require.NoError(t, err)

	_, err = repo.Get(ctx, "owner-b", c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, "owner-b", c.ID, repository.CustomerInput{Name: "X", Email: "x@example.com", Status: repository.CustomerActive})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCustomerDeleteForeignRowLeavesItIntact(t *testing.T) {
	ctx := context.Background()
	repo := New().Customers()

	c, err := repo.Create(ctx, "owner-a", repository.CustomerInput{Name: "Ada", Email: "ada@example.com", Status: repository.CustomerActive})
	require.NoError(t, err)

	err = repo.Delete(ctx, "owner-b", c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.Get(ctx, "owner-a", c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestCustomerListNewestFirstAndStats(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	conn := New().WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	repo := conn.Customers()

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, "owner", repository.CustomerInput{Name: name, Email: name + "@example.com", Status: repository.CustomerActive})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, "owner", repository.CustomerInput{Name: "idle", Email: "idle@example.com", Status: repository.CustomerInactive})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "someone-else", repository.CustomerInput{Name: "foreign", Email: "f@example.com", Status: repository.CustomerActive})
	require.NoError(t, err)

	list, err := repo.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "idle", list[0].Name)
	assert.Equal(t, "first", list[3].Name)

	recent, err := repo.Recent(ctx, "owner", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[1].Name)

	st, err := repo.Stats(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, repository.CustomerStats{Total: 4, Active: 3}, st)
}

func TestCustomerUpdateRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	conn := New().WithClock(func() time.Time { return now })
	repo := conn.Customers()

	c, err := repo.Create(ctx, "owner", repository.CustomerInput{Name: "Ada", Email: "ada@example.com", Status: repository.CustomerActive})
	require.NoError(t, err)

	now = now.Add(time.Hour)
	up, err := repo.Update(ctx, "owner", c.ID, repository.CustomerInput{Name: "Ada L.", Email: "ada@example.com", Status: repository.CustomerInactive})
	require.NoError(t, err)
	assert.Equal(t, c.CreatedAt, up.CreatedAt)
	assert.True(t, up.UpdatedAt.After(c.UpdatedAt))
	assert.Equal(t, repository.CustomerInactive, up.Status)
}

func TestUserEmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	_, err := users.Create(ctx, "Ada@Example.com", "h")
	require.NoError(t, err)
	_, err = users.Create(ctx, "ada@example.com", "h")
	assert.ErrorIs(t, err, repository.ErrConflict)

	u, err := users.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestTokenRevokeOnlyOnce(t *testing.T) {
	ctx := context.Background()
	tokens := New().Tokens()

	tok, err := tokens.Create(ctx, repository.CreateRefreshTokenInput{UserID: "u", TokenHash: "h", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	require.NoError(t, tokens.Revoke(ctx, tok.ID, nil))
	assert.ErrorIs(t, tokens.Revoke(ctx, tok.ID, nil), repository.ErrNotFound)
}
