package account_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/tendant/simple-account/pkg/account"
	"github.com/tendant/simple-account/pkg/account/accountdb"
	"github.com/tendant/simple-account/pkg/bootstrap"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "account_db"
	dbUser := "account"
	dbPassword := "pwd"

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, bootstrap.RunMigrations(ctx, connString))

	poolConfig, err := pgxpool.ParseConfig(connString)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func newAccountParams(username string, groupID uuid.UUID) CreateAccountParams {
	return CreateAccountParams{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: []byte("$2a$10$abcdefghijklmnopqrstuv"),
		GroupID:      groupID,
		StateID:      StateActiveID,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestPostgresAccountRepository(t *testing.T) {
	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresAccountRepository(accountdb.New(pool))

	t.Run("reference data is seeded by migrations", func(t *testing.T) {
		group, err := repo.GetGroupByCode(ctx, GroupAdmin)
		require.NoError(t, err)
		assert.Equal(t, GroupAdminID, group.ID)

		state, err := repo.GetStateByCode(ctx, StateBlocked)
		require.NoError(t, err)
		assert.Equal(t, StateBlockedID, state.ID)

		_, err = repo.GetGroupByCode(ctx, GroupCode("nope"))
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("create and fetch detail", func(t *testing.T) {
		params := newAccountParams("alice", GroupUserID)
		created, err := repo.CreateAccount(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, params.ID, created.ID)

		detail, err := repo.GetAccountDetail(ctx, params.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", detail.Username)
		assert.Equal(t, GroupUser, detail.Group.Code)
		assert.Equal(t, StateActive, detail.State.Code)

		_, err = repo.GetAccountDetail(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("duplicate username maps to sentinel", func(t *testing.T) {
		_, err := repo.CreateAccount(ctx, newAccountParams("alice", GroupUserID))
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("second active admin maps to sentinel", func(t *testing.T) {
		_, err := repo.CreateAccount(ctx, newAccountParams("root1", GroupAdminID))
		require.NoError(t, err)

		exists, err := repo.ActiveAdminExists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = repo.CreateAccount(ctx, newAccountParams("root2", GroupAdminID))
		assert.ErrorIs(t, err, ErrActiveAdminExists)
	})

	t.Run("blocking the admin frees the slot", func(t *testing.T) {
		login, err := repo.FindLoginByUsername(ctx, "root1")
		require.NoError(t, err)

		require.NoError(t, repo.SetAccountState(ctx, login.ID, StateBlockedID))

		exists, err := repo.ActiveAdminExists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.CreateAccount(ctx, newAccountParams("root2", GroupAdminID))
		require.NoError(t, err)
	})

	t.Run("find login by username", func(t *testing.T) {
		login, err := repo.FindLoginByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, StateActive, login.StateCode)
		assert.NotEmpty(t, login.PasswordHash)

		_, err = repo.FindLoginByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("count and paginate", func(t *testing.T) {
		total, err := repo.CountAccounts(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, total, int64(3))

		first, err := repo.ListAccountDetails(ctx, PageParams{Limit: 2, Offset: 0})
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.True(t, first[0].ID.String() < first[1].ID.String())

		again, err := repo.ListAccountDetails(ctx, PageParams{Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})
}

func TestPostgresConcurrentAdminInsert(t *testing.T) {
	pool, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPostgresAccountRepository(accountdb.New(pool))

	const attempts = 4
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.CreateAccount(ctx, newAccountParams("admin"+string(rune('a'+i)), GroupAdminID))
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrActiveAdminExists):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)
}
