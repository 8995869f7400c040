package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by repository implementations. The service maps
// them onto the wire taxonomy; implementations must return these exact
// sentinels so the mapping works regardless of the backing store.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrActiveAdminExists = errors.New("active admin already exists")
	ErrGroupNotFound     = errors.New("group not found")
	ErrStateNotFound     = errors.New("state not found")
)

// LoginEntity is the credential view of an account used by Login. It is the
// only place the stored hash leaves the repository.
type LoginEntity struct {
	ID           uuid.UUID
	Username     string
	PasswordHash []byte
	StateCode    StateCode
}

// CreateAccountParams carries a fully resolved account for insertion
type CreateAccountParams struct {
	ID           uuid.UUID
	Username     string
	PasswordHash []byte
	GroupID      uuid.UUID
	StateID      uuid.UUID
	CreatedAt    time.Time
}

// PageParams selects one page of accounts ordered by id ascending
type PageParams struct {
	Limit  int32
	Offset int32
}

// AccountRepository defines the interface for account storage operations.
//
// CreateAccount must be atomic with respect to the username-uniqueness and
// single-active-admin constraints: when two inserts race, exactly one may
// succeed and the loser gets ErrDuplicateUsername or ErrActiveAdminExists.
type AccountRepository interface {
	// Reference data operations
	GetGroupByCode(ctx context.Context, code GroupCode) (Group, error)
	GetStateByCode(ctx context.Context, code StateCode) (State, error)
	EnsureGroup(ctx context.Context, group Group) error
	EnsureState(ctx context.Context, state State) error

	// Account operations
	CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error)
	GetAccountDetail(ctx context.Context, id uuid.UUID) (AccountDetail, error)
	FindLoginByUsername(ctx context.Context, username string) (LoginEntity, error)
	CountAccounts(ctx context.Context) (int64, error)
	ListAccountDetails(ctx context.Context, arg PageParams) ([]AccountDetail, error)
	ActiveAdminExists(ctx context.Context) (bool, error)
	SetAccountState(ctx context.Context, id uuid.UUID, stateID uuid.UUID) error
}
