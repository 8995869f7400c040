package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tendant/simple-account/pkg/account/accountdb"
)

// Names of the schema constraints that back the registration invariants.
// The migration defines both; a 23505 from either is translated to the
// matching domain error so racing registrations fail the same way the
// pre-checks do.
const (
	usernameConstraint    = "accounts_username_idx"
	activeAdminConstraint = "accounts_one_active_admin_idx"
)

// PostgresAccountRepository implements AccountRepository using accountdb.Queries
type PostgresAccountRepository struct {
	queries *accountdb.Queries
}

// NewPostgresAccountRepository creates a new PostgreSQL-based account repository
func NewPostgresAccountRepository(queries *accountdb.Queries) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		queries: queries,
	}
}

// GetGroupByCode gets a group reference row by code
func (r *PostgresAccountRepository) GetGroupByCode(ctx context.Context, code GroupCode) (Group, error) {
	row, err := r.queries.GetGroupByCode(ctx, string(code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Group{}, ErrGroupNotFound
		}
		return Group{}, err
	}
	return Group{ID: row.ID, Code: GroupCode(row.Code), Description: row.Description}, nil
}

// GetStateByCode gets a state reference row by code
func (r *PostgresAccountRepository) GetStateByCode(ctx context.Context, code StateCode) (State, error) {
	row, err := r.queries.GetStateByCode(ctx, string(code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return State{}, ErrStateNotFound
		}
		return State{}, err
	}
	return State{ID: row.ID, Code: StateCode(row.Code), Description: row.Description}, nil
}

// EnsureGroup inserts a group row if no row with the same code exists
func (r *PostgresAccountRepository) EnsureGroup(ctx context.Context, group Group) error {
	return r.queries.EnsureGroup(ctx, accountdb.EnsureGroupParams{
		ID:          group.ID,
		Code:        string(group.Code),
		Description: group.Description,
	})
}

// EnsureState inserts a state row if no row with the same code exists
func (r *PostgresAccountRepository) EnsureState(ctx context.Context, state State) error {
	return r.queries.EnsureState(ctx, accountdb.EnsureStateParams{
		ID:          state.ID,
		Code:        string(state.Code),
		Description: state.Description,
	})
}

// CreateAccount inserts an account. The unique indexes on username and on
// (admin, active) are checked at commit time; violations come back as
// ErrDuplicateUsername or ErrActiveAdminExists.
func (r *PostgresAccountRepository) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	createdAt := pgtype.Timestamptz{}
	if err := createdAt.Scan(arg.CreatedAt); err != nil {
		return Account{}, err
	}

	row, err := r.queries.CreateAccount(ctx, accountdb.CreateAccountParams{
		ID:        arg.ID,
		Username:  arg.Username,
		Password:  arg.PasswordHash,
		GroupID:   arg.GroupID,
		StateID:   arg.StateID,
		CreatedAt: createdAt,
	})
	if err != nil {
		return Account{}, translateConstraintError(err)
	}

	return Account{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.Password,
		GroupID:      row.GroupID,
		StateID:      row.StateID,
		CreatedAt:    row.CreatedAt.Time,
	}, nil
}

// GetAccountDetail gets an account projection with its group and state rows
func (r *PostgresAccountRepository) GetAccountDetail(ctx context.Context, id uuid.UUID) (AccountDetail, error) {
	row, err := r.queries.GetAccountDetail(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccountDetail{}, ErrAccountNotFound
		}
		return AccountDetail{}, err
	}
	return AccountDetail{
		ID:        row.ID,
		Username:  row.Username,
		CreatedAt: row.CreatedAt.Time,
		Group: GroupInfo{
			ID:          row.GroupID,
			Code:        GroupCode(row.GroupCode),
			Description: row.GroupDescription,
		},
		State: StateInfo{
			ID:          row.StateID,
			Code:        StateCode(row.StateCode),
			Description: row.StateDescription,
		},
	}, nil
}

// FindLoginByUsername finds the credential view of an account by exact username
func (r *PostgresAccountRepository) FindLoginByUsername(ctx context.Context, username string) (LoginEntity, error) {
	row, err := r.queries.FindLoginByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LoginEntity{}, ErrAccountNotFound
		}
		return LoginEntity{}, err
	}
	return LoginEntity{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.Password,
		StateCode:    StateCode(row.StateCode),
	}, nil
}

// CountAccounts counts all accounts
func (r *PostgresAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	return r.queries.CountAccounts(ctx)
}

// ListAccountDetails lists one page of account projections ordered by id ascending
func (r *PostgresAccountRepository) ListAccountDetails(ctx context.Context, arg PageParams) ([]AccountDetail, error) {
	rows, err := r.queries.ListAccountDetails(ctx, accountdb.ListAccountDetailsParams{
		Limit:  arg.Limit,
		Offset: arg.Offset,
	})
	if err != nil {
		return nil, err
	}

	details := make([]AccountDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, AccountDetail{
			ID:        row.ID,
			Username:  row.Username,
			CreatedAt: row.CreatedAt.Time,
			Group: GroupInfo{
				ID:          row.GroupID,
				Code:        GroupCode(row.GroupCode),
				Description: row.GroupDescription,
			},
			State: StateInfo{
				ID:          row.StateID,
				Code:        StateCode(row.StateCode),
				Description: row.StateDescription,
			},
		})
	}
	return details, nil
}

// ActiveAdminExists reports whether an account with (group=admin, state=active) exists
func (r *PostgresAccountRepository) ActiveAdminExists(ctx context.Context) (bool, error) {
	return r.queries.ActiveAdminExists(ctx)
}

// SetAccountState updates an account's state reference
func (r *PostgresAccountRepository) SetAccountState(ctx context.Context, id uuid.UUID, stateID uuid.UUID) error {
	return r.queries.SetAccountState(ctx, accountdb.SetAccountStateParams{
		ID:      id,
		StateID: stateID,
	})
}

// translateConstraintError maps unique-violation errors onto domain errors
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return ErrDuplicateUsername
		case activeAdminConstraint:
			return ErrActiveAdminExists
		}
	}
	return err
}

var _ AccountRepository = (*PostgresAccountRepository)(nil)
var _ AccountRepository = (*InMemoryAccountRepository)(nil)
