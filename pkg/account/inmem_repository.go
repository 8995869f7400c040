package account

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryAccountRepository implements AccountRepository using in-memory
// storage. A single mutex covers every mutation, so the uniqueness and
// single-active-admin constraints hold under concurrent registration just
// as the database constraints do.
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	groups   map[uuid.UUID]Group
	states   map[uuid.UUID]State
	accounts map[uuid.UUID]Account
}

// NewInMemoryAccountRepository creates a new in-memory account repository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		groups:   make(map[uuid.UUID]Group),
		states:   make(map[uuid.UUID]State),
		accounts: make(map[uuid.UUID]Account),
	}
}

// GetGroupByCode gets a group reference row by code
func (r *InMemoryAccountRepository) GetGroupByCode(ctx context.Context, code GroupCode) (Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.Code == code {
			return g, nil
		}
	}
	return Group{}, ErrGroupNotFound
}

// GetStateByCode gets a state reference row by code
func (r *InMemoryAccountRepository) GetStateByCode(ctx context.Context, code StateCode) (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.states {
		if s.Code == code {
			return s, nil
		}
	}
	return State{}, ErrStateNotFound
}

// EnsureGroup inserts a group row if no row with the same code exists
func (r *InMemoryAccountRepository) EnsureGroup(ctx context.Context, group Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.groups {
		if g.Code == group.Code {
			return nil
		}
	}
	r.groups[group.ID] = group
	return nil
}

// EnsureState inserts a state row if no row with the same code exists
func (r *InMemoryAccountRepository) EnsureState(ctx context.Context, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.states {
		if s.Code == state.Code {
			return nil
		}
	}
	r.states[state.ID] = state
	return nil
}

// CreateAccount inserts an account, enforcing the username and
// single-active-admin constraints atomically under the write lock
func (r *InMemoryAccountRepository) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Username == arg.Username {
			return Account{}, ErrDuplicateUsername
		}
	}

	if arg.GroupID == GroupAdminID && arg.StateID == StateActiveID {
		for _, a := range r.accounts {
			if a.GroupID == GroupAdminID && a.StateID == StateActiveID {
				return Account{}, ErrActiveAdminExists
			}
		}
	}

	acct := Account{
		ID:           arg.ID,
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		GroupID:      arg.GroupID,
		StateID:      arg.StateID,
		CreatedAt:    arg.CreatedAt,
	}
	r.accounts[acct.ID] = acct
	return acct, nil
}

// GetAccountDetail gets an account projection with its group and state rows
func (r *InMemoryAccountRepository) GetAccountDetail(ctx context.Context, id uuid.UUID) (AccountDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.accounts[id]
	if !ok {
		return AccountDetail{}, ErrAccountNotFound
	}
	return r.toDetail(acct), nil
}

// FindLoginByUsername finds the credential view of an account by exact username
func (r *InMemoryAccountRepository) FindLoginByUsername(ctx context.Context, username string) (LoginEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Username == username {
			return LoginEntity{
				ID:           a.ID,
				Username:     a.Username,
				PasswordHash: a.PasswordHash,
				StateCode:    r.states[a.StateID].Code,
			}, nil
		}
	}
	return LoginEntity{}, ErrAccountNotFound
}

// CountAccounts counts all accounts
func (r *InMemoryAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.accounts)), nil
}

// ListAccountDetails lists one page of account projections ordered by id ascending
func (r *InMemoryAccountRepository) ListAccountDetails(ctx context.Context, arg PageParams) ([]AccountDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return bytes.Compare(all[i].ID[:], all[j].ID[:]) < 0
	})

	start := int(arg.Offset)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(arg.Limit)
	if end > len(all) {
		end = len(all)
	}

	details := make([]AccountDetail, 0, end-start)
	for _, a := range all[start:end] {
		details = append(details, r.toDetail(a))
	}
	return details, nil
}

// ActiveAdminExists reports whether an account with (group=admin, state=active) exists
func (r *InMemoryAccountRepository) ActiveAdminExists(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.GroupID == GroupAdminID && a.StateID == StateActiveID {
			return true, nil
		}
	}
	return false, nil
}

// SetAccountState updates an account's state reference
func (r *InMemoryAccountRepository) SetAccountState(ctx context.Context, id uuid.UUID, stateID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	acct.StateID = stateID
	r.accounts[id] = acct
	return nil
}

// toDetail projects an account with its reference rows, caller holds the lock
func (r *InMemoryAccountRepository) toDetail(a Account) AccountDetail {
	group := r.groups[a.GroupID]
	state := r.states[a.StateID]
	return AccountDetail{
		ID:        a.ID,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
		Group: GroupInfo{
			ID:          group.ID,
			Code:        group.Code,
			Description: group.Description,
		},
		State: StateInfo{
			ID:          state.ID,
			Code:        state.Code,
			Description: state.Description,
		},
	}
}
