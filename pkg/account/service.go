package account

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	acctErrors "github.com/tendant/simple-account/pkg/errors"
	"github.com/tendant/simple-account/pkg/password"
)

// DefaultPageSize is used when the caller does not specify a page size
const DefaultPageSize = 10

// AccountService provides account lifecycle operations: registration,
// lookup, paginated listing, blocking, and credential verification.
type AccountService struct {
	repo          AccountRepository
	hasher        password.Hasher
	policyChecker password.PolicyChecker
}

// NewAccountService creates a new account service
func NewAccountService(repo AccountRepository, hasher password.Hasher, policyChecker password.PolicyChecker) *AccountService {
	return &AccountService{
		repo:          repo,
		hasher:        hasher,
		policyChecker: policyChecker,
	}
}

// RegisterParams carries the registration input
type RegisterParams struct {
	Username  string
	Password  string
	GroupCode GroupCode
}

// Register creates a new account in the requested group with the active
// state. The username must be unused and at most one active admin may exist
// at any time; the backing store re-checks both at commit time, so a race
// between two registrations resolves to exactly one winner.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) error {
	if params.Username == "" {
		return acctErrors.InvalidInput("username", "must not be empty")
	}
	if !params.GroupCode.Valid() {
		return acctErrors.InvalidInput("group_code", "must be admin or user")
	}

	// Resolve reference rows up front. Their absence means bootstrap did
	// not run, which is a configuration fault, not a user condition.
	userGroup, err := s.resolveGroup(ctx, GroupUser)
	if err != nil {
		return err
	}
	adminGroup, err := s.resolveGroup(ctx, GroupAdmin)
	if err != nil {
		return err
	}

	group := userGroup
	if params.GroupCode == GroupAdmin {
		group = adminGroup
	}

	if params.GroupCode == GroupAdmin {
		exists, err := s.repo.ActiveAdminExists(ctx)
		if err != nil {
			return acctErrors.InternalWrap(err, "failed to check for active admin")
		}
		if exists {
			return acctErrors.New(acctErrors.ErrCodeAdminExists, "an active admin account already exists")
		}
	}

	_, err = s.repo.FindLoginByUsername(ctx, params.Username)
	if err == nil {
		return acctErrors.Newf(acctErrors.ErrCodeAccountAlreadyExists, "username already taken: %s", params.Username)
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return acctErrors.InternalWrap(err, "failed to check username")
	}

	activeState, err := s.repo.GetStateByCode(ctx, StateActive)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			slog.Error("State reference row missing", "code", StateActive)
			return acctErrors.New(acctErrors.ErrCodeReferenceDataMissing, "active state not found")
		}
		return acctErrors.InternalWrap(err, "failed to resolve state")
	}

	if err := s.policyChecker.CheckPasswordComplexity(params.Password); err != nil {
		return acctErrors.Wrap(err, acctErrors.ErrCodePasswordComplexity, err.Error())
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return acctErrors.InternalWrap(err, "failed to hash password")
	}

	_, err = s.repo.CreateAccount(ctx, CreateAccountParams{
		ID:           uuid.New(),
		Username:     params.Username,
		PasswordHash: []byte(hash),
		GroupID:      group.ID,
		StateID:      activeState.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// A constraint violation here means this registration lost a race
		// that the pre-checks could not see.
		if errors.Is(err, ErrDuplicateUsername) {
			return acctErrors.Newf(acctErrors.ErrCodeAccountAlreadyExists, "username already taken: %s", params.Username)
		}
		if errors.Is(err, ErrActiveAdminExists) {
			return acctErrors.New(acctErrors.ErrCodeAdminExists, "an active admin account already exists")
		}
		return acctErrors.InternalWrap(err, "failed to create account")
	}

	slog.Info("Registered account", "username", params.Username, "group", params.GroupCode)
	return nil
}

func (s *AccountService) resolveGroup(ctx context.Context, code GroupCode) (Group, error) {
	group, err := s.repo.GetGroupByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			slog.Error("Group reference row missing", "code", code)
			return Group{}, acctErrors.Newf(acctErrors.ErrCodeReferenceDataMissing, "%s group not found", code)
		}
		return Group{}, acctErrors.InternalWrap(err, "failed to resolve group")
	}
	return group, nil
}

// GetAccount returns the projection of a single account
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (AccountDetail, error) {
	detail, err := s.repo.GetAccountDetail(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return AccountDetail{}, acctErrors.New(acctErrors.ErrCodeAccountNotFound, "account not found")
		}
		return AccountDetail{}, acctErrors.InternalWrap(err, "failed to get account")
	}
	return detail, nil
}

// GetAllAccounts returns one page of account projections. Pages are 1-based
// and ordered by account id ascending so paging stays stable while rows are
// inserted. Requesting a page past the last yields a not-found outcome,
// including page 1 of an empty account set.
func (s *AccountService) GetAllAccounts(ctx context.Context, page, pageSize int) (AccountPage, error) {
	if page < 1 {
		return AccountPage{}, acctErrors.InvalidInput("page", "must be 1 or greater")
	}
	if pageSize < 1 {
		return AccountPage{}, acctErrors.InvalidInput("pageSize", "must be 1 or greater")
	}

	total, err := s.repo.CountAccounts(ctx)
	if err != nil {
		return AccountPage{}, acctErrors.InternalWrap(err, "failed to count accounts")
	}

	pageCount := int(math.Ceil(float64(total) / float64(pageSize)))
	if pageCount < page {
		return AccountPage{}, acctErrors.New(acctErrors.ErrCodePageNotFound, "page not found")
	}

	items, err := s.repo.ListAccountDetails(ctx, PageParams{
		Limit:  int32(pageSize),
		Offset: int32((page - 1) * pageSize),
	})
	if err != nil {
		return AccountPage{}, acctErrors.InternalWrap(err, "failed to list accounts")
	}

	return AccountPage{
		Items:     items,
		Current:   page,
		PageSize:  pageSize,
		PageCount: pageCount,
	}, nil
}

// DeleteAccount blocks an account. Accounts are never physically removed;
// a second delete of the same account is rejected with a conflict rather
// than silently accepted.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	detail, err := s.repo.GetAccountDetail(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return acctErrors.New(acctErrors.ErrCodeAccountNotFound, "account not found")
		}
		return acctErrors.InternalWrap(err, "failed to get account")
	}

	blockedState, err := s.repo.GetStateByCode(ctx, StateBlocked)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			slog.Error("State reference row missing", "code", StateBlocked)
			return acctErrors.New(acctErrors.ErrCodeReferenceDataMissing, "blocked state not found")
		}
		return acctErrors.InternalWrap(err, "failed to resolve state")
	}

	if detail.State.Code == StateBlocked {
		return acctErrors.New(acctErrors.ErrCodeAccountBlocked, "account already blocked")
	}

	if err := s.repo.SetAccountState(ctx, id, blockedState.ID); err != nil {
		return acctErrors.InternalWrap(err, "failed to block account")
	}

	slog.Info("Blocked account", "id", id)
	return nil
}

// Login verifies a credential pair. A failed authentication is an expected
// outcome, not an error: the second return value is false for an unknown
// username, a blocked account, or a password mismatch, and the caller gets
// no hint which one it was. An error is returned only when the system
// itself failed. On success the account id is the caller's identity.
func (s *AccountService) Login(ctx context.Context, username, plaintext string) (uuid.UUID, bool, error) {
	entity, err := s.repo.FindLoginByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, acctErrors.InternalWrap(err, "failed to look up account")
	}

	// Blocked accounts never authenticate, regardless of the password
	if entity.StateCode == StateBlocked {
		return uuid.Nil, false, nil
	}

	match, err := s.hasher.Verify(plaintext, string(entity.PasswordHash))
	if err != nil {
		return uuid.Nil, false, acctErrors.InternalWrap(err, "failed to verify password")
	}
	if !match {
		return uuid.Nil, false, nil
	}

	return entity.ID, true, nil
}
