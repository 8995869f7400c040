// Package bootstrap prepares the database before the service accepts
// requests: it applies schema migrations and ensures the group and state
// reference rows exist. Both steps are idempotent.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tendant/simple-account/pkg/account"
)

// EnsureReferenceData idempotently inserts the group and state reference
// rows. Every account references these rows, so this must complete before
// any account operation runs.
func EnsureReferenceData(ctx context.Context, repo account.AccountRepository) error {
	for _, group := range account.DefaultGroups() {
		if err := repo.EnsureGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to ensure group %s: %w", group.Code, err)
		}
	}

	for _, state := range account.DefaultStates() {
		if err := repo.EnsureState(ctx, state); err != nil {
			return fmt.Errorf("failed to ensure state %s: %w", state.Code, err)
		}
	}

	// Verify the rows are actually resolvable, loudly, so a broken
	// bootstrap never turns into per-request internal faults.
	for _, code := range []account.GroupCode{account.GroupAdmin, account.GroupUser} {
		if _, err := repo.GetGroupByCode(ctx, code); err != nil {
			return fmt.Errorf("group %s missing after bootstrap: %w", code, err)
		}
	}
	for _, code := range []account.StateCode{account.StateActive, account.StateBlocked} {
		if _, err := repo.GetStateByCode(ctx, code); err != nil {
			return fmt.Errorf("state %s missing after bootstrap: %w", code, err)
		}
	}

	slog.Info("Reference data ensured", "groups", 2, "states", 2)
	return nil
}
