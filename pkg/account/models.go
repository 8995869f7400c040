package account

import (
	"time"

	"github.com/google/uuid"
)

// GroupCode is the fixed classification of an account's privilege tier
type GroupCode string

const (
	GroupAdmin GroupCode = "admin"
	GroupUser  GroupCode = "user"
)

// Valid reports whether the code is one of the known group codes
func (c GroupCode) Valid() bool {
	return c == GroupAdmin || c == GroupUser
}

// StateCode is the fixed classification of an account's standing
type StateCode string

const (
	StateActive  StateCode = "active"
	StateBlocked StateCode = "blocked"
)

// Reference rows are seeded with well-known identifiers so the store-level
// single-active-admin constraint can name them. Bootstrap must reuse these
// ids when re-inserting a missing row.
var (
	GroupAdminID   = uuid.MustParse("5f2a66f1-53a8-4c55-9a16-7e9ee24f2c93")
	GroupUserID    = uuid.MustParse("b1b74d33-9a9d-4d8c-9c59-2a0c3bcd9734")
	StateActiveID  = uuid.MustParse("3d8e0d82-4c4b-44f0-8dbb-6a4a35e3b7a2")
	StateBlockedID = uuid.MustParse("9c2f43e8-0b8f-4f90-b23a-77f1b05c8c41")
)

// Group represents a persisted group reference row
type Group struct {
	ID          uuid.UUID
	Code        GroupCode
	Description string
}

// State represents a persisted state reference row
type State struct {
	ID          uuid.UUID
	Code        StateCode
	Description string
}

// DefaultGroups returns the canonical group reference rows
func DefaultGroups() []Group {
	return []Group{
		{ID: GroupAdminID, Code: GroupAdmin, Description: "Admin"},
		{ID: GroupUserID, Code: GroupUser, Description: "User"},
	}
}

// DefaultStates returns the canonical state reference rows
func DefaultStates() []State {
	return []State{
		{ID: StateActiveID, Code: StateActive, Description: "Active"},
		{ID: StateBlockedID, Code: StateBlocked, Description: "Blocked"},
	}
}

// Account represents a registered identity in the domain model.
// PasswordHash is never exposed through projections.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash []byte
	GroupID      uuid.UUID
	StateID      uuid.UUID
	CreatedAt    time.Time
}

// GroupInfo is the outward projection of a group reference row
type GroupInfo struct {
	ID          uuid.UUID
	Code        GroupCode
	Description string
}

// StateInfo is the outward projection of a state reference row
type StateInfo struct {
	ID          uuid.UUID
	Code        StateCode
	Description string
}

// AccountDetail is the outward projection of an account with its group and
// state descriptors. It carries no credential material.
type AccountDetail struct {
	ID        uuid.UUID
	Username  string
	Group     GroupInfo
	State     StateInfo
	CreatedAt time.Time
}

// AccountPage is one page of account projections
type AccountPage struct {
	Items     []AccountDetail
	Current   int
	PageSize  int
	PageCount int
}
