// Package account implements user account management: registration with
// group assignment, credential verification, a paginated account listing,
// and soft deletion by moving accounts into the blocked state.
//
// Accounts belong to exactly one group (admin or user) and one state
// (active or blocked). Two invariants are enforced at the storage layer so
// they hold under concurrent registration: usernames are unique, and at
// most one active account may hold the admin group at a time. Blocking the
// admin frees the slot for a later registration.
//
// AccountService is the domain entry point; it speaks to storage through
// the AccountRepository interface, which has a Postgres implementation
// backed by sqlc-generated queries and an in-memory implementation used in
// tests.
package account
