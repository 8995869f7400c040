package api

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the wire shape of a registration
type RegisterRequest struct {
	Username  string `json:"login"`
	Password  string `json:"password"`
	GroupCode string `json:"group_code"`
}

// GroupResponse is the wire shape of a group descriptor
type GroupResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
}

// StateResponse is the wire shape of a state descriptor
type StateResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
}

// AccountResponse is the wire shape of an account projection. The stored
// credential hash is never part of it.
type AccountResponse struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"login"`
	Group     GroupResponse `json:"group"`
	State     StateResponse `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
}

// PageResponse is the wire shape of one page of accounts
type PageResponse struct {
	Items      []AccountResponse `json:"items"`
	Current    int               `json:"current"`
	PageSize   int               `json:"page_size"`
	PageAmount int               `json:"page_amount"`
}

// ErrorResponse is the wire shape of a failed request
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
