package api

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-account/pkg/account"
	"github.com/tendant/simple-account/pkg/auth"
	acctErrors "github.com/tendant/simple-account/pkg/errors"
)

// Handler handles HTTP requests for account management
type Handler struct {
	accountService *account.AccountService
}

// NewHandler creates a new account handler
func NewHandler(accountService *account.AccountService) *Handler {
	return &Handler{
		accountService: accountService,
	}
}

// RegisterRoutes registers the account routes. The /api/user/me route is
// mounted behind the Basic handshake; everything else is open.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/users", h.GetAllUsers)
		r.Get("/user/{id}", h.GetUser)
		r.Delete("/user/{id}", h.DeleteUser)

		r.Group(func(r chi.Router) {
			r.Use(auth.BasicAuth(h.accountService))
			r.Get("/user/me", h.GetMe)
		})
	})
}

// Register handles the request to register a new account
// (POST /api/register)
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var request RegisterRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeInvalidInput), Message: "invalid request body"})
		return
	}

	err := h.accountService.Register(r.Context(), account.RegisterParams{
		Username:  request.Username,
		Password:  request.Password,
		GroupCode: account.GroupCode(request.GroupCode),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.PlainText(w, r, http.StatusText(http.StatusOK))
}

// GetAllUsers handles the request to list accounts with pagination
// (GET /api/users?page=&pageSize=)
func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeInvalidInput), Message: "invalid page"})
		return
	}
	pageSize, err := queryInt(r, "pageSize", account.DefaultPageSize)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeInvalidInput), Message: "invalid pageSize"})
		return
	}

	result, err := h.accountService.GetAllAccounts(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	items := make([]AccountResponse, 0, len(result.Items))
	for _, detail := range result.Items {
		items = append(items, toAccountResponse(detail))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, PageResponse{
		Items:      items,
		Current:    result.Current,
		PageSize:   result.PageSize,
		PageAmount: result.PageCount,
	})
}

// GetUser handles the request to get a single account by id
// (GET /api/user/{id})
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeInvalidInput), Message: "invalid account id"})
		return
	}

	detail, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAccountResponse(detail))
}

// GetMe handles the request to get the authenticated account
// (GET /api/user/me)
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.AccountID(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeUnauthorized), Message: "authentication required"})
		return
	}

	detail, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAccountResponse(detail))
}

// DeleteUser handles the request to block an account
// (DELETE /api/user/{id})
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeInvalidInput), Message: "invalid account id"})
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.PlainText(w, r, http.StatusText(http.StatusOK))
}

// toAccountResponse projects a service detail into its wire shape
func toAccountResponse(detail account.AccountDetail) AccountResponse {
	var response AccountResponse
	copier.Copy(&response, &detail)
	return response
}

// respondError maps a service error onto its wire status. Internal faults
// are logged here; everything else already carries its status.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var structured *acctErrors.Error
	if stderrors.As(err, &structured) {
		status := structured.HTTPStatusCode()
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed", "code", structured.Code, "err", err)
		}
		render.Status(r, status)
		render.JSON(w, r, ErrorResponse{Code: string(structured.Code), Message: structured.Message})
		return
	}

	slog.Error("Request failed with unstructured error", "err", err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorResponse{Code: string(acctErrors.ErrCodeInternal), Message: "internal error"})
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
