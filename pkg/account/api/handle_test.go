package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-account/pkg/account"
	"github.com/tendant/simple-account/pkg/bootstrap"
	"github.com/tendant/simple-account/pkg/password"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := account.NewInMemoryAccountRepository()
	require.NoError(t, bootstrap.EnsureReferenceData(context.Background(), repo))

	svc := account.NewAccountService(repo, password.NewBcryptHasher(), password.NewDefaultPolicyChecker(password.DefaultPolicy()))
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func register(t *testing.T, server *httptest.Server, login, pwd, groupCode string) *http.Response {
	t.Helper()

	body, err := json.Marshal(RegisterRequest{Username: login, Password: pwd, GroupCode: groupCode})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("register then list", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "P@ssw0rd", "user")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		listResp, err := http.Get(server.URL + "/api/users?page=1")
		require.NoError(t, err)
		defer listResp.Body.Close()
		require.Equal(t, http.StatusOK, listResp.StatusCode)

		var page PageResponse
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "alice", page.Items[0].Username)
		assert.Equal(t, "user", page.Items[0].Group.Code)
		assert.Equal(t, "active", page.Items[0].State.Code)
		assert.Equal(t, 1, page.Current)
		assert.Equal(t, 10, page.PageSize)
		assert.Equal(t, 1, page.PageAmount)
	})

	t.Run("duplicate username yields 409", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "P@ssw0rd", "user")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = register(t, server, "alice", "Other1!pwd", "user")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("second admin yields 409", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "root1", "P@ssw0rd", "admin")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = register(t, server, "root2", "P@ssw0rd", "admin")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password yields 400 with reasons", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "abc", "user")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.Message, "at least 8 characters")
		assert.Contains(t, body.Message, "uppercase")
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Post(server.URL+"/api/register", "application/json", bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUsersEndpoint(t *testing.T) {
	t.Run("empty set yields 404", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(server.URL + "/api/users?page=1&pageSize=10")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad page yields 400", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(server.URL + "/api/users?page=0")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, err = http.Get(server.URL + "/api/users?page=abc")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("page past the end yields 404", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "P@ssw0rd", "user")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		listResp, err := http.Get(server.URL + "/api/users?page=2")
		require.NoError(t, err)
		defer listResp.Body.Close()
		assert.Equal(t, http.StatusNotFound, listResp.StatusCode)
	})
}

func TestGetUserEndpoint(t *testing.T) {
	t.Run("returns the projection without credential material", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "P@ssw0rd", "user")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		id := lookupID(t, server, "alice")

		getResp, err := http.Get(fmt.Sprintf("%s/api/user/%s", server.URL, id))
		require.NoError(t, err)
		defer getResp.Body.Close()
		require.Equal(t, http.StatusOK, getResp.StatusCode)

		var raw map[string]interface{}
		require.NoError(t, json.NewDecoder(getResp.Body).Decode(&raw))
		assert.Equal(t, "alice", raw["login"])
		assert.NotContains(t, raw, "password")
		assert.NotContains(t, raw, "credentialHash")
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(fmt.Sprintf("%s/api/user/%s", server.URL, uuid.New()))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id yields 400", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(server.URL + "/api/user/not-a-uuid")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetMeEndpoint(t *testing.T) {
	t.Run("authenticated caller gets their own account", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "P@ssw0rd", "user")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/user/me", nil)
		require.NoError(t, err)
		req.SetBasicAuth("alice", "P@ssw0rd")

		meResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer meResp.Body.Close()
		require.Equal(t, http.StatusOK, meResp.StatusCode)

		var me AccountResponse
		require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
		assert.Equal(t, "alice", me.Username)
	})

	t.Run("no credentials yields 401", func(t *testing.T) {
		server := setupServer(t)

		resp, err := http.Get(server.URL + "/api/user/me")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("blocked account yields 401 with the right password", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "alice", "P@ssw0rd", "user")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		id := lookupID(t, server, "alice")

		deleteAccount(t, server, id, http.StatusOK)

		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/user/me", nil)
		require.NoError(t, err)
		req.SetBasicAuth("alice", "P@ssw0rd")

		meResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer meResp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	t.Run("delete then delete again", func(t *testing.T) {
		server := setupServer(t)

		resp := register(t, server, "bob", "P@ssw0rd", "user")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		id := lookupID(t, server, "bob")

		deleteAccount(t, server, id, http.StatusOK)
		deleteAccount(t, server, id, http.StatusConflict)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		server := setupServer(t)

		deleteAccount(t, server, uuid.New(), http.StatusNotFound)
	})
}

func deleteAccount(t *testing.T, server *httptest.Server, id uuid.UUID, wantStatus int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/user/%s", server.URL, id), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, wantStatus, resp.StatusCode)
}

func lookupID(t *testing.T, server *httptest.Server, login string) uuid.UUID {
	t.Helper()

	resp, err := http.Get(server.URL + "/api/users?page=1&pageSize=100")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page PageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	for _, item := range page.Items {
		if item.Username == login {
			return item.ID
		}
	}
	t.Fatalf("account %s not found", login)
	return uuid.Nil
}
