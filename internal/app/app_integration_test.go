package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aidar/team-users-service/internal/app"
	"github.com/aidar/team-users-service/internal/config"
	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/testutil"
)

// Тестовые структуры соответствующие ответу API
type profileResponse struct {
	ID       int    `json:"id"`
	TeamID   int    `json:"teamId"`
	UserID   int    `json:"userId"`
	Role     string `json:"role"`
	Accepted bool   `json:"accepted"`
}

type userResponse struct {
	ID       int             `json:"id"`
	Email    string          `json:"email"`
	Username *string         `json:"username"`
	Profile  profileResponse `json:"profile"`
}

type listResponse struct {
	Status string         `json:"status"`
	Data   []userResponse `json:"data"`
}

type errorResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Error  struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// testEnv содержит поднятое приложение и данные
type testEnv struct {
	app     *app.App
	server  *httptest.Server
	seeder  *testutil.Seeder
	apiKeys map[int]string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pg := testutil.StartPostgres(t)

	cfg := &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Database: pg.Config,
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-key",
			JWTExpirationHours: 1,
			APIKeyPrefix:       "cal_",
		},
		Log: config.LogConfig{Level: "debug"},
	}

	application := app.NewWithLogger(cfg, zap.NewNop())
	require.NoError(t, application.Initialize(context.Background()))
	t.Cleanup(func() {
		_ = application.Shutdown(context.Background())
	})

	server := httptest.NewServer(application.Router())
	t.Cleanup(server.Close)

	return &testEnv{
		app:     application,
		server:  server,
		seeder:  testutil.NewSeeder(t, pg.Pool),
		apiKeys: make(map[int]string),
	}
}

// apiKey выдает пользователю API ключ и возвращает его открытое значение
func (e *testEnv) apiKey(userID int) string {
	if key, ok := e.apiKeys[userID]; ok {
		return key
	}
	key := fmt.Sprintf("cal_live_%d_secret", userID)
	e.seeder.APIKey(userID, e.app.AuthService().HashAPIKey(key), false)
	e.apiKeys[userID] = key
	return key
}

func (e *testEnv) get(t *testing.T, path, credential string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(t, err)
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (e *testEnv) list(t *testing.T, path, credential string) []userResponse {
	t.Helper()

	status, body := e.get(t, path, credential)
	require.Equal(t, http.StatusOK, status, string(body))

	var resp listResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "success", resp.Status)
	return resp.Data
}

func ids(users []userResponse) []int {
	out := make([]int, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// TestE2E_TeamUsers проверяет эндпоинт GET /v2/teams/{teamId}/users целиком
func TestE2E_TeamUsers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := setupTestEnv(t)
	s := env.seeder

	org := s.Organization("acme-org")
	team := s.Team("acme", &org)
	otherTeam := s.Team("globex", nil)

	admin := s.User("admin@acme.com")
	member := s.User("member@acme.com")
	pending := s.User("pending@acme.com")
	outsider := s.User("outsider@globex.com")
	orgAdmin := s.User("boss@acme.com")

	opt1 := s.AttributeOption(team, "opt-engineering")
	opt2 := s.AttributeOption(team, "opt-sales")

	adminM := s.Membership(admin, team, domain.RoleAdmin, true)
	memberM := s.Membership(member, team, domain.RoleMember, true)
	s.Membership(pending, team, domain.RoleMember, false)
	s.Membership(outsider, otherTeam, domain.RoleOwner, true)
	s.Membership(orgAdmin, org, domain.RoleOwner, true)
	s.Assign(adminM, opt1)
	s.Assign(memberM, opt2)

	for _, userID := range []int{admin, member, pending, outsider, orgAdmin} {
		env.apiKey(userID)
	}

	basePath := fmt.Sprintf("/v2/teams/%d/users", team)

	t.Run("Member lists accepted members with profile", func(t *testing.T) {
		users := env.list(t, basePath, env.apiKey(member))

		assert.Equal(t, []int{admin, member}, ids(users))
		for _, u := range users {
			assert.Equal(t, team, u.Profile.TeamID)
			assert.Equal(t, u.ID, u.Profile.UserID)
			assert.True(t, u.Profile.Accepted)
		}
		assert.Equal(t, "ADMIN", users[0].Profile.Role)
		assert.Equal(t, "MEMBER", users[1].Profile.Role)
	})

	t.Run("Response never exposes password hash", func(t *testing.T) {
		status, body := env.get(t, basePath, env.apiKey(admin))
		require.Equal(t, http.StatusOK, status)
		assert.NotContains(t, string(body), "$2a$")
		assert.NotContains(t, string(body), "password")
	})

	t.Run("Email filter", func(t *testing.T) {
		users := env.list(t, basePath+"?emails=member@acme.com,nobody@acme.com", env.apiKey(admin))
		assert.Equal(t, []int{member}, ids(users))
	})

	t.Run("OR filter returns assigned members", func(t *testing.T) {
		users := env.list(t, basePath+"?assignedOptionIds="+opt1+"&attributeQueryOperator=OR", env.apiKey(admin))
		assert.Equal(t, []int{admin}, ids(users))
	})

	t.Run("NONE filter returns members without the option", func(t *testing.T) {
		users := env.list(t, basePath+"?assignedOptionIds="+opt1+"&attributeQueryOperator=NONE", env.apiKey(admin))
		assert.Equal(t, []int{member}, ids(users))
	})

	t.Run("Pagination", func(t *testing.T) {
		first := env.list(t, basePath+"?take=1", env.apiKey(admin))
		second := env.list(t, basePath+"?skip=1&take=1", env.apiKey(admin))
		assert.Equal(t, []int{admin}, ids(first))
		assert.Equal(t, []int{member}, ids(second))
	})

	t.Run("Access token authentication", func(t *testing.T) {
		token, err := env.app.AuthService().IssueAccessToken(member)
		require.NoError(t, err)

		users := env.list(t, basePath, token)
		assert.Len(t, users, 2)
	})

	t.Run("Organization admin can read child team", func(t *testing.T) {
		users := env.list(t, basePath, env.apiKey(orgAdmin))
		assert.Equal(t, []int{admin, member}, ids(users))
	})

	errorCases := []struct {
		name       string
		path       string
		credential func() string
		status     int
		code       string
	}{
		{"Missing credentials", basePath, func() string { return "" }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"Unknown API key", basePath, func() string { return "cal_does_not_exist" }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"Garbage access token", basePath, func() string { return "not-a-jwt" }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"Pending invitation is not membership", basePath, func() string { return env.apiKey(pending) }, http.StatusForbidden, "FORBIDDEN"},
		{"Member of another team", basePath, func() string { return env.apiKey(outsider) }, http.StatusForbidden, "FORBIDDEN"},
		{"Unknown team", "/v2/teams/999999/users", func() string { return env.apiKey(admin) }, http.StatusNotFound, "NOT_FOUND"},
		{"Invalid email", basePath + "?emails=broken", func() string { return env.apiKey(admin) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"Invalid operator", basePath + "?assignedOptionIds=x&attributeQueryOperator=MAYBE", func() string { return env.apiKey(admin) }, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.get(t, tc.path, tc.credential())
			require.Equal(t, tc.status, status, string(body))

			var resp errorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}

	t.Run("Health and metrics are public", func(t *testing.T) {
		status, _ := env.get(t, "/health", "")
		assert.Equal(t, http.StatusOK, status)

		status, body := env.get(t, "/metrics", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body), "team_users_repository_query_duration_seconds")
	})
}
