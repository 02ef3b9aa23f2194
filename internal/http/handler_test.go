package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"teamtasks.com/teamtasks/internal/logger"
	model "teamtasks.com/teamtasks/internal/models"
	repository "teamtasks.com/teamtasks/internal/repositories"
	"teamtasks.com/teamtasks/internal/services"
)

type memoryMembershipCache struct {
	mu      sync.Mutex
	entries map[string][]string
}

func (m *memoryMembershipCache) GetTeams(ctx context.Context, userID string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	teamIDs, found := m.entries[userID]
	return teamIDs, found, nil
}

func (m *memoryMembershipCache) SetTeams(ctx context.Context, userID string, teamIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[userID] = teamIDs
	return nil
}

func (m *memoryMembershipCache) Invalidate(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, userID)
	return nil
}

var testDBCounter atomic.Int64

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	// a uniquely named shared-cache in-memory database per test, so
	// state never leaks between tests in the same process
	dsn := fmt.Sprintf("file:httptestdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Team{},
		&model.TeamMember{},
		&model.Task{},
		&model.TaskHistory{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	log := logger.New("test")

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	memberRepo := repository.NewTeamMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewTaskHistoryRepository(db)

	membership := services.NewMembershipIndex(
		memberRepo,
		&memoryMembershipCache{entries: make(map[string][]string)},
		log,
	)

	authService := services.NewAuthService(userRepo, "test-secret", time.Hour, log)
	taskService := services.NewTaskService(db, taskRepo, historyRepo, userRepo, teamRepo, membership, log)
	teamService := services.NewTeamService(teamRepo, taskRepo, membership, log)
	teamMemberService := services.NewTeamMemberService(memberRepo, userRepo, teamRepo, membership, log)

	e := echo.New()
	handler := NewHandler(authService, taskService, teamService, teamMemberService, log)
	Register(e, handler, authService, 1000, log)

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// registerAndLogin creates a user through the API and returns its id
// and bearer token.
func registerAndLogin(t *testing.T, e *echo.Echo, name, email, role string) (string, string) {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"password123","role":%q}`, name, email, role)
	if role == "" {
		body = fmt.Sprintf(`{"name":%q,"email":%q,"password":"password123"}`, name, email)
	}

	rec := doJSON(e, http.MethodPost, "/users", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("user creation failed: %d %s", rec.Code, rec.Body.String())
	}
	user := decode(t, rec)["user"].(map[string]interface{})
	userID := user["id"].(string)

	rec = doJSON(e, http.MethodPost, "/sessions", "",
		fmt.Sprintf(`{"email":%q,"password":"password123"}`, email))
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	token := decode(t, rec)["token"].(string)

	return userID, token
}

func TestRoutes_RequireBearerToken(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/tasks", "/teams", "/team_members/x", "/tasks_history/x"} {
		rec := doJSON(e, http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", path, rec.Code)
		}
		if msg := decode(t, rec)["message"]; msg != "bearer token not found" {
			t.Errorf("%s: unexpected message %v", path, msg)
		}
	}

	rec := doJSON(e, http.MethodGet, "/tasks", "garbage.token.here", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bad token, got %d", rec.Code)
	}
}

func TestRoutes_AdminGate(t *testing.T) {
	e := newTestServer(t)

	_, memberToken := registerAndLogin(t, e, "Member", "member@example.com", "")

	adminRoutes := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/tasks", `{"title":"t","description":"d","user_id":"u","team_id":"tm"}`},
		{http.MethodGet, "/tasks", ""},
		{http.MethodPost, "/teams", `{"name":"Team","description":"long description"}`},
		{http.MethodGet, "/teams", ""},
		{http.MethodGet, "/tasks_history/some-task", ""},
	}

	for _, route := range adminRoutes {
		rec := doJSON(e, route.method, route.path, memberToken, route.body)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected 403 for member, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRoutes_TaskLifecycle(t *testing.T) {
	e := newTestServer(t)

	adminID, adminToken := registerAndLogin(t, e, "Admin", "admin@example.com", "admin")
	memberID, memberToken := registerAndLogin(t, e, "U", "u@example.com", "")

	// team
	rec := doJSON(e, http.MethodPost, "/teams", adminToken,
		`{"name":"Docs Team","description":"writes the documentation"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("team creation failed: %d %s", rec.Code, rec.Body.String())
	}
	teamID := decode(t, rec)["team"].(map[string]interface{})["id"].(string)

	// membership
	rec = doJSON(e, http.MethodPost, "/team_members", adminToken,
		fmt.Sprintf(`{"user_id":%q,"team_id":%q}`, memberID, teamID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("membership creation failed: %d %s", rec.Code, rec.Body.String())
	}

	// task assigned to the member
	rec = doJSON(e, http.MethodPost, "/tasks", adminToken,
		fmt.Sprintf(`{"title":"Write docs","description":"write the user guide","priority":"high","user_id":%q,"team_id":%q}`, memberID, teamID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("task creation failed: %d %s", rec.Code, rec.Body.String())
	}
	taskID := decode(t, rec)["task"].(map[string]interface{})["id"].(string)

	// duplicate (title, assignee) is a conflict
	rec = doJSON(e, http.MethodPost, "/tasks", adminToken,
		fmt.Sprintf(`{"title":"Write docs","description":"write it again","user_id":%q,"team_id":%q}`, memberID, teamID))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate task, got %d", rec.Code)
	}

	// admin patches status -> completed, history entry appears
	rec = doJSON(e, http.MethodPatch, "/tasks/admin/"+taskID, adminToken,
		`{"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin patch failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/tasks_history/"+taskID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history fetch failed: %d", rec.Code)
	}
	history := decode(t, rec)["history"].([]interface{})
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	entry := history[0].(map[string]interface{})
	if entry["old_status"] != "pending" || entry["new_status"] != "completed" || entry["changed_by"] != adminID {
		t.Errorf("unexpected history entry %v", entry)
	}

	// member patches only the priority: no new history entry
	rec = doJSON(e, http.MethodPatch, "/tasks/member/"+taskID, memberToken,
		`{"priority":"medium"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("member patch failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/tasks_history/"+taskID, adminToken, "")
	if got := len(decode(t, rec)["history"].([]interface{})); got != 1 {
		t.Errorf("priority-only patch must not add history, got %d entries", got)
	}

	// member sees the completed task through the status filter
	rec = doJSON(e, http.MethodGet, "/tasks/status/completed", memberToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status filter failed: %d %s", rec.Code, rec.Body.String())
	}

	// delete twice: 200 then 404
	rec = doJSON(e, http.MethodDelete, "/tasks/"+taskID, adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	rec = doJSON(e, http.MethodDelete, "/tasks/"+taskID, adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestRoutes_MemberCannotPatchOthersTask(t *testing.T) {
	e := newTestServer(t)

	_, adminToken := registerAndLogin(t, e, "Admin", "admin@example.com", "admin")
	assigneeID, _ := registerAndLogin(t, e, "Assignee", "assignee@example.com", "")
	_, intruderToken := registerAndLogin(t, e, "Intruder", "intruder@example.com", "")

	rec := doJSON(e, http.MethodPost, "/teams", adminToken,
		`{"name":"Backend","description":"backend service team"}`)
	teamID := decode(t, rec)["team"].(map[string]interface{})["id"].(string)

	rec = doJSON(e, http.MethodPost, "/tasks", adminToken,
		fmt.Sprintf(`{"title":"Fix bug","description":"fix the login bug","user_id":%q,"team_id":%q}`, assigneeID, teamID))
	taskID := decode(t, rec)["task"].(map[string]interface{})["id"].(string)

	rec = doJSON(e, http.MethodPatch, "/tasks/member/"+taskID, intruderToken,
		`{"status":"completed"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-assignee member, got %d %s", rec.Code, rec.Body.String())
	}

	// task unchanged: admin listing still shows pending
	rec = doJSON(e, http.MethodGet, "/tasks/status/pending", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Errorf("task should still be pending, filter returned %d", rec.Code)
	}
}

func TestRoutes_EmptyFilterNamesValue(t *testing.T) {
	e := newTestServer(t)

	_, adminToken := registerAndLogin(t, e, "Admin", "admin@example.com", "admin")

	rec := doJSON(e, http.MethodGet, "/tasks/status/completed", adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty filter, got %d", rec.Code)
	}
	if msg := decode(t, rec)["message"].(string); !strings.Contains(msg, "completed") {
		t.Errorf("message should name the queried status, got %q", msg)
	}

	rec = doJSON(e, http.MethodGet, "/tasks/status/bogus", adminToken, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an invalid status value, got %d", rec.Code)
	}
}

func TestRoutes_TeamVisibilityGate(t *testing.T) {
	e := newTestServer(t)

	_, adminToken := registerAndLogin(t, e, "Admin", "admin@example.com", "admin")
	memberID, memberToken := registerAndLogin(t, e, "Member", "member@example.com", "")
	_, outsiderToken := registerAndLogin(t, e, "Outsider", "outsider@example.com", "")

	rec := doJSON(e, http.MethodPost, "/teams", adminToken,
		`{"name":"Docs Team","description":"writes the documentation"}`)
	teamID := decode(t, rec)["team"].(map[string]interface{})["id"].(string)

	doJSON(e, http.MethodPost, "/team_members", adminToken,
		fmt.Sprintf(`{"user_id":%q,"team_id":%q}`, memberID, teamID))

	if rec := doJSON(e, http.MethodGet, "/teams/"+teamID, memberToken, ""); rec.Code != http.StatusOK {
		t.Errorf("team member should see the team, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/teams/"+teamID, outsiderToken, ""); rec.Code != http.StatusForbidden {
		t.Errorf("outsider should be forbidden, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/teams/"+teamID, adminToken, ""); rec.Code != http.StatusOK {
		t.Errorf("admin should see any team, got %d", rec.Code)
	}
}

func TestRoutes_SessionRejectsBadCredentials(t *testing.T) {
	e := newTestServer(t)

	registerAndLogin(t, e, "Alice", "alice@example.com", "")

	rec := doJSON(e, http.MethodPost, "/sessions", "",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a wrong password, got %d", rec.Code)
	}

	// duplicate email on signup
	rec = doJSON(e, http.MethodPost, "/users", "",
		`{"name":"Clone","email":"alice@example.com","password":"password123"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}
}
