package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"teamtasks.com/teamtasks/internal/constants"
	"teamtasks.com/teamtasks/internal/logger"
	model "teamtasks.com/teamtasks/internal/models"
	repository "teamtasks.com/teamtasks/internal/repositories"
)

// memoryMembershipCache is a simple in-memory membership cache for
// testing.
type memoryMembershipCache struct {
	mu      sync.Mutex
	entries map[string][]string
}

func newMemoryMembershipCache() *memoryMembershipCache {
	return &memoryMembershipCache{entries: make(map[string][]string)}
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

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// a uniquely named shared-cache in-memory database per test, so
	// state never leaks between tests in the same process
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
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

	return db
}

// testEnv bundles the fully wired service layer over an in-memory
// database.
type testEnv struct {
	db          *gorm.DB
	users       *repository.UserRepository
	teams       *repository.TeamRepository
	members     *repository.TeamMemberRepository
	tasks       *repository.TaskRepository
	history     *repository.TaskHistoryRepository
	membership  *MembershipIndex
	cache       *memoryMembershipCache
	taskService *TaskService
	teamService *TeamService
	memberSvc   *TeamMemberService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	log := logger.New("test")

	users := repository.NewUserRepository(db)
	teams := repository.NewTeamRepository(db)
	members := repository.NewTeamMemberRepository(db)
	tasks := repository.NewTaskRepository(db)
	history := repository.NewTaskHistoryRepository(db)

	membershipCache := newMemoryMembershipCache()
	membership := NewMembershipIndex(members, membershipCache, log)

	return &testEnv{
		db:          db,
		users:       users,
		teams:       teams,
		members:     members,
		tasks:       tasks,
		history:     history,
		membership:  membership,
		cache:       membershipCache,
		taskService: NewTaskService(db, tasks, history, users, teams, membership, log),
		teamService: NewTeamService(teams, tasks, membership, log),
		memberSvc:   NewTeamMemberService(members, users, teams, membership, log),
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string, role constants.Role) *model.User {
	t.Helper()

	user, err := e.users.CreateUser(context.Background(), name, email, "hashed", role)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createTeam(t *testing.T, name string) *model.Team {
	t.Helper()

	team, err := e.teams.CreateTeam(context.Background(), name, "team for testing "+name)
	if err != nil {
		t.Fatalf("failed to create team %s: %v", name, err)
	}
	return team
}

func (e *testEnv) addMember(t *testing.T, userID, teamID string) {
	t.Helper()

	if _, err := e.memberSvc.AddMember(context.Background(), userID, teamID); err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
}

func (e *testEnv) createTask(t *testing.T, title, assignedTo, teamID string) *model.Task {
	t.Helper()

	task, err := e.taskService.CreateTask(
		context.Background(),
		title, "description of "+title,
		constants.StatusPending, constants.PriorityLow,
		assignedTo, teamID,
	)
	if err != nil {
		t.Fatalf("failed to create task %s: %v", title, err)
	}
	return task
}
