package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "teamtasks.com/teamtasks/internal/http/middlewares"
	"teamtasks.com/teamtasks/internal/logger"
	"teamtasks.com/teamtasks/internal/services"
)

func Register(
	e *echo.Echo,
	h *Handler,
	auth *services.AuthService,
	rateLimitPerMinute int,
	log *logger.Logger,
) {
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	authenticate := middleware.Authenticate(auth)
	adminOnly := middleware.RequireAdmin()

	// open routes
	e.POST("/sessions", h.Login)
	e.POST("/users", h.CreateUser)

	tasks := e.Group("/tasks", authenticate)
	tasks.GET("/status/:status", h.FilterTasksByStatus)
	tasks.GET("/priority/:priority", h.FilterTasksByPriority)
	tasks.PATCH("/member/:task_id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.POST("", h.CreateTask, adminOnly)
	tasks.GET("", h.ListTasks, adminOnly)
	tasks.PATCH("/admin/:task_id", h.UpdateTask, adminOnly)

	teams := e.Group("/teams", authenticate)
	teams.GET("/:id", h.TeamTasks)
	teams.POST("", h.CreateTeam, adminOnly)
	teams.GET("", h.ListTeams, adminOnly)
	teams.PATCH("/update/:id", h.UpdateTeam, adminOnly)
	teams.DELETE("/:id", h.DeleteTeam, adminOnly)

	teamMembers := e.Group("/team_members", authenticate)
	teamMembers.GET("/:id", h.ListTeamMembers)
	teamMembers.POST("", h.AddTeamMember, adminOnly)
	teamMembers.DELETE("/:id", h.RemoveTeamMember, adminOnly)

	history := e.Group("/tasks_history", authenticate)
	history.GET("/:task_id", h.TaskHistory, adminOnly)
}
