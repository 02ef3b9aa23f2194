package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teamtasks.com/teamtasks/internal/constants"
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	middleware "teamtasks.com/teamtasks/internal/http/middlewares"
	"teamtasks.com/teamtasks/internal/http/validators"
	"teamtasks.com/teamtasks/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	status := constants.StatusPending
	if req.Status != "" {
		status, _ = constants.ParseTaskStatus(req.Status)
	}
	priority := constants.PriorityLow
	if req.Priority != "" {
		priority, _ = constants.ParseTaskPriority(req.Priority)
	}

	task, err := h.taskService.CreateTask(
		c.Request().Context(),
		req.Title, req.Description,
		status, priority,
		req.UserID, req.TeamID,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"task": task})
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// UpdateTask backs both the admin and the member patch routes. The
// admin route is additionally gated at registration time; the
// engine itself decides owner-or-admin.
func (h *Handler) UpdateTask(c echo.Context) error {
	taskID := c.Param("task_id")
	if taskID == "" {
		return apperrors.ErrTaskIDRequired
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	caller, err := middleware.CallerIdentity(c)
	if err != nil {
		return err
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status, _ := constants.ParseTaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority, _ := constants.ParseTaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	task, _, err := h.taskService.AuthorizeAndApply(c.Request().Context(), caller, taskID, patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.ErrTaskIDRequired
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "task removed successfully"})
}

func (h *Handler) FilterTasksByStatus(c echo.Context) error {
	status, err := constants.ParseTaskStatus(c.Param("status"))
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	caller, err := middleware.CallerIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByStatus(c.Request().Context(), caller, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (h *Handler) FilterTasksByPriority(c echo.Context) error {
	priority, err := constants.ParseTaskPriority(c.Param("priority"))
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	caller, err := middleware.CallerIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByPriority(c.Request().Context(), caller, priority)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

func (h *Handler) TaskHistory(c echo.Context) error {
	taskID := c.Param("task_id")
	if taskID == "" {
		return apperrors.ErrTaskIDRequired
	}

	entries, err := h.taskService.HistoryOf(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "no status changes recorded for this task",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"history": entries})
}
