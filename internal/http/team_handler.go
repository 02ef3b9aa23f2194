package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	middleware "teamtasks.com/teamtasks/internal/http/middlewares"
	"teamtasks.com/teamtasks/internal/http/validators"
)

func (h *Handler) CreateTeam(c echo.Context) error {
	var req dto.CreateTeamRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateCreateTeamRequest(&req); err != nil {
		return err
	}

	team, err := h.teamService.CreateTeam(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"team": team})
}

func (h *Handler) ListTeams(c echo.Context) error {
	teams, err := h.teamService.ListTeams(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"teams": teams})
}

// TeamTasks returns a team with its tasks; members may only view teams
// they belong to.
func (h *Handler) TeamTasks(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.Validation("team id is required")
	}

	caller, err := middleware.CallerIdentity(c)
	if err != nil {
		return err
	}

	teamWithTasks, err := h.teamService.TasksOfTeam(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, teamWithTasks)
}

func (h *Handler) UpdateTeam(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.Validation("team id is required")
	}

	var req dto.UpdateTeamRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateUpdateTeamRequest(&req); err != nil {
		return err
	}

	if err := h.teamService.UpdateTeam(c.Request().Context(), id, req.Name, req.Description); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "team updated successfully"})
}

func (h *Handler) DeleteTeam(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.Validation("team id is required")
	}

	if err := h.teamService.DeleteTeam(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, echo.Map{"message": "team removed successfully"})
}
