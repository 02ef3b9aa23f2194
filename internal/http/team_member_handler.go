package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/http/validators"
)

func (h *Handler) AddTeamMember(c echo.Context) error {
	var req dto.CreateTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateCreateTeamMemberRequest(&req); err != nil {
		return err
	}

	member, err := h.teamMemberService.AddMember(c.Request().Context(), req.UserID, req.TeamID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"member": member})
}

func (h *Handler) ListTeamMembers(c echo.Context) error {
	teamID := c.Param("id")
	if teamID == "" {
		return apperrors.Validation("team id is required")
	}

	members, err := h.teamMemberService.MembersOfTeam(c.Request().Context(), teamID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"members": members})
}

func (h *Handler) RemoveTeamMember(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return apperrors.Validation("team member id is required")
	}

	if err := h.teamMemberService.RemoveMember(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, echo.Map{"message": "team member removed successfully"})
}
