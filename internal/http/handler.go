package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"teamtasks.com/teamtasks/internal/constants"
	dto "teamtasks.com/teamtasks/internal/data_models"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/http/validators"
	"teamtasks.com/teamtasks/internal/logger"
	"teamtasks.com/teamtasks/internal/services"
)

type Handler struct {
	authService       *services.AuthService
	taskService       *services.TaskService
	teamService       *services.TeamService
	teamMemberService *services.TeamMemberService
	log               *logger.Logger
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	teamService *services.TeamService,
	teamMemberService *services.TeamMemberService,
	log *logger.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		taskService:       taskService,
		teamService:       teamService,
		teamMemberService: teamMemberService,
		log:               log,
	}
}

// ErrorHandler translates typed application errors into JSON responses.
// Unknown errors are logged and surface as plain 500s.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, echo.Map{"message": fmt.Sprintf("%v", httpErr.Message)})
			return
		}

		message := err.Error()
		if !apperrors.IsException(err) {
			log.Error("unhandled error", "method", c.Request().Method, "path", c.Path(), "error", err)
			message = "internal server error"
		}

		_ = c.JSON(apperrors.StatusCode(err), echo.Map{"message": message})
	}
}

// Login authenticates a user and returns a bearer token alongside the
// user's public fields.
func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":      token,
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	})
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	if err := validators.ValidateCreateUserRequest(&req); err != nil {
		return err
	}

	role := roleOrDefault(req.Role)

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

// roleOrDefault assumes the role string was already validated;
// an empty string means the member default.
func roleOrDefault(s string) constants.Role {
	if s == "" {
		return constants.RoleMember
	}
	role, _ := constants.ParseRole(s)
	return role
}
