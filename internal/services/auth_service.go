package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"teamtasks.com/teamtasks/internal/constants"
	apperrors "teamtasks.com/teamtasks/internal/errors"
	"teamtasks.com/teamtasks/internal/logger"
	model "teamtasks.com/teamtasks/internal/models"
	repository "teamtasks.com/teamtasks/internal/repositories"
)

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *logger.Logger
}

func NewAuthService(
	users *repository.UserRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a user with a bcrypt-hashed password. The role
// defaults to member when not given.
func (s *AuthService) Register(
	ctx context.Context,
	name, email, password string,
	role constants.Role,
) (*model.User, error) {
	if role == "" {
		role = constants.RoleMember
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, name, email, string(hashed), role)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies the credentials and issues a signed bearer token. A
// missing user and a wrong password produce the same error, so the
// response does not reveal which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// VerifyToken parses a bearer token and resolves the caller identity.
func (s *AuthService) VerifyToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return Identity{}, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperrors.ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, apperrors.ErrInvalidToken
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return Identity{}, apperrors.ErrInvalidToken
	}
	role, err := constants.ParseRole(roleClaim)
	if err != nil {
		return Identity{}, apperrors.ErrInvalidToken
	}

	return Identity{UserID: sub, Role: role}, nil
}
