package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/event"
	"github.com/utafrali/LocalBizGo/internal/repository"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

// DefaultBcryptCost is the cost factor for password hashing.
const DefaultBcryptCost = 10

const minPasswordLength = 6

// TokenIssuer signs access tokens. *auth.JWTManager satisfies it.
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, error)
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	User  domain.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// UserService implements account and authentication operations.
type UserService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	producer   *event.Producer
	logger     *slog.Logger
	bcryptCost int
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, tokens TokenIssuer, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		users:      users,
		tokens:     tokens,
		producer:   producer,
		logger:     logger,
		bcryptCost: DefaultBcryptCost,
	}
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > 72 {
		return apperrors.InvalidInput("password must be at most 72 bytes")
	}
	return nil
}

func (s *UserService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Signup registers a USER account and returns an access token for it.
func (s *UserService) Signup(ctx context.Context, input domain.SignupInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hashed, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUnique(ctx, domain.NewUser{
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	publishErr(ctx, s.logger, event.TopicUserRegistered, s.producer.PublishUserRegistered(ctx, user))

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	return s.issue(user)
}

// Login checks credentials and returns a fresh access token.
func (s *UserService) Login(ctx context.Context, input domain.LoginInput) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))
	return s.issue(user)
}

// Me returns the account of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, input domain.ChangePasswordInput) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}

	hashed, err := s.hash(input.NewPassword)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, userID, domain.UpdateUserInput{PasswordHash: &hashed}); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))
	return nil
}

// ChangeRole sets the role of userID. Only administrators may do this.
func (s *UserService) ChangeRole(ctx context.Context, actor domain.Actor, userID string, role domain.Role) (*domain.PublicUser, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only administrators can change roles")
	}
	if !role.Valid() {
		return nil, apperrors.InvalidInput("role must be ADMIN or USER")
	}

	user, err := s.users.Update(ctx, userID, domain.UpdateUserInput{Role: &role})
	if err != nil {
		return nil, err
	}

	publishErr(ctx, s.logger, event.TopicUserRoleChanged, s.producer.PublishUserRoleChanged(ctx, user))

	s.logger.InfoContext(ctx, "user role changed",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("changed_by", actor.UserID),
	)
	pub := user.Public()
	return &pub, nil
}

// SeedAdmin creates the administrator account unless an account with that
// e-mail already exists. It reports whether an account was created.
func (s *UserService) SeedAdmin(ctx context.Context, email, password string) (*domain.PublicUser, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, apperrors.InvalidInput("admin email is required")
	}
	if err := validatePassword(password); err != nil {
		return nil, false, err
	}

	if existing, err := s.users.GetByEmail(ctx, email); err == nil {
		pub := existing.Public()
		return &pub, false, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	hashed, err := s.hash(password)
	if err != nil {
		return nil, false, err
	}

	user, err := s.users.CreateUnique(ctx, domain.NewUser{
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleAdmin,
	})
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		existing, getErr := s.users.GetByEmail(ctx, email)
		if getErr != nil {
			return nil, false, getErr
		}
		pub := existing.Public()
		return &pub, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "admin account seeded", slog.String("user_id", user.ID))
	pub := user.Public()
	return &pub, true, nil
}
