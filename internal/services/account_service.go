package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/apperrors"
	"github.com/harentsoaR/medibook-api/internal/models"
	"github.com/harentsoaR/medibook-api/internal/repository"
	"github.com/harentsoaR/medibook-api/internal/utils"
)

var errInvalidCredentials = apperrors.NewUnauthorizedError("Invalid credentials")

type TokenIssuer interface {
	GenerateJWT(userID, role string) (string, error)
}

// ProfileCreator creates the doctor record that goes with a doctor account.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, user *models.User, specialization string) (*models.Doctor, error)
}

type RegisterInput struct {
	FullName       string
	Email          string
	Password       string
	Role           string
	Phone          string
	Specialization string
}

type AccountService struct {
	users    UserStore
	profiles ProfileCreator
	tokens   TokenIssuer
	now      func() time.Time
	logger   *zap.Logger
}

func NewAccountService(users UserStore, profiles ProfileCreator, tokens TokenIssuer, logger *zap.Logger) *AccountService {
	return &AccountService{users: users, profiles: profiles, tokens: tokens, now: time.Now, logger: logger}
}

// Register creates a patient or doctor account. Doctors also get a profile
// with default working hours, pending admin approval.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RolePatient
	}
	if role != models.RolePatient && role != models.RoleDoctor {
		return nil, apperrors.NewValidationError("Role must be patient or doctor")
	}

	hashedPassword, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     in.Email,
		Password:  hashedPassword,
		Role:      role,
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflictError("An account with this email already exists")
		}
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	if role == models.RoleDoctor {
		if _, err := s.profiles.CreateProfile(ctx, user, strings.TrimSpace(in.Specialization)); err != nil {
			return nil, err
		}
	}
	s.logger.Info("user registered", zap.String("userID", user.ID.Hex()), zap.String("role", role))
	return user, nil
}

// EnsureAdmin creates the admin account for email unless a user with that
// email already exists. It reports whether an account was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, apperrors.NewValidationError("Admin email is required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			s.logger.Warn("admin email belongs to a non-admin account", zap.String("userID", existing.ID.Hex()))
		}
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, apperrors.NewInternalError("failed to look up admin", err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		ID:        primitive.NewObjectID(),
		FullName:  "Administrator",
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		CreatedAt: s.now(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// another instance seeded it first
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, apperrors.NewInternalError("failed to create admin", err)
	}
	s.logger.Info("admin account created", zap.String("userID", admin.ID.Hex()))
	return true, nil
}

// Login checks credentials and returns a signed token with the user.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, errInvalidCredentials
	}
	if err != nil {
		return "", nil, apperrors.NewInternalError("failed to load user", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return "", nil, apperrors.NewInternalError("could not generate token", err)
	}
	return token, user, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid user")
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load user", err)
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := utils.HashPassword(password)
	switch {
	case errors.Is(err, utils.ErrPasswordTooShort), errors.Is(err, utils.ErrPasswordTooLong):
		return "", apperrors.NewValidationError(err.Error())
	case err != nil:
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return hashed, nil
}
