package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"triviaquiz/internal/common"
	"triviaquiz/internal/common/security"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ProfilePicture  string `json:"profilePicture"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

type RegisterResponse struct {
	Msg  string      `json:"msg"`
	Data *model.User `json:"data"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

var (
	alphabeticRe   = regexp.MustCompile(`^[A-Za-z]+$`)
	alphanumericRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRe        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	passwordRe     = regexp.MustCompile(`^[a-zA-Z\d!@#$%^&*]+$`)
	digitRe        = regexp.MustCompile(`\d`)
	symbolRe       = regexp.MustCompile(`[!@#$%^&*]`)
)

// validateRegistration applies the registration rules in field order and
// returns the first violated rule's message.
func validateRegistration(req RegisterRequest) string {
	if msg := validateName("First name", req.FirstName); msg != "" {
		return msg
	}
	if msg := validateName("Last name", req.LastName); msg != "" {
		return msg
	}
	switch {
	case req.Username == "":
		return "Username is required"
	case !alphanumericRe.MatchString(req.Username):
		return "Username must contain only alphanumeric characters"
	case len(req.Username) < 5:
		return "Username must have a minimum length of 5"
	case len(req.Username) > 10:
		return "Username must have a maximum length of 10"
	}
	switch {
	case req.Email == "":
		return "Email is required"
	case !emailRe.MatchString(req.Email):
		return "Email must be a valid email address"
	}
	switch {
	case req.Password == "":
		return "Password is required"
	case len(req.Password) < 8:
		return "Password must have a minimum length of 8"
	case len(req.Password) > 16:
		return "Password must have a maximum length of 16"
	case !passwordRe.MatchString(req.Password) ||
		!digitRe.MatchString(req.Password) ||
		!symbolRe.MatchString(req.Password):
		return "Password must contain at least one numeric character and one special character"
	}
	switch {
	case req.ConfirmPassword == "":
		return "Confirm password is required"
	case req.ConfirmPassword != req.Password:
		return "Confirm password must match the password"
	}
	return ""
}

func validateName(field, value string) string {
	switch {
	case value == "":
		return field + " is required"
	case len(value) < 2:
		return field + " must have a minimum length of 2"
	case len(value) > 50:
		return field + " must have a maximum length of 50"
	case !alphabeticRe.MatchString(value):
		return field + " must contain only alphabetic characters"
	}
	return ""
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if msg := validateRegistration(req); msg != "" {
		return nil, common.NewError(common.ErrValidation, msg)
	}

	if err := s.checkIdentityTaken(ctx, req.Email, req.Username); err != nil {
		return nil, err
	}

	// Mismatched confirmation past the validator maps to 401, not 400.
	if req.ConfirmPassword != req.Password {
		return nil, common.NewError(common.ErrUnauthorized, "Confirm password must match password")
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleBasic
	}

	user := &model.User{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
		HashedPassword: hashedPassword,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "User already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Never returned
	return &RegisterResponse{Msg: "User successfully registered", Data: user}, nil
}

func (s *AuthService) checkIdentityTaken(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return common.NewError(common.ErrConflict, "User already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return common.NewError(common.ErrConflict, "User already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up username: %w", err)
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Password == "" || (req.Email == "" && req.Username == "") {
		return nil, common.NewError(common.ErrUnauthorized, "Invalid credentials")
	}

	var user *model.User
	var err error
	if req.Email != "" {
		user, err = s.userRepo.FindByEmail(ctx, req.Email)
	} else {
		user, err = s.userRepo.FindByUsername(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// One generic message regardless of which field failed
			return nil, common.NewError(common.ErrUnauthorized, "Invalid credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.NewError(common.ErrUnauthorized, "Invalid credentials")
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Msg:   fmt.Sprintf("%s successfully logged in", user.Username),
		Token: token,
	}, nil
}
