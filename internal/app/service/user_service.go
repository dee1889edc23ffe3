package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"triviaquiz/internal/common"
	"triviaquiz/internal/common/security"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/domain/repository"
	"triviaquiz/internal/platform/seeddata"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo   repository.UserRepository
	seedClient *seeddata.Client
	db         *sql.DB // For transactions
}

func NewUserService(userRepo repository.UserRepository, seedClient *seeddata.Client, db *sql.DB) *UserService {
	return &UserService{userRepo: userRepo, seedClient: seedClient, db: db}
}

// UserResponse carries either a user payload or an informational message
// for the "absent entity reported as success" cases.
type UserResponse struct {
	Msg  string      `json:"msg,omitempty"`
	Data *model.User `json:"data,omitempty"`
}

type UsersResponse struct {
	Msg  string       `json:"msg,omitempty"`
	Data []model.User `json:"data,omitempty"`
}

type UpdateUserRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

func (s *UserService) GetUser(ctx context.Context, actingUserID, id string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &UserResponse{Msg: fmt.Sprintf("No User with the id: %s found", id)}, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.ID != actingUserID {
		return nil, common.NewError(common.ErrForbidden, "Not authorized to access other user's information")
	}

	return &UserResponse{Data: user}, nil
}

func (s *UserService) ListUsers(ctx context.Context) (*UsersResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return &UsersResponse{Msg: "No users found"}, nil
	}
	return &UsersResponse{Data: users}, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actingUserID, id string, req UpdateUserRequest) (*UserResponse, error) {
	if id != actingUserID {
		return nil, common.NewError(common.ErrForbidden, "Not authorized to access other user's information")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &UserResponse{Msg: fmt.Sprintf("No user with the id: %s found", id)}, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		// Plaintext never reaches storage
		hashed, err := security.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.HashedPassword = ""
	return &UserResponse{
		Msg:  fmt.Sprintf("User with the id: %s successfully updated", id),
		Data: user,
	}, nil
}

// DeleteUser refuses ADMIN_USER callers; a BASIC_USER caller may delete.
func (s *UserService) DeleteUser(ctx context.Context, actingUserRole, id string) (*UserResponse, error) {
	if actingUserRole == model.RoleAdmin {
		return nil, common.NewError(common.ErrForbidden, "Not authorized to update admin user's information")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &UserResponse{Msg: fmt.Sprintf("No user with the id: %s found", id)}, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return &UserResponse{Msg: fmt.Sprintf("User with the id: %s successfully deleted", id)}, nil
}

// SeedBasicUsers replaces every BASIC_USER row with the hosted dataset.
// Delete and insert run in one transaction so a failed fetch or insert
// never leaves the table partially populated.
func (s *UserService) SeedBasicUsers(ctx context.Context) (*UsersResponse, error) {
	records, err := s.seedClient.FetchBasicUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch basic users dataset: %w", err)
	}

	users := make([]model.User, 0, len(records))
	for _, rec := range records {
		hashed, err := security.HashPassword(rec.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		role := rec.Role
		if role == "" {
			role = model.RoleBasic
		}
		users = append(users, model.User{
			ID:             uuid.NewString(),
			FirstName:      rec.FirstName,
			LastName:       rec.LastName,
			Username:       rec.Username,
			Email:          rec.Email,
			ProfilePicture: rec.ProfilePicture,
			HashedPassword: hashed,
			Role:           role,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.userRepo.DeleteByRole(ctx, tx, model.RoleBasic); err != nil {
		return nil, fmt.Errorf("failed to delete basic users: %w", err)
	}
	if err := s.userRepo.CreateMany(ctx, tx, users); err != nil {
		return nil, fmt.Errorf("failed to insert basic users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for i := range users {
		users[i].HashedPassword = ""
	}
	return &UsersResponse{Data: users}, nil
}
