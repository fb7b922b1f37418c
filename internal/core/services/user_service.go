package services

import (
	"context"
	"errors"
	"fmt"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/adapters/persistence/repositories"
	"packbill-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserAlreadyExists    = errors.New("username already exists")
	ErrWeakPassword         = errors.New("password does not meet requirements")
	ErrInvalidUserType      = errors.New("invalid user type")
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own account")
)

// UserService handles staff account management
type UserService struct {
	userRepo   repositories.UserRepository
	logService *LogService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logService *LogService) *UserService {
	return &UserService{
		userRepo:   userRepo,
		logService: logService,
	}
}

// RegisterUserInput represents user registration input
type RegisterUserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
	Password  string `json:"password"`
}

// UpdateUserInput represents user update input; nil fields are left as-is
type UpdateUserInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	UserType  *string `json:"user_type"`
	IsActive  *bool   `json:"is_active"`
	Password  *string `json:"password"`
}

// ListUsers lists all staff accounts
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Register creates a new staff account. user_type=admin forces
// is_staff and is_superuser true; employee forces both false.
func (s *UserService) Register(ctx context.Context, actor Actor, input *RegisterUserInput) (*models.User, error) {
	// 1. Default and validate user type
	if input.UserType == "" {
		input.UserType = models.UserTypeEmployee
	}
	if input.UserType != models.UserTypeAdmin && input.UserType != models.UserTypeEmployee {
		return nil, ErrInvalidUserType
	}

	// 2. Reject duplicate usernames
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 3. Hash password
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user with the enforced role mapping
	user := &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  hashedPassword,
		IsActive:  true,
	}
	user.ApplyUserType(input.UserType)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Audit trail
	s.logService.Record(ctx, &actor.ID, models.ActionUserCreated,
		fmt.Sprintf("User %q was created", user.Username))

	return user, nil
}

// Update updates a staff account, re-applying the role mapping on every
// write so user_type and the staff/superuser flags never drift apart.
func (s *UserService) Update(ctx context.Context, actor Actor, id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.IsActive != nil {
		if !*input.IsActive && id == actor.ID {
			return nil, ErrCannotDeactivateSelf
		}
		user.IsActive = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		if !password.Validate(*input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	userType := user.UserType
	if input.UserType != nil {
		userType = *input.UserType
	}
	if userType != models.UserTypeAdmin && userType != models.UserTypeEmployee {
		return nil, ErrInvalidUserType
	}
	user.ApplyUserType(userType)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionUserUpdated,
		fmt.Sprintf("User %q was updated", user.Username))

	return user, nil
}

// Deactivate soft-deactivates a staff account
func (s *UserService) Deactivate(ctx context.Context, actor Actor, id uint) error {
	if id == actor.ID {
		return ErrCannotDeactivateSelf
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.IsActive = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionUserDeleted,
		fmt.Sprintf("User %q was deactivated", user.Username))

	return nil
}

// Reactivate restores a soft-deactivated staff account
func (s *UserService) Reactivate(ctx context.Context, actor Actor, id uint) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logService.Record(ctx, &actor.ID, models.ActionUserUpdated,
		fmt.Sprintf("User %q was reactivated", user.Username))

	return user, nil
}
