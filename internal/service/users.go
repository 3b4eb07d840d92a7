package service

import (
	"context"
	"errors"
	"net/mail"
	"unicode"

	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	emailMaxLength    = 254
	fullNameMinLength = 2
	fullNameMaxLength = 100
	passwordMinLength = 8
)

type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	IsAdmin  bool
}

// UpdateUserInput carries optional fields; nil means "leave unchanged".
type UpdateUserInput struct {
	Email    *string
	FullName *string
	Password *string
	IsAdmin  *bool
}

type UserService struct {
	users *store.UserStore
}

func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

func validateEmail(email string) error {
	if email == "" || len(email) > emailMaxLength {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validateFullName(name string) error {
	if len(name) < fullNameMinLength || len(name) > fullNameMaxLength {
		return ErrInvalidFullName
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validateFullName(in.FullName); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: string(hash),
		IsAdmin:        in.IsAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *UserService) Update(ctx context.Context, id uint64, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		if err := validateEmail(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		if err := validateFullName(*in.FullName); err != nil {
			return nil, err
		}
		user.FullName = *in.FullName
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = string(hash)
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user and cascades to owned accounts and payments.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
