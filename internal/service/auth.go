package service

import (
	"context"
	"time"

	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users          *store.UserStore
	secret         string
	expiresMinutes int
}

func NewAuthService(users *store.UserStore, secret string, expiresMinutes int) *AuthService {
	return &AuthService{users: users, secret: secret, expiresMinutes: expiresMinutes}
}

// Login verifies email/password and returns a signed JWT carrying the user
// id and admin flag.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"admin": user.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.expiresMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
