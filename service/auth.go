package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iamsurajx/new-seller-server/models"
	"github.com/iamsurajx/new-seller-server/repository"
)

const (
	bcryptCost = 10
	tokenTTL   = time.Hour
)

type AuthService struct {
	users  repository.UserRepository
	secret []byte
}

func NewAuthService(users repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{users: users, secret: []byte(jwtSecret)}
}

type SignupInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	Address     models.Address
}

// Signup creates a new user and returns its id. The duplicate-email check
// runs before any hashing or write.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (string, error) {
	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return "", err
	}
	return user.ID.Hex(), nil
}

// Login verifies the credentials and issues a signed bearer token valid for
// one hour.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": user.ID.Hex(),
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a bearer token and returns the user id it binds.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid user ID in token")
	}
	return sub, nil
}

func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
