package service

import (
	"context"
	"errors"
	"strings"

	"minesweeper_webapp/internal/domain"
	"minesweeper_webapp/internal/repository"

	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password too weak")
	ErrPasswordTooLong    = errors.New("password longer than 72 bytes")
)

// bcrypt rejects passwords longer than this many bytes.
const maxPasswordBytes = 72

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type RegisterInput struct {
	Username  string `json:"username" binding:"required,min=3,max=32"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"max=64"`
	LastName  string `json:"last_name" binding:"max=64"`
	Sex       string `json:"sex" binding:"omitempty,oneof=male female other"`
	Age       int    `json:"age" binding:"omitempty,min=0,max=150"`
	State     string `json:"state" binding:"omitempty,len=2"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type AuthService struct {
	users    UserRepository
	cost     int
	minScore int
}

// NewAuthService rejects passwords whose zxcvbn score (0-4) is below
// minScore. Zero disables the check.
func NewAuthService(users UserRepository, minScore int) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost, minScore: minScore}
}

// Register stores a new user with a bcrypt hash of the password.
// A duplicate username yields repository.ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)

	if len(in.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrUsernameTaken
	}

	if s.minScore > 0 {
		res := zxcvbn.PasswordStrength(in.Password, []string{in.Username, in.Email})
		if res.Score < s.minScore {
			return nil, ErrWeakPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Sex:          in.Sex,
		Age:          in.Age,
		State:        strings.ToUpper(in.State),
		Email:        in.Email,
	}
	// a concurrent register can still win the race; Create reports it
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
