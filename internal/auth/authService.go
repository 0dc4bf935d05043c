package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/data/sqlStore"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service interface {
	Register(ctx context.Context, email, password string) (*commonModels.User, error)
	Login(ctx context.Context, email, password string) (token string, user *commonModels.User, err error)
	VerifyToken(token string) (userId string, err error)
}

type service struct {
	store  sqlStore.Store
	secret []byte
	logger *logger_i.Logger
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func NewService(store sqlStore.Store, jwtSecret string) Service {
	secret := []byte(jwtSecret)
	if jwtSecret == "" {
		secret = []byte(config.DefaultJWTSecret)
	}
	return &service{
		store:  store,
		secret: secret,
		logger: logger_i.NewLogger("Auth Service"),
	}
}

func (s *service) Register(ctx context.Context, email, password string) (*commonModels.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email")
	}
	if len(password) < config.MinPasswordLength || len(password) > config.MaxPasswordLength {
		return nil, fmt.Errorf("password must be between %d and %d characters", config.MinPasswordLength, config.MaxPasswordLength)
	}

	if existing, err := s.store.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &commonModels.User{
		Id:           utils.GetNewUUID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookup above; the
		// unique index is the authority
		if errors.Is(err, sqlStore.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Info("Registered new user", "userId", user.Id)
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *commonModels.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.TokenExpiry)),
		},
		Email: user.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *service) VerifyToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
