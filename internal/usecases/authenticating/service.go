package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/uniqverse/marketplace-api/infrastructure/repository"
	"github.com/uniqverse/marketplace-api/internal/config"
	"github.com/uniqverse/marketplace-api/internal/domain"
	"github.com/uniqverse/marketplace-api/pkg/apiErrors"
	"github.com/uniqverse/marketplace-api/pkg/clock"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 24 * time.Hour

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Authenticator interface {
	CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (*Session, error)
	GetUserProfile(ctx context.Context, userID int64) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

// Session is the result of a successful login.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	clock    clock.Clock
}

func NewService(userRepo repository.UserRepository, cfg *config.Config, clk clock.Clock) Authenticator {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		clock:    clk,
	}
}

func (s *Service) CreateUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	if user.Email == "" || user.Name == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email, name and password are required")
	}
	if !user.Role.Valid() {
		return nil, NewAuthError(ErrInvalidRole, apiErrors.ErrInvalidFormat, "unknown role "+string(user.Role))
	}

	user.Email = handleEmail(user.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not look up user")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrInvalidRequest, "email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashedPassword)

	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not create user")
	}

	return user, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	return strings.ReplaceAll(email, " ", "")
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, handleEmail(email))
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "could not look up user")
	}

	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "user not found")
	}

	if !user.Active {
		return nil, NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "wrong password")
	}

	issuedAt := s.clock.Now()
	expiresAt := issuedAt.Add(s.sessionTTL())
	token, err := generateJWT(user, s.cfg.SecretKey, issuedAt, expiresAt)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "could not sign session token")
	}

	user.PasswordHash = ""
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Service) sessionTTL() time.Duration {
	if s.cfg.Session.TTL > 0 {
		return s.cfg.Session.TTL
	}
	return defaultSessionTTL
}

func (s *Service) GetUserProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("could not load user profile")
		return nil, err
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "user not found")
	}

	user.PasswordHash = ""
	return user, nil
}

func generateJWT(user *domain.User, secretKey string, issuedAt, expiresAt time.Time) (string, error) {
	claims := domain.Claims{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrMissingToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
	}
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || !claims.UserRole.Valid() {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
