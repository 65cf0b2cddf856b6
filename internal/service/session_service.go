package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/config"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/dto"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/util"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionService issues and validates pseudonymous sessions. A session is
// a display name bound to a server-issued ULID user id in a signed token;
// there are no passwords or external identity providers.
type SessionService interface {
	CreateSession(displayName string) (*dto.SessionResponse, error)
	ValidateToken(tokenString string) (*dto.SessionClaims, error)
}

type sessionServiceImpl struct {
	secret      []byte
	tokenExpiry time.Duration
}

// NewSessionService creates a SessionService from the auth configuration.
func NewSessionService(cfg config.AuthConfig) (SessionService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &sessionServiceImpl{
		secret:      []byte(cfg.JWTSecret),
		tokenExpiry: expiry,
	}, nil
}

func (s *sessionServiceImpl) CreateSession(displayName string) (*dto.SessionResponse, error) {
	displayName = strings.TrimSpace(displayName)
	userID := util.NewULID()
	now := time.Now()

	claims := dto.SessionClaims{
		UserID:      userID,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, domain.NewInternalError("failed to sign session token", err)
	}

	logger.Get().Info("Session created",
		zap.String("user_id", userID),
		zap.String("display_name", displayName))

	return &dto.SessionResponse{
		UserID:      userID,
		DisplayName: displayName,
		Token:       signed,
		ExpiresIn:   int64(s.tokenExpiry.Seconds()),
	}, nil
}

func (s *sessionServiceImpl) ValidateToken(tokenString string) (*dto.SessionClaims, error) {
	claims := &dto.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSessionToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
