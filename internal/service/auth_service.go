package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"asdscreen/internal/config"
	"asdscreen/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles clinician authentication
type AuthService struct {
	username  string
	password  string
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		username:  cfg.ClinicianUsername,
		password:  cfg.ClinicianPassword,
		jwtSecret: []byte(cfg.JWTSecret),
	}
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.username || password != s.password {
		return nil, ErrInvalidCredentials
	}

	clinicianID := "clinician_" + uuid.New().String()[:8]

	claims := &model.ClinicianClaims{
		ClinicianID: clinicianID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:       tokenString,
		ClinicianID: clinicianID,
	}, nil
}

// ValidateToken validates a clinician JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.ClinicianClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ClinicianClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ClinicianClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
