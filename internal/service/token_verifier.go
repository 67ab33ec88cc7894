package service

import (
	"context"
	"errors"
	"fmt"

	"quiz-extensions/internal/config"
	"quiz-extensions/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidLaunchToken = errors.New("invalid launch token")
	ErrMissingCourse      = errors.New("launch token carries no course id")
)

// LaunchClaims are the claims of the token issued when the tool is launched
// from the LMS for one course.
type LaunchClaims struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	jwt.RegisteredClaims
}

// TokenVerifier validates launch tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenString string) (*LaunchClaims, error)
}

type jwtTokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(cfg config.JWTConfig) (TokenVerifier, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &jwtTokenVerifier{secret: []byte(cfg.SecretKey), issuer: cfg.Issuer}, nil
}

func (v *jwtTokenVerifier) Verify(ctx context.Context, tokenString string) (*LaunchClaims, error) {
	appLogger := logger.Get()

	var opts []jwt.ParserOption
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &LaunchClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("Launch token expired", zap.Error(err))
		} else {
			appLogger.Warn("Launch token validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLaunchToken, err)
	}

	claims, ok := token.Claims.(*LaunchClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidLaunchToken
	}
	if claims.CourseID == "" {
		return nil, ErrMissingCourse
	}
	return claims, nil
}
