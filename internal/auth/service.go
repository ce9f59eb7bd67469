package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/models"
)

func badCredentials() error {
	return apperror.Unauthorized("invalid email or password")
}

func (s *implService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("hash password: %w", err))
	}

	u := &models.User{Username: in.Username, Email: in.Email, Password: string(hash)}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if apperror.Is(err, apperror.CodeConflict) {
			return nil, apperror.Conflict("an account with this email or username already exists").WithCause(err)
		}
		return nil, err
	}

	s.logger.Info(ctx, "Registered user %d (admin=%t)", u.ID, u.IsAdmin)
	return u, nil
}

func (s *implService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	if err := Validate(in); err != nil {
		return "", nil, err
	}

	u, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return "", nil, badCredentials()
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		s.logger.Warn(ctx, "Failed login for user %d", u.ID)
		return "", nil, badCredentials()
	}

	token, err := s.issue(u)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	return token, u, nil
}

func (s *implService) issue(u *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: u.ID,
		Admin:  u.IsAdmin,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *implService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Unauthorized("session expired, please log in again").WithCause(err)
		}
		return nil, apperror.Unauthorized("invalid session token").WithCause(err)
	}
	if !parsed.Valid || claims.UserID == 0 {
		return nil, apperror.Unauthorized("invalid session token")
	}
	return claims, nil
}

func (s *implService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return s.secret, nil
}
