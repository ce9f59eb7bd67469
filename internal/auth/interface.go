package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aajetechnology/StudyBot/internal/models"
)

// Claims are carried by every session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
	Admin  bool `json:"admin"`
}

type RegisterInput struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email,max=120"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Service registers users and issues session tokens.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// Login checks credentials and returns a signed token for the user.
	Login(ctx context.Context, in LoginInput) (string, *models.User, error)
	ParseToken(token string) (*Claims, error)
}
