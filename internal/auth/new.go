package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
)

// UserStore is the part of the repository auth needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type implService struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
	cost     int
	now      func() time.Time
	logger   logger.Logger
}

func New(cfg config.AuthConfig, users UserStore, log logger.Logger) Service {
	return &implService{
		users:    users,
		secret:   []byte(cfg.SecretKey),
		tokenTTL: cfg.TokenTTL,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		logger:   log,
	}
}
