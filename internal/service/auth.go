package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/transport"
	pkg_hash "github.com/Skotchmaster/shop_api/pkg/hash"
	"github.com/Skotchmaster/shop_api/pkg/logging"
	"github.com/Skotchmaster/shop_api/pkg/tokens"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (repo.Result, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	Repo      UserStore
	JWTSecret []byte
	TokenTTL  time.Duration
	Events    events.Publisher
}

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := pkg_hash.HashPassword("dummy-password")
	return h
})

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	res, err := s.Repo.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.publish(ctx, events.UserEvent{Type: events.UserRegistered, UserID: res.InsertedID, Email: user.Email})
	return nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			_, _ = pkg_hash.ComparePassword(dummyHash(), req.Password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	ok, err := pkg_hash.ComparePassword(user.PasswordHash, req.Password)
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := tokens.Sign(tokens.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, s.JWTSecret, s.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.publish(ctx, events.UserEvent{Type: events.UserLoggedIn, UserID: user.ID, Email: user.Email})
	return token, nil
}

func (s *AuthService) publish(ctx context.Context, event events.UserEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, events.TopicUsers, strconv.FormatUint(uint64(event.UserID), 10), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", events.TopicUsers, "type", event.Type, "error", err)
	}
}
