package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taxiservice/pkg/forms"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type AuthService interface {
	// Login checks the credentials and opens a session.
	Login(ctx context.Context, form forms.Login) (*models.Session, *models.Driver, error)
	// Authenticate resolves a session token. Any failure is ErrUnauthenticated
	// unless the store itself failed.
	Authenticate(ctx context.Context, token string) (*models.Driver, *models.Session, error)
	Logout(ctx context.Context, token string) error
	// Visit counts a page view on the session and returns the total.
	Visit(ctx context.Context, token string) (int, error)
}

type authService struct {
	stg       storage.IStorage
	ttl       time.Duration
	now       func() time.Time
	dummyHash []byte
	log       logger.ILogger
}

func NewAuthService(stg storage.IStorage, opts Options, log logger.ILogger) AuthService {
	opts = opts.withDefaults()
	// Compared against when the username is unknown so both paths cost the same.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("taxiservice-dummy-password"), opts.BcryptCost)
	return &authService{
		stg:       stg,
		ttl:       opts.SessionTTL,
		now:       opts.Now,
		dummyHash: dummy,
		log:       log,
	}
}

func (s *authService) Login(ctx context.Context, form forms.Login) (*models.Session, *models.Driver, error) {
	cleaned, err := form.Clean()
	if err != nil {
		return nil, nil, err
	}

	d, err := s.stg.Driver().GetByUsername(ctx, cleaned.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, err
	}
	hash := s.dummyHash
	if d != nil {
		hash = []byte(d.Account.PasswordHash)
	}
	if cmpErr := bcrypt.CompareHashAndPassword(hash, []byte(cleaned.Password)); cmpErr != nil || d == nil {
		s.log.Info("login failed", logger.String("username", cleaned.Username))
		return nil, nil, forms.FieldError(forms.NonField, invalidLogin)
	}

	now := s.now()
	if n, err := s.stg.Session().DeleteExpired(ctx, now); err != nil {
		s.log.Warning("failed to purge expired sessions", logger.Error(err))
	} else if n > 0 {
		s.log.Debug("purged expired sessions", logger.Int64("count", n))
	}

	sess := &models.Session{
		Token:     uuid.NewString(),
		DriverID:  d.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.stg.Session().Create(ctx, sess); err != nil {
		return nil, nil, err
	}

	s.log.Info("driver logged in", logger.Int64("driver_id", d.ID))
	return sess, d, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.Driver, *models.Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil, ErrUnauthenticated
	}

	sess, err := s.stg.Session().Get(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}
	if sess.Expired(s.now()) {
		if err := s.stg.Session().Delete(ctx, token); err != nil {
			s.log.Warning("failed to delete expired session", logger.Error(err))
		}
		return nil, nil, ErrUnauthenticated
	}

	d, err := s.stg.Driver().GetByID(ctx, sess.DriverID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}
	return d, sess, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	return s.stg.Session().Delete(ctx, token)
}

func (s *authService) Visit(ctx context.Context, token string) (int, error) {
	visits, err := s.stg.Session().Touch(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, ErrUnauthenticated
	}
	return visits, err
}
