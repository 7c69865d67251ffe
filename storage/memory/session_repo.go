package memory

import (
	"context"
	"time"

	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type sessionRepo struct {
	s *Store
}

func (r *sessionRepo) Create(ctx context.Context, sess *models.Session) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[sess.DriverID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.s.sessions[sess.Token]; ok {
		return &storage.ConflictError{Field: "token"}
	}
	r.s.sessions[sess.Token] = *sess
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	_ = ctx
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &sess, nil
}

func (r *sessionRepo) Touch(ctx context.Context, token string) (int, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[token]
	if !ok {
		return 0, storage.ErrNotFound
	}
	sess.Visits++
	r.s.sessions[token] = sess
	return sess.Visits, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, token)
	return nil
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	_ = ctx
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for token, sess := range r.s.sessions {
		if sess.Expired(now) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}
