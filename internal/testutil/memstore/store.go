// Package memstore provides in-memory stand-ins for the Postgres repositories,
// the Redis list cache and the Kafka publisher, for use in tests.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/internal/domain/user"
	"github.com/khoahotran/profile-studio/internal/domain/variant"
	"github.com/khoahotran/profile-studio/pkg/apperror"
)

// Store keeps every table behind one lock. Each repository call counts as one round trip.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*user.User
	sessions map[uuid.UUID]*session.ProfileSession
	variants map[uuid.UUID]*variant.BioVariant
	events   map[uuid.UUID]activity.ProfileEvent
	order    map[uuid.UUID]int64
	seq      int64
	calls    int
}

func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*user.User),
		sessions: make(map[uuid.UUID]*session.ProfileSession),
		variants: make(map[uuid.UUID]*variant.BioVariant),
		events:   make(map[uuid.UUID]activity.ProfileEvent),
		order:    make(map[uuid.UUID]int64),
	}
}

func (s *Store) Sessions() session.Repository { return sessionRepo{s} }
func (s *Store) Variants() variant.Repository { return variantRepo{s} }
func (s *Store) Users() user.Repository       { return userRepo{s} }
func (s *Store) Activity() activity.Repository {
	return activityRepo{s}
}

// Calls reports the number of repository round trips so far.
func (s *Store) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = 0
}

// Events returns the recorded activity log.
func (s *Store) Events() []activity.ProfileEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]activity.ProfileEvent, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	return out
}

// Session reads a row directly, bypassing ownership and the call counter.
func (s *Store) Session(id uuid.UUID) (*session.ProfileSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

func (s *Store) enter() func() {
	s.mu.Lock()
	s.calls++
	return s.mu.Unlock
}

func (s *Store) insert(id uuid.UUID) {
	s.seq++
	s.order[id] = s.seq
}

type sessionRepo struct{ *Store }

func (r sessionRepo) Save(_ context.Context, rec *session.ProfileSession) error {
	defer r.enter()()
	if _, ok := r.sessions[rec.ID]; ok {
		return apperror.NewConflict("profile session", "id", rec.ID.String())
	}
	cp := *rec
	r.sessions[rec.ID] = &cp
	r.insert(rec.ID)
	return nil
}

func (r sessionRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*session.ProfileSession, error) {
	defer r.enter()()
	rec, ok := r.sessions[id]
	if !ok || rec.UserID != userID {
		return nil, apperror.NewNotFound("profile session", "")
	}
	cp := *rec
	return &cp, nil
}

func (r sessionRepo) Update(_ context.Context, id, userID uuid.UUID, patch session.Patch, updatedAt time.Time) (*session.ProfileSession, error) {
	defer r.enter()()
	rec, ok := r.sessions[id]
	if !ok || rec.UserID != userID {
		return nil, apperror.NewNotFound("profile session", id.String())
	}
	patch.Apply(rec)
	rec.UpdatedAt = updatedAt
	cp := *rec
	return &cp, nil
}

func (r sessionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*session.ProfileSession, error) {
	defer r.enter()()
	var out []*session.ProfileSession
	for _, rec := range r.sessions {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *session.ProfileSession) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(r.order[b.ID] - r.order[a.ID])
	})
	return out, nil
}

type variantRepo struct{ *Store }

func (r variantRepo) Save(_ context.Context, v *variant.BioVariant) error {
	defer r.enter()()
	if _, ok := r.sessions[v.SessionID]; !ok {
		return apperror.NewNotFound("profile session", v.SessionID.String())
	}
	cp := *v
	r.variants[v.ID] = &cp
	r.insert(v.ID)
	return nil
}

func (r variantRepo) owned(id, sessionID, userID uuid.UUID) (*variant.BioVariant, bool) {
	v, ok := r.variants[id]
	if !ok || v.SessionID != sessionID {
		return nil, false
	}
	parent, ok := r.sessions[sessionID]
	if !ok || parent.UserID != userID {
		return nil, false
	}
	return v, true
}

func (r variantRepo) FindOwned(_ context.Context, id, sessionID, userID uuid.UUID) (*variant.BioVariant, error) {
	defer r.enter()()
	v, ok := r.owned(id, sessionID, userID)
	if !ok {
		return nil, apperror.NewNotFound("bio variant", "")
	}
	cp := *v
	return &cp, nil
}

func (r variantRepo) Update(_ context.Context, id, sessionID, userID uuid.UUID, patch variant.Patch) (*variant.BioVariant, error) {
	defer r.enter()()
	v, ok := r.owned(id, sessionID, userID)
	if !ok {
		return nil, apperror.NewNotFound("bio variant", id.String())
	}
	patch.Apply(v)
	cp := *v
	return &cp, nil
}

func (r variantRepo) ListBySession(_ context.Context, sessionID uuid.UUID, favoritesOnly bool) ([]*variant.BioVariant, error) {
	defer r.enter()()
	var out []*variant.BioVariant
	for _, v := range r.variants {
		if v.SessionID != sessionID || (favoritesOnly && !v.IsFavorite) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *variant.BioVariant) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return int(r.order[a.ID] - r.order[b.ID])
	})
	return out, nil
}

type userRepo struct{ *Store }

func (r userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	defer r.enter()()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r userRepo) Upsert(_ context.Context, u *user.User) error {
	defer r.enter()()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			existing.Name = u.Name
			existing.PasswordHash = u.PasswordHash
			u.ID = existing.ID
			return nil
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type activityRepo struct{ *Store }

func (r activityRepo) Append(_ context.Context, e activity.ProfileEvent) error {
	defer r.enter()()
	if _, ok := r.events[e.ID]; !ok {
		r.events[e.ID] = e
	}
	return nil
}
