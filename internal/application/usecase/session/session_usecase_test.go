package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/profile-studio/internal/application/access"
	sessionUC "github.com/khoahotran/profile-studio/internal/application/usecase/session"
	"github.com/khoahotran/profile-studio/internal/domain/activity"
	"github.com/khoahotran/profile-studio/internal/domain/session"
	"github.com/khoahotran/profile-studio/internal/testutil/memstore"
	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

func strPtr(s string) *string { return &s }

type SessionUseCaseTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memstore.Store
	cache  *memstore.Cache
	events *memstore.Publisher

	create *sessionUC.CreateSessionUseCase
	update *sessionUC.UpdateSessionUseCase
	list   *sessionUC.ListSessionsUseCase
	get    *sessionUC.GetSessionUseCase

	alice *auth.Caller
	bob   *auth.Caller
}

func (s *SessionUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.cache = memstore.NewCache()
	s.events = &memstore.Publisher{}
	log := logger.NewNop()

	guard := access.NewGuard(s.store.Sessions(), s.store.Variants())
	s.create = sessionUC.NewCreateSessionUseCase(s.store.Sessions(), s.cache, s.events, log)
	s.update = sessionUC.NewUpdateSessionUseCase(s.store.Sessions(), guard, s.cache, s.events, log)
	s.list = sessionUC.NewListSessionsUseCase(s.store.Sessions(), s.cache, time.Minute, log)
	s.get = sessionUC.NewGetSessionUseCase(guard)

	s.alice = &auth.Caller{UserID: uuid.New(), Email: "alice@example.com"}
	s.bob = &auth.Caller{UserID: uuid.New(), Email: "bob@example.com"}
}

func TestSessionUseCases(t *testing.T) {
	suite.Run(t, new(SessionUseCaseTestSuite))
}

func (s *SessionUseCaseTestSuite) createFor(c *auth.Caller, in sessionUC.CreateSessionInput) *session.ProfileSession {
	in.Caller = c
	out, err := s.create.Execute(s.ctx, in)
	s.Require().NoError(err)
	return out.Session
}

func (s *SessionUseCaseTestSuite) Test_Create_StampsCallerAndTimestamps() {
	out, err := s.create.Execute(s.ctx, sessionUC.CreateSessionInput{
		Caller:          s.alice,
		CurrentHeadline: strPtr("Backend engineer"),
	})
	s.Require().NoError(err)

	got := out.Session
	s.NotEqual(uuid.Nil, got.ID)
	s.Equal(s.alice.UserID, got.UserID)
	s.Equal("Backend engineer", *got.CurrentHeadline)
	s.Nil(got.Goals)
	s.False(got.CreatedAt.IsZero())
	s.Equal(got.CreatedAt, got.UpdatedAt)

	stored, ok := s.store.Session(got.ID)
	s.Require().True(ok)
	s.Equal(*got, *stored)
}

func (s *SessionUseCaseTestSuite) Test_Create_IDsAreUnique() {
	seen := make(map[uuid.UUID]bool)
	for range 20 {
		got := s.createFor(s.alice, sessionUC.CreateSessionInput{})
		s.False(seen[got.ID], "duplicate id %s", got.ID)
		seen[got.ID] = true
	}
}

func (s *SessionUseCaseTestSuite) Test_Create_PublishesEvent() {
	got := s.createFor(s.alice, sessionUC.CreateSessionInput{})

	s.Eventually(func() bool { return len(s.events.Events()) == 1 }, time.Second, 10*time.Millisecond)
	e := s.events.Events()[0]
	s.Equal(activity.EventSessionCreated, e.EventType)
	s.Equal(got.ID, e.SessionID)
	s.Equal(s.alice.UserID, e.UserID)
	s.Nil(e.VariantID)
}

func (s *SessionUseCaseTestSuite) Test_Unauthenticated_NeverTouchesStore() {
	_, err := s.create.Execute(s.ctx, sessionUC.CreateSessionInput{})
	s.True(errors.Is(err, apperror.ErrUnauthorized))

	_, err = s.update.Execute(s.ctx, sessionUC.UpdateSessionInput{
		SessionID: uuid.New(),
		Patch:     session.Patch{Goals: nullable.NewNullableWithValue("x")},
	})
	s.True(errors.Is(err, apperror.ErrUnauthorized))

	_, err = s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: &auth.Caller{}})
	s.True(errors.Is(err, apperror.ErrUnauthorized))

	_, err = s.get.Execute(s.ctx, sessionUC.GetSessionInput{SessionID: uuid.New()})
	s.True(errors.Is(err, apperror.ErrUnauthorized))

	s.Equal(0, s.store.Calls())
}

func (s *SessionUseCaseTestSuite) Test_Update_IsSparse() {
	created := s.createFor(s.alice, sessionUC.CreateSessionInput{
		CurrentHeadline: strPtr("Staff engineer"),
		Location:        strPtr("Hanoi"),
	})

	out, err := s.update.Execute(s.ctx, sessionUC.UpdateSessionInput{
		Caller:    s.alice,
		SessionID: created.ID,
		Patch:     session.Patch{Goals: nullable.NewNullableWithValue("job search")},
	})
	s.Require().NoError(err)

	got := out.Session
	s.Equal("job search", *got.Goals)
	s.Equal("Staff engineer", *got.CurrentHeadline)
	s.Equal("Hanoi", *got.Location)
	s.Nil(got.Industry)
	s.Equal(created.UserID, got.UserID)
	s.Equal(created.CreatedAt, got.CreatedAt)
	s.True(got.UpdatedAt.After(created.UpdatedAt))
}

func (s *SessionUseCaseTestSuite) Test_Update_NullClearsField() {
	created := s.createFor(s.alice, sessionUC.CreateSessionInput{Industry: strPtr("Fintech")})

	out, err := s.update.Execute(s.ctx, sessionUC.UpdateSessionInput{
		Caller:    s.alice,
		SessionID: created.ID,
		Patch:     session.Patch{Industry: nullable.NewNullNullable[string]()},
	})
	s.Require().NoError(err)
	s.Nil(out.Session.Industry)
}

func (s *SessionUseCaseTestSuite) Test_Update_UpdatedAtStrictlyIncreases() {
	created := s.createFor(s.alice, sessionUC.CreateSessionInput{})

	prev := created.UpdatedAt
	for i := range 5 {
		out, err := s.update.Execute(s.ctx, sessionUC.UpdateSessionInput{
			Caller:    s.alice,
			SessionID: created.ID,
			Patch:     session.Patch{CurrentTitle: nullable.NewNullableWithValue(string(rune('a' + i)))},
		})
		s.Require().NoError(err)
		s.True(out.Session.UpdatedAt.After(prev), "update %d did not advance updatedAt", i)
		prev = out.Session.UpdatedAt
	}
}

func (s *SessionUseCaseTestSuite) Test_Update_EmptyPatchRejectedBeforeStore() {
	created := s.createFor(s.alice, sessionUC.CreateSessionInput{})
	s.store.ResetCalls()

	_, err := s.update.Execute(s.ctx, sessionUC.UpdateSessionInput{
		Caller:    s.alice,
		SessionID: created.ID,
	})
	s.True(errors.Is(err, apperror.ErrInvalidInput))
	s.Equal(apperror.CodeValidation, apperror.Code(err))
	s.Equal(0, s.store.Calls())
}

func (s *SessionUseCaseTestSuite) Test_OtherUsersSessionIsNotFound() {
	created := s.createFor(s.alice, sessionUC.CreateSessionInput{Goals: strPtr("promotion")})

	_, err := s.update.Execute(s.ctx, sessionUC.UpdateSessionInput{
		Caller:    s.bob,
		SessionID: created.ID,
		Patch:     session.Patch{Goals: nullable.NewNullableWithValue("hijack")},
	})
	s.True(errors.Is(err, apperror.ErrNotFound))

	_, err = s.get.Execute(s.ctx, sessionUC.GetSessionInput{Caller: s.bob, SessionID: created.ID})
	s.True(errors.Is(err, apperror.ErrNotFound))

	_, missingErr := s.get.Execute(s.ctx, sessionUC.GetSessionInput{Caller: s.bob, SessionID: uuid.New()})
	s.Equal(apperror.Code(missingErr), apperror.Code(err))

	stored, _ := s.store.Session(created.ID)
	s.Equal("promotion", *stored.Goals)
}

func (s *SessionUseCaseTestSuite) Test_List_OnlyCallersSessions() {
	a1 := s.createFor(s.alice, sessionUC.CreateSessionInput{})
	a2 := s.createFor(s.alice, sessionUC.CreateSessionInput{})
	s.createFor(s.bob, sessionUC.CreateSessionInput{})

	out, err := s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: s.alice})
	s.Require().NoError(err)
	s.Equal(2, out.Total)

	ids := []uuid.UUID{out.Items[0].ID, out.Items[1].ID}
	s.ElementsMatch([]uuid.UUID{a1.ID, a2.ID}, ids)
}

func (s *SessionUseCaseTestSuite) Test_List_EmptyIsNotNil() {
	out, err := s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: s.bob})
	s.Require().NoError(err)
	s.NotNil(out.Items)
	s.Equal(0, out.Total)
}

func (s *SessionUseCaseTestSuite) Test_List_CachedUntilWrite() {
	s.createFor(s.alice, sessionUC.CreateSessionInput{})

	_, err := s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: s.alice})
	s.Require().NoError(err)
	s.Equal(1, s.cache.Len())

	s.store.ResetCalls()
	out, err := s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: s.alice})
	s.Require().NoError(err)
	s.Equal(1, out.Total)
	s.Equal(0, s.store.Calls())

	s.createFor(s.alice, sessionUC.CreateSessionInput{})

	s.store.ResetCalls()
	out, err = s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: s.alice})
	s.Require().NoError(err)
	s.Equal(2, out.Total)
	s.Equal(1, s.store.Calls())
}

func (s *SessionUseCaseTestSuite) Test_List_CacheFailureFallsBackToStore() {
	s.createFor(s.alice, sessionUC.CreateSessionInput{})
	s.cache.Err = errors.New("redis down")

	out, err := s.list.Execute(s.ctx, sessionUC.ListSessionsInput{Caller: s.alice})
	s.Require().NoError(err)
	s.Equal(1, out.Total)
}
