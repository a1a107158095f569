package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/profile-studio/adapters/persistence"
	"github.com/khoahotran/profile-studio/internal/application/access"
	authUC "github.com/khoahotran/profile-studio/internal/application/usecase/auth"
	sessionUC "github.com/khoahotran/profile-studio/internal/application/usecase/session"
	variantUC "github.com/khoahotran/profile-studio/internal/application/usecase/variant"
	"github.com/khoahotran/profile-studio/internal/config"
	"github.com/khoahotran/profile-studio/internal/domain/user"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	testUser user.User
	testPass string
}

func (s *AuthE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewZapLogger("development")

	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	s.testUser = user.User{
		Email:        "e2e_test@example.com",
		PasswordHash: hash,
	}

	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	if err := userRepo.Upsert(context.Background(), &s.testUser); err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	sessionRepo := persistence.NewPostgresSessionRepo(dbPool, appLogger)
	variantRepo := persistence.NewPostgresVariantRepo(dbPool, appLogger)
	guard := access.NewGuard(sessionRepo, variantRepo)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(Handlers{
		Auth: NewAuthHandler(authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)),
		Session: NewSessionHandler(
			sessionUC.NewCreateSessionUseCase(sessionRepo, nil, nil, appLogger),
			sessionUC.NewUpdateSessionUseCase(sessionRepo, guard, nil, nil, appLogger),
			sessionUC.NewListSessionsUseCase(sessionRepo, nil, cfg.Cache.TTL, appLogger),
			sessionUC.NewGetSessionUseCase(guard),
		),
		Variant: NewVariantHandler(variantUC.NewVariantUseCase(variantRepo, guard, nil, nil, cfg.Cache.TTL, appLogger)),
	}, jwtSvc, nil, appLogger)
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestAuthE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {
	bodyBad, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": "wrongpassword"})
	reqBad := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyBad))
	reqBad.Header.Set("Content-Type", "application/json")

	rrBad := httptest.NewRecorder()
	s.Router.ServeHTTP(rrBad, reqBad)

	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	bodyGood, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": s.testPass})
	reqGood := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyGood))
	reqGood.Header.Set("Content-Type", "application/json")

	rrGood := httptest.NewRecorder()
	s.Router.ServeHTTP(rrGood, reqGood)

	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse.Data.AccessToken
	assert.NotEmpty(s.T(), accessToken)

	reqCreate := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString(`{"goals":"e2e"}`))
	reqCreate.Header.Set("Content-Type", "application/json")
	reqCreate.Header.Set("Authorization", "Bearer "+accessToken)

	rrCreate := httptest.NewRecorder()
	s.Router.ServeHTTP(rrCreate, reqCreate)

	assert.Equal(s.T(), http.StatusCreated, rrCreate.Code)

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)

	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
