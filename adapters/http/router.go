package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
	"github.com/khoahotran/profile-studio/pkg/metrics"
)

type Handlers struct {
	Auth    *AuthHandler
	Session *SessionHandler
	Variant *VariantHandler
}

// NewRouter wires the public and authenticated API routes. m may be nil.
func NewRouter(h Handlers, jwtSvc *auth.JWTService, m *metrics.HTTPMetrics, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(log))
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", m.Handler())
	}
	router.Use(ErrorMiddleware(log))
	router.Use(Recovery())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/auth/login", h.Auth.Login)

		authRequired := api.Group("")
		authRequired.Use(AuthMiddleware(jwtSvc, log))
		{
			sessions := authRequired.Group("/sessions")
			{
				sessions.POST("", h.Session.CreateSession)
				sessions.GET("", h.Session.ListSessions)
				sessions.GET("/:id", h.Session.GetSession)
				sessions.PATCH("/:id", h.Session.UpdateSession)

				sessions.POST("/:id/variants", h.Variant.AddVariant)
				sessions.GET("/:id/variants", h.Variant.ListVariants)
				sessions.GET("/:id/variants/:variantId", h.Variant.GetVariant)
				sessions.PATCH("/:id/variants/:variantId", h.Variant.UpdateVariant)
			}
		}
	}

	return router
}
