package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/pkg/apperror"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

const (
	GinContextKeyCaller = "caller"
)

func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewUnauthorized("Authorization header is required", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Error(apperror.NewUnauthorized("invalid token format", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected bearer token", zap.Error(err))
			c.Error(apperror.NewUnauthorized("invalid or expired token", err))
			c.Abort()
			return
		}

		c.Set(GinContextKeyCaller, claims.Caller())
		c.Next()
	}
}

// CallerFromGinContext returns the identity set by AuthMiddleware, or nil.
func CallerFromGinContext(c *gin.Context) *auth.Caller {
	v, ok := c.Get(GinContextKeyCaller)
	if !ok {
		return nil
	}
	caller, _ := v.(*auth.Caller)
	return caller
}

// ErrorMiddleware renders the last handler error as the failure envelope.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unhandled error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= 500 {
			log.Error("Request failed", appErr, zap.String("path", c.FullPath()), zap.String("method", c.Request.Method))
		} else {
			log.Debug("Request rejected", zap.String("code", appErr.Code()), zap.String("details", appErr.Details))
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(status, appErr.ToJSON())
		}
	}
}

// Recovery runs inside ErrorMiddleware so a panic is rendered as an INTERNAL envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		_ = c.Error(apperror.NewInternal("panic recovered", fmt.Errorf("%v", recovered)))
		c.Abort()
	})
}

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
