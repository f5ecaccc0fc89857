package httpserver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpserver/views"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/policy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxSession      = "session"
	ctxSessionToken = "session_token"

	pathRegister = "/register"
	pathLogin    = "/login"
)

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		s.logger.Error(c.Request.Context(), "panic", "error", err, "request_id", c.GetString(ctxRequestID))
		s.renderError(c)
		c.Abort()
	})
}

// requestLog assigns a request id and writes one access record per request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.RequestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// resolveSession looks up the session behind the cookie. A missing or
// invalid cookie leaves the request anonymous.
func (s *Server) resolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		c.Set(ctxSessionToken, token)

		sess, err := s.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			s.logger.Error(c.Request.Context(), "resolve session", "error", err, "request_id", c.GetString(ctxRequestID))
			if answersJSON(c) {
				jsonFailure(c, http.StatusInternalServerError, "Server error.")
			} else {
				s.renderError(c)
			}
			c.Abort()
			return
		}
		if sess != nil {
			c.Set(ctxSession, sess)
		}
		c.Next()
	}
}

// guard enforces the access policy for route.
func (s *Server) guard(route policy.RouteKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := policy.Decide(currentSession(c), route)
		switch d.Outcome {
		case policy.Admit:
			c.Next()
		case policy.Redirect:
			c.Redirect(d.Status, d.Location)
			c.Abort()
		default:
			s.renderPage(c, d.Status, views.ErrorPage(d.Status, http.StatusText(d.Status)))
			c.Abort()
		}
	}
}

// answersJSON reports whether the request targets an endpoint that replies
// with the JSON envelope instead of a page.
func answersJSON(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost {
		return false
	}
	switch c.Request.URL.Path {
	case pathRegister, pathLogin:
		return true
	}
	return false
}

func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
