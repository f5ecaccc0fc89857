package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/policy"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Lastname string `json:"lastname" form:"lastname"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		jsonFailure(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	u, err := s.users.Register(ctx, services.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Lastname: req.Lastname,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			jsonFailure(c, http.StatusBadRequest, ve.Message)
		case errors.Is(err, common.ErrDuplicateIdentity):
			jsonFailure(c, http.StatusConflict, "User already exists.")
		default:
			s.logger.Error(ctx, "register", "error", err, "request_id", c.GetString(ctxRequestID))
			jsonFailure(c, http.StatusInternalServerError, "Server error.")
		}
		return
	}

	s.startSession(c, u)
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Email == "" || req.Password == "" {
		jsonFailure(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	u, err := s.users.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrAuthFailure) {
			jsonFailure(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		s.logger.Error(ctx, "login", "error", err, "request_id", c.GetString(ctxRequestID))
		jsonFailure(c, http.StatusInternalServerError, "Server error.")
		return
	}

	s.startSession(c, u)
}

// startSession replaces any session the caller already holds with a new one
// for u and answers with the role home page.
func (s *Server) startSession(c *gin.Context, u *models.User) {
	ctx := c.Request.Context()

	if old := c.GetString(ctxSessionToken); old != "" {
		if err := s.sessions.Destroy(ctx, old); err != nil {
			s.logger.Warn(ctx, "destroy previous session", "error", err, "request_id", c.GetString(ctxRequestID))
		}
	}

	token, err := s.sessions.Create(ctx, u.Identity())
	if err != nil {
		s.logger.Error(ctx, "create session", "error", err, "request_id", c.GetString(ctxRequestID))
		jsonFailure(c, http.StatusInternalServerError, "Server error.")
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, jsonResponse{Success: true, RedirectTo: policy.HomePath(u.Role)})
}

func (s *Server) logout(c *gin.Context) {
	ctx := c.Request.Context()

	if token := c.GetString(ctxSessionToken); token != "" {
		if err := s.sessions.Destroy(ctx, token); err != nil {
			s.logger.Error(ctx, "logout", "error", err, "request_id", c.GetString(ctxRequestID))
			c.Redirect(http.StatusFound, policy.PathLeaderHome)
			return
		}
	}

	s.clearSessionCookie(c)
	c.Redirect(http.StatusFound, policy.PathLanding)
}
