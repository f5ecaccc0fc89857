package httpserver

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpserver/views"
	"github.com/gin-gonic/gin"
)

type jsonResponse struct {
	Success    bool   `json:"success"`
	RedirectTo string `json:"redirectTo,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (s *Server) renderPage(c *gin.Context, status int, page templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := page.Render(c.Request.Context(), c.Writer); err != nil {
		s.logger.Error(c.Request.Context(), "render page", "error", err, "request_id", c.GetString(ctxRequestID))
	}
}

// renderError answers with the generic 500 page.
func (s *Server) renderError(c *gin.Context) {
	s.renderPage(c, http.StatusInternalServerError, views.ErrorPage(http.StatusInternalServerError, "Internal server error"))
}

func jsonFailure(c *gin.Context, status int, message string) {
	c.JSON(status, jsonResponse{Success: false, Message: message})
}
