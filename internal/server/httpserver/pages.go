package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/httpserver/views"
	"github.com/gin-gonic/gin"
)

func (s *Server) landing(c *gin.Context) {
	s.renderPage(c, http.StatusOK, views.Landing())
}

// home serves both role home pages; the guard has already matched the role.
func (s *Server) home(c *gin.Context) {
	s.renderPage(c, http.StatusOK, views.Home(currentSession(c).Identity()))
}
