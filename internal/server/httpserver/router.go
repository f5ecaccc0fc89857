package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/httpserver/views"
	"github.com/dmitrijs2005/taskkeeper/internal/server/policy"
	"github.com/gin-gonic/gin"
)

func (s *Server) newEngine() *gin.Engine {
	if s.opts.GinMode != "" {
		gin.SetMode(s.opts.GinMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = false
	r.Use(
		s.recovery(),
		s.requestLog(),
		s.timeout(),
		s.resolveSession(),
	)

	r.GET("/", s.guard(policy.Landing), s.landing)
	r.GET("/home", s.guard(policy.LeaderHome), s.home)
	r.GET("/member-home", s.guard(policy.MemberHome), s.home)

	r.POST(pathRegister, s.guard(policy.Register), s.register)
	r.POST(pathLogin, s.guard(policy.Login), s.login)
	r.GET("/logout", s.guard(policy.Logout), s.logout)

	r.GET("/tasks", s.guard(policy.LeaderTasks), s.listTasks)
	r.GET("/mem_tasks", s.guard(policy.MemberTasks), s.listTasks)
	r.POST("/tasks", s.guard(policy.SubmitTask), s.submitTask)
	r.GET("/tasks/export", s.guard(policy.ExportTasks), s.exportTasks)

	r.NoRoute(func(c *gin.Context) {
		s.renderPage(c, http.StatusNotFound, views.ErrorPage(http.StatusNotFound, "Page not found"))
	})
	return r
}
