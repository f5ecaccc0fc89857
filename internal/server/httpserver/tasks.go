package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/export"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpserver/views"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/policy"
	"github.com/gin-gonic/gin"
)

// listTasks serves both task list pages, always scoped to the session email.
func (s *Server) listTasks(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	items, err := s.tasks.ListForOwner(ctx, sess.Email)
	if err != nil {
		s.logger.Error(ctx, "list tasks", "error", err, "request_id", c.GetString(ctxRequestID))
		s.renderError(c)
		return
	}
	s.renderPage(c, http.StatusOK, views.TaskList(sess.Identity(), items))
}

func (s *Server) submitTask(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	in, err := bindTaskInput(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid request body.")
		return
	}

	if _, err := s.tasks.Create(ctx, sess.Email, in); err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve):
			c.String(http.StatusBadRequest, ve.Message)
		case errors.Is(err, common.ErrorUnauthorized):
			s.renderPage(c, http.StatusUnauthorized, views.ErrorPage(http.StatusUnauthorized, "Unauthorized"))
		default:
			s.logger.Error(ctx, "create task", "error", err, "request_id", c.GetString(ctxRequestID))
			s.renderError(c)
		}
		return
	}

	c.Redirect(http.StatusFound, policy.TasksPath(sess.Role))
}

func (s *Server) exportTasks(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	items, err := s.tasks.ListForOwner(ctx, sess.Email)
	if err != nil {
		s.logger.Error(ctx, "export tasks", "error", err, "request_id", c.GetString(ctxRequestID))
		s.renderError(c)
		return
	}

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(s.now())))
	c.Status(http.StatusOK)
	if err := export.WriteTasksXLSX(c.Writer, items); err != nil {
		s.logger.Error(ctx, "write xlsx", "error", err, "request_id", c.GetString(ctxRequestID))
	}
}

// taskFields lists the accepted body fields in TaskInput order.
var taskFields = []string{
	"name", "description", "start_date", "end_date", "planned_days", "tags", "status",
	"type", "priority", "executors", "commentators", "files", "completed", "time_spent",
	"completion_date",
}

// bindTaskInput reads the task fields from a JSON or form body. JSON numbers
// and booleans are accepted and turned into their text form. Any owner
// field in the body is ignored.
func bindTaskInput(c *gin.Context) (models.TaskInput, error) {
	values := make(map[string]string, len(taskFields))

	if c.ContentType() == gin.MIMEJSON {
		raw := map[string]any{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			return models.TaskInput{}, err
		}
		for _, f := range taskFields {
			values[f] = scalarString(raw[f])
		}
	} else {
		for _, f := range taskFields {
			values[f] = c.PostForm(f)
		}
	}

	return models.TaskInput{
		Name:           values["name"],
		Description:    values["description"],
		StartDate:      values["start_date"],
		EndDate:        values["end_date"],
		PlannedDays:    values["planned_days"],
		Tags:           values["tags"],
		Status:         values["status"],
		Type:           values["type"],
		Priority:       values["priority"],
		Executors:      values["executors"],
		Commentators:   values["commentators"],
		Files:          values["files"],
		Completed:      values["completed"],
		TimeSpent:      values["time_spent"],
		CompletionDate: values["completion_date"],
	}, nil
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
