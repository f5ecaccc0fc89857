package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestTaskList_EscapesContent(t *testing.T) {
	id := models.Identity{Email: "a@x.com", Name: "alice", Role: models.RoleMember}
	got := render(t, TaskList(id, []*models.Task{
		{ID: 1, Name: `<script>alert(1)</script>`, Description: "d1", OwnerEmail: "a@x.com"},
	}))

	assert.NotContains(t, got, "<script>alert(1)</script>")
	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, `href="/mem_tasks"`)
	assert.Contains(t, got, `<tr data-id="1">`)
}

func TestTaskList_Empty(t *testing.T) {
	got := render(t, TaskList(models.Identity{Role: models.RoleLeader}, nil))
	assert.Contains(t, got, "No tasks yet.")
	assert.Contains(t, got, `action="/tasks"`)
}

func TestHome_ByRole(t *testing.T) {
	leader := render(t, Home(models.Identity{Name: "lee", Role: models.RoleLeader}))
	member := render(t, Home(models.Identity{Name: "alice", Role: models.RoleMember}))

	assert.Contains(t, leader, "Leader home")
	assert.Contains(t, member, "Member home")
	assert.Contains(t, member, "alice")
}

func TestErrorPage(t *testing.T) {
	got := render(t, ErrorPage(404, "page not found"))
	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "<h1>404</h1>")
	assert.Contains(t, got, "page not found")
}

func TestLanding_HasForms(t *testing.T) {
	got := render(t, Landing())
	assert.Contains(t, got, `data-action="/register"`)
	assert.Contains(t, got, `data-action="/login"`)
}
