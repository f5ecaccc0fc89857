// Package views holds the HTML pages of the web application as templ components.
package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// pageWriter accumulates the first write error so component bodies stay flat.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *pageWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *pageWriter) rawf(format string, args ...any) {
	p.raw(fmt.Sprintf(format, args...))
}

// Layout wraps body in the shared document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		p.text(title)
		p.raw(`</title></head><body><main>`)
		if p.err != nil {
			return p.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// Landing is the anonymous start page with the registration and login forms.
func Landing() templ.Component {
	return Layout("Taskkeeper", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<h1>Taskkeeper</h1>`)
		p.raw(`<section><h2>Register</h2><form id="register-form" data-action="/register">`)
		p.raw(`<input name="name" placeholder="Name" required>`)
		p.raw(`<input name="lastname" placeholder="Lastname" required>`)
		p.raw(`<input name="email" type="email" placeholder="Email" required>`)
		p.raw(`<input name="password" type="password" minlength="6" placeholder="Password" required>`)
		p.raw(`<select name="role"><option value="member">Member</option><option value="leader">Leader</option></select>`)
		p.raw(`<button type="submit">Register</button></form></section>`)
		p.raw(`<section><h2>Login</h2><form id="login-form" data-action="/login">`)
		p.raw(`<input name="email" type="email" placeholder="Email" required>`)
		p.raw(`<input name="password" type="password" placeholder="Password" required>`)
		p.raw(`<button type="submit">Login</button></form></section>`)
		p.raw(`<p id="form-message" role="alert"></p>`)
		p.raw(authScript)
		return p.err
	}))
}

const authScript = `<script>
document.querySelectorAll("form[data-action]").forEach(function (form) {
  form.addEventListener("submit", function (e) {
    e.preventDefault();
    fetch(form.dataset.action, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(Object.fromEntries(new FormData(form)))
    }).then(function (r) { return r.json(); }).then(function (data) {
      if (data.success) { window.location = data.redirectTo; return; }
      document.getElementById("form-message").textContent = data.message;
    });
  });
});
</script>`

// Home is the role home page.
func Home(id models.Identity) templ.Component {
	title := "Leader home"
	tasksPath := "/tasks"
	if id.Role == models.RoleMember {
		title = "Member home"
		tasksPath = "/mem_tasks"
	}
	return Layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<h1>`)
		p.text(title)
		p.raw(`</h1><p class="greeting">Hello, `)
		p.text(id.Name + " " + id.Lastname)
		p.raw(`</p>`)
		nav(p, tasksPath)
		return p.err
	}))
}

func nav(p *pageWriter, tasksPath string) {
	p.rawf(`<nav><a href="%s">Tasks</a> <a href="/tasks/export">Export</a> <a href="/logout">Logout</a></nav>`,
		templ.EscapeString(tasksPath))
}

// TaskList renders the caller's tasks and the submission form.
func TaskList(id models.Identity, tasks []*models.Task) templ.Component {
	title := "Tasks"
	tasksPath := "/tasks"
	if id.Role == models.RoleMember {
		title = "My tasks"
		tasksPath = "/mem_tasks"
	}
	return Layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<h1>`)
		p.text(title)
		p.raw(`</h1>`)
		nav(p, tasksPath)

		if len(tasks) == 0 {
			p.raw(`<p class="empty">No tasks yet.</p>`)
		} else {
			p.raw(`<table class="tasks"><thead><tr><th>Name</th><th>Description</th><th>Status</th>`)
			p.raw(`<th>Priority</th><th>Start</th><th>End</th><th>Completed</th><th>Owner</th></tr></thead><tbody>`)
			for _, t := range tasks {
				p.rawf(`<tr data-id="%d">`, t.ID)
				for _, cell := range []string{
					t.Name, t.Description, t.Status, t.Priority,
					dateCell(t.StartDate), dateCell(t.EndDate), strconv.FormatBool(t.Completed), t.OwnerEmail,
				} {
					p.raw(`<td>`)
					p.text(cell)
					p.raw(`</td>`)
				}
				p.raw(`</tr>`)
			}
			p.raw(`</tbody></table>`)
		}

		taskForm(p)
		return p.err
	}))
}

func taskForm(p *pageWriter) {
	p.raw(`<form method="post" action="/tasks" class="task-form">`)
	for _, f := range []struct{ name, kind string }{
		{"name", "text"}, {"description", "text"}, {"start_date", "date"}, {"end_date", "date"},
		{"planned_days", "number"}, {"tags", "text"}, {"status", "text"}, {"type", "text"},
		{"priority", "text"}, {"executors", "text"}, {"commentators", "text"}, {"files", "text"},
		{"time_spent", "number"}, {"completion_date", "date"},
	} {
		p.rawf(`<label>%s <input name="%s" type="%s"></label>`,
			templ.EscapeString(strings.ReplaceAll(f.name, "_", " ")), f.name, f.kind)
	}
	p.raw(`<label>completed <input name="completed" type="checkbox"></label>`)
	p.raw(`<button type="submit">Add task</button></form>`)
}

func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}

// ErrorPage is the generic error document for status.
func ErrorPage(status int, message string) templ.Component {
	title := strconv.Itoa(status)
	return Layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.raw(`<h1>`)
		p.text(title)
		p.raw(`</h1><p>`)
		p.text(message)
		p.raw(`</p><a href="/">Back</a>`)
		return p.err
	}))
}
