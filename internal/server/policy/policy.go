// Package policy decides whether a request may reach a route, given the
// caller's resolved session. It has no I/O and no transport types.
package policy

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// RouteKind names a guarded route.
type RouteKind int

const (
	Landing RouteKind = iota
	LeaderHome
	MemberHome
	LeaderTasks
	MemberTasks
	SubmitTask
	ExportTasks
	Register
	Login
	Logout
)

// Paths used as redirect targets.
const (
	PathLanding     = "/"
	PathLeaderHome  = "/home"
	PathMemberHome  = "/member-home"
	PathLeaderTasks = "/tasks"
	PathMemberTasks = "/mem_tasks"
)

// Outcome is the kind of decision.
type Outcome int

const (
	Admit Outcome = iota
	Redirect
	Reject
)

// Decision is the result of Decide. Location is set for Redirect, Status for Reject.
type Decision struct {
	Outcome  Outcome
	Location string
	Status   int
}

type rule struct {
	auth        bool
	write       bool
	role        models.Role
	counterpart string
}

var rules = map[RouteKind]rule{
	Landing:     {},
	LeaderHome:  {auth: true, role: models.RoleLeader, counterpart: PathMemberHome},
	MemberHome:  {auth: true, role: models.RoleMember, counterpart: PathLeaderHome},
	LeaderTasks: {auth: true, role: models.RoleLeader, counterpart: PathMemberTasks},
	MemberTasks: {auth: true, role: models.RoleMember, counterpart: PathLeaderTasks},
	SubmitTask:  {auth: true, write: true},
	ExportTasks: {auth: true},
	Register:    {},
	Login:       {},
	Logout:      {},
}

func admit() Decision { return Decision{Outcome: Admit} }

func redirectTo(path string) Decision {
	return Decision{Outcome: Redirect, Location: path, Status: http.StatusFound}
}

func reject(status int) Decision { return Decision{Outcome: Reject, Status: status} }

// Decide applies the access rules to sess (nil when anonymous) and route.
func Decide(sess *models.Session, route RouteKind) Decision {
	r, ok := rules[route]
	if !ok {
		return reject(http.StatusNotFound)
	}

	if route == Landing && sess != nil {
		return redirectTo(PathLeaderHome)
	}
	if !r.auth {
		return admit()
	}
	if sess == nil {
		return redirectTo(PathLanding)
	}

	if r.role != "" {
		if !sess.Role.Valid() {
			return reject(http.StatusUnauthorized)
		}
		if sess.Role != r.role {
			return redirectTo(r.counterpart)
		}
	}

	if r.write && sess.Email == "" {
		return reject(http.StatusUnauthorized)
	}
	return admit()
}

// HomePath is the home page for role.
func HomePath(role models.Role) string {
	if role == models.RoleMember {
		return PathMemberHome
	}
	return PathLeaderHome
}

// TasksPath is the task list page for role.
func TasksPath(role models.Role) string {
	if role == models.RoleMember {
		return PathMemberTasks
	}
	return PathLeaderTasks
}
