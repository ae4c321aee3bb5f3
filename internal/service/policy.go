package service

import (
	"teamup-backend/internal/database/models"
	apperrors "teamup-backend/internal/errors"

	"github.com/google/uuid"
)

// Action enumerates the team-scoped operations subject to authorization.
type Action string

const (
	ActionTeamDelete   Action = "team.delete"
	ActionMemberAdd    Action = "member.add"
	ActionMemberRemove Action = "member.remove"
	ActionAdminAdd     Action = "admin.add"
	ActionAdminRemove  Action = "admin.remove"
	ActionPostAttach   Action = "post.attach"
	ActionPostDetach   Action = "post.detach"
)

// TeamSnapshot is a point-in-time view of one team's membership, built from
// the rows loaded at the start of the current operation. Authorization is
// always evaluated against a fresh snapshot; snapshots are never cached
// across requests, so a revoked role cannot leak into a later decision.
type TeamSnapshot struct {
	TeamID uuid.UUID
	roles  map[uuid.UUID]models.TeamRole
}

// NewTeamSnapshot builds a snapshot from loaded membership rows.
func NewTeamSnapshot(teamID uuid.UUID, memberships []models.TeamMember) *TeamSnapshot {
	roles := make(map[uuid.UUID]models.TeamRole, len(memberships))
	for _, m := range memberships {
		roles[m.UserID] = m.Role
	}
	return &TeamSnapshot{TeamID: teamID, roles: roles}
}

// RoleOf returns the user's role in the team and whether they belong to it.
func (s *TeamSnapshot) RoleOf(userID uuid.UUID) (models.TeamRole, bool) {
	role, ok := s.roles[userID]
	return role, ok
}

// IsMember reports whether the user holds any role in the team.
func (s *TeamSnapshot) IsMember(userID uuid.UUID) bool {
	_, ok := s.roles[userID]
	return ok
}

// IsAdmin reports whether the user holds admin rank or above.
func (s *TeamSnapshot) IsAdmin(userID uuid.UUID) bool {
	role, ok := s.roles[userID]
	return ok && role.AtLeast(models.TeamRoleAdmin)
}

// IsOwner reports whether the user holds owner rank.
func (s *TeamSnapshot) IsOwner(userID uuid.UUID) bool {
	role, ok := s.roles[userID]
	return ok && role.AtLeast(models.TeamRoleOwner)
}

// OwnerCount returns how many members hold owner rank.
func (s *TeamSnapshot) OwnerCount() int {
	n := 0
	for _, role := range s.roles {
		if role.AtLeast(models.TeamRoleOwner) {
			n++
		}
	}
	return n
}

// IsPostAuthor reports whether the user authored the post.
func IsPostAuthor(post *models.Post, userID uuid.UUID) bool {
	return post != nil && post.UserID == userID
}

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a refusing decision with the reason surfaced to the caller.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a decision into an AuthorizationError, or nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperrors.NewAuthorizationError(d.Reason)
}

// Evaluate is the single source of truth for team authorization. Every
// mutating handler path goes through here instead of re-deriving role
// predicates. For member/admin actions target is the affected user; for
// post actions target is the post's author. State checks (already a member,
// post not attached, ...) are the services' concern, not policy's.
func Evaluate(action Action, team *TeamSnapshot, principal, target uuid.UUID) Decision {
	switch action {
	case ActionTeamDelete:
		if !team.IsOwner(principal) {
			return Deny("only a team owner can delete the team")
		}
		return Allow()

	case ActionMemberAdd:
		// Self-join is disallowed by construction: only admins add members,
		// and an admin is already a member.
		if !team.IsAdmin(principal) {
			return Deny("only a team admin can add members")
		}
		return Allow()

	case ActionMemberRemove:
		if team.IsOwner(target) && !team.IsOwner(principal) {
			return Deny("only a team owner can remove an owner")
		}
		if !team.IsAdmin(principal) && principal != target {
			return Deny("only a team admin can remove other members")
		}
		return Allow()

	case ActionAdminAdd:
		if !team.IsAdmin(principal) {
			return Deny("only a team admin can promote members")
		}
		return Allow()

	case ActionAdminRemove:
		if !team.IsAdmin(principal) {
			return Deny("only a team admin can demote admins")
		}
		if team.IsOwner(target) && !team.IsOwner(principal) {
			return Deny("only a team owner can demote an owner-tier admin")
		}
		return Allow()

	case ActionPostAttach, ActionPostDetach:
		if !team.IsMember(principal) {
			return Deny("only team members can manage team posts")
		}
		if !team.IsAdmin(principal) && principal != target {
			return Deny("only a team admin or the post author can manage this post")
		}
		return Allow()
	}

	return Deny("unknown action")
}
