package domain

import (
	"errors"
	"strings"
)

// Role is an account's authority within one organization, totally ordered
// owner > manager > staff.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// ErrUnknownRole reports a role string outside the known set.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates and normalizes a role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleManager:
		return RoleManager, nil
	case RoleStaff:
		return RoleStaff, nil
	default:
		return "", ErrUnknownRole
	}
}

// Level maps a role onto the authority ordering. Higher outranks lower;
// unknown roles rank below everything.
func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleManager:
		return 2
	case RoleStaff:
		return 1
	default:
		return 0
	}
}

func (r Role) String() string { return string(r) }

// Action is an operation subject to role gating.
type Action string

const (
	ActionView               Action = "view"
	ActionEditProfile        Action = "editProfile"
	ActionDeleteOrganization Action = "deleteOrganization"
	ActionInviteMember       Action = "inviteMember"
	ActionChangeRole         Action = "changeRole"
	ActionRemoveMember       Action = "removeMember"
)

// policyTable is the single source of truth for (role, action) gating.
// Target-relationship rules (self, owner targets, manager vs manager) are not
// expressible here and live in MemberService.authorizeTarget.
var policyTable = map[Role]map[Action]bool{
	RoleOwner: {
		ActionView:               true,
		ActionEditProfile:        true,
		ActionDeleteOrganization: true,
		ActionInviteMember:       true,
		ActionChangeRole:         true,
		ActionRemoveMember:       true,
	},
	RoleManager: {
		ActionView:         true,
		ActionEditProfile:  true,
		ActionInviteMember: true,
		ActionRemoveMember: true, // staff targets only, enforced at the directory boundary
	},
	RoleStaff: {
		ActionView: true,
	},
}

// Can reports whether a role is allowed to perform an action. Pure and total:
// unknown roles and unknown actions are denied.
func Can(role Role, action Action) bool {
	return policyTable[role][action]
}
