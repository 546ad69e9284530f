// Package access decides what an authenticated actor may see and do.
//
// It is deliberately free of framework and storage dependencies: every
// decision takes plain values in and returns a plain decision out, so the
// rules stay independently testable. Call sites apply the returned scope
// to their store queries and map the returned errors to HTTP outcomes.
package access

import "errors"

// Roles
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
	RoleUser   = "user"
)

var AllRoles = []string{RoleMaster, RoleAdmin, RoleUser}

var (
	// ErrForbidden is the generic denial; it carries no detail about the
	// entity so a denied caller cannot probe for existence.
	ErrForbidden = errors.New("access denied")

	// ErrCompanyRequired indicates a missing scoping parameter. It is a
	// bad-request outcome and is checked before any access decision.
	ErrCompanyRequired = errors.New("company ID is required")
)

// Actor is the authenticated identity making a request.
type Actor struct {
	ID        string
	Role      string
	CompanyID string // empty for master
	IsActive  bool
}

func (a Actor) IsMaster() bool        { return a.Role == RoleMaster }
func (a Actor) IsAdmin() bool         { return a.Role == RoleAdmin }
func (a Actor) IsMasterOrAdmin() bool { return a.Role == RoleMaster || a.Role == RoleAdmin }

// HasCompanyAccess reports whether the actor may touch resources owned by
// companyID. Master and admin both bypass the company check; this is the
// variant applied on company, department and task call sites.
func (a Actor) HasCompanyAccess(companyID string) bool {
	if a.IsMasterOrAdmin() {
		return true
	}
	if companyID == "" {
		return false
	}
	return a.CompanyID != "" && a.CompanyID == companyID
}

// HasStrictCompanyAccess is the user-management variant of HasCompanyAccess:
// only master bypasses the company check, admins stay scoped to their own
// company.
func (a Actor) HasStrictCompanyAccess(companyID string) bool {
	if a.IsMaster() {
		return true
	}
	if companyID == "" {
		return false
	}
	return a.CompanyID != "" && a.CompanyID == companyID
}

// Entities an operation can target.
type Entity string

const (
	EntityCompany    Entity = "company"
	EntityDepartment Entity = "department"
	EntityTask       Entity = "task"
	EntityUser       Entity = "user"
)

// Operations.
type Operation string

const (
	OpRead           Operation = "read"
	OpList           Operation = "list"
	OpCreate         Operation = "create"
	OpUpdate         Operation = "update"
	OpDelete         Operation = "delete"
	OpChangePassword Operation = "change-password"
)

// Ref identifies the target of a single-entity operation.
type Ref struct {
	Entity    Entity
	CompanyID string // owning company, where known
	UserID    string // target user, for EntityUser
	Role      string // requested role, for user create
}

// CheckAccess decides whether actor may perform op on the entity referenced
// by ref. It returns nil to allow, ErrForbidden to deny, or
// ErrCompanyRequired when a required scoping parameter is missing.
//
// The admin role is intentionally NOT granted one uniform rule: on
// company/department/task call sites it shares master's blanket company
// bypass, while user-management call sites keep it scoped to its own
// company. The table below replicates that per-operation split.
func CheckAccess(actor Actor, op Operation, ref Ref) error {
	if !actor.IsActive {
		return ErrForbidden
	}

	switch ref.Entity {
	case EntityCompany:
		return checkCompanyAccess(actor, op, ref)
	case EntityDepartment:
		return checkDepartmentAccess(actor, op, ref)
	case EntityTask:
		return checkTaskAccess(actor, op, ref)
	case EntityUser:
		return checkUserAccess(actor, op, ref)
	}
	return ErrForbidden
}

func checkCompanyAccess(actor Actor, op Operation, ref Ref) error {
	switch op {
	case OpList:
		// always allowed; CompanyListScope narrows the result instead
		return nil
	case OpRead:
		if actor.HasCompanyAccess(ref.CompanyID) {
			return nil
		}
	case OpCreate, OpUpdate, OpDelete:
		// note: update/delete are not additionally company-scoped for
		// admin, matching the blanket bypass on these call sites
		if actor.IsMasterOrAdmin() {
			return nil
		}
	}
	return ErrForbidden
}

func checkDepartmentAccess(actor Actor, op Operation, ref Ref) error {
	switch op {
	case OpList:
		// a company scope is mandatory; its absence is a bad request,
		// reported before any access decision
		if ref.CompanyID == "" {
			return ErrCompanyRequired
		}
		if actor.HasCompanyAccess(ref.CompanyID) {
			return nil
		}
	case OpRead, OpCreate, OpUpdate, OpDelete:
		if actor.HasCompanyAccess(ref.CompanyID) {
			return nil
		}
	}
	return ErrForbidden
}

func checkTaskAccess(actor Actor, op Operation, ref Ref) error {
	switch op {
	case OpList:
		// always allowed; TaskListScope narrows the result instead
		return nil
	case OpRead, OpCreate, OpUpdate:
		if actor.HasCompanyAccess(ref.CompanyID) {
			return nil
		}
	case OpDelete:
		// user-role actors may never delete tasks
		if actor.Role == RoleUser {
			return ErrForbidden
		}
		if actor.HasCompanyAccess(ref.CompanyID) {
			return nil
		}
	}
	return ErrForbidden
}

func checkUserAccess(actor Actor, op Operation, ref Ref) error {
	isSelf := ref.UserID != "" && ref.UserID == actor.ID

	switch op {
	case OpList:
		// always allowed; UserListScopeFor narrows the result instead
		return nil
	case OpRead:
		if actor.IsMasterOrAdmin() || isSelf {
			return nil
		}
	case OpCreate:
		if !actor.IsMasterOrAdmin() {
			return ErrForbidden
		}
		// only master creates master accounts
		if ref.Role == RoleMaster && !actor.IsMaster() {
			return ErrForbidden
		}
		// admin creates users within its own company only
		if !actor.IsMaster() && !actor.HasStrictCompanyAccess(ref.CompanyID) {
			return ErrForbidden
		}
		return nil
	case OpUpdate:
		if actor.IsMasterOrAdmin() || isSelf {
			return nil
		}
	case OpDelete:
		if isSelf {
			// never, regardless of role
			return ErrForbidden
		}
		if actor.IsMasterOrAdmin() {
			return nil
		}
	case OpChangePassword:
		if actor.IsMasterOrAdmin() || isSelf {
			return nil
		}
	}
	return ErrForbidden
}

// PasswordChangeRequiresCurrent reports whether the actor must supply the
// target's current password: yes when changing their own, not when an
// admin/master acts on somebody else.
func PasswordChangeRequiresCurrent(actor Actor, targetID string) bool {
	return targetID == actor.ID && !actor.IsMasterOrAdmin()
}
