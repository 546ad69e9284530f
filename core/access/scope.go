package access

// Listing scopes. Each helper computes the filter a listing query must be
// narrowed with so an actor only ever sees entities it is allowed to see.
// A user-role actor's scope is forced to its own company regardless of any
// requested filter; admin and master get the requested filter as-is.

// CompanyListScope returns the company ID a company listing must be
// restricted to, or "" for no restriction.
func CompanyListScope(actor Actor) string {
	if actor.Role == RoleUser && actor.CompanyID != "" {
		return actor.CompanyID
	}
	return ""
}

// TaskListScope returns the company ID a task listing must be restricted
// to, or "" for no restriction. A requested filter is honored for
// admin/master only.
func TaskListScope(actor Actor, requestedCompanyID string) string {
	if actor.Role == RoleUser && actor.CompanyID != "" {
		return actor.CompanyID
	}
	return requestedCompanyID
}

// UserListScope is the filter a user listing must be narrowed with.
type UserListScope struct {
	CompanyID     string // restrict to this company; "" for none
	Role          string // restrict to this role; "" for none
	ExcludeMaster bool   // never surface the master account
	// PrependMaster asks the caller to include the master account at the
	// head of the list when it matched no filter; only ever set for a
	// master requester fetching team members.
	PrependMaster bool
}

// UserListScopeFor computes the user listing scope for an actor.
// requestedCompanyID and requestedRole come from the query string;
// teamMembers marks a "fetch assignable team members" listing.
//
// The master account is never exposed to user- or admin-role viewers, even
// when it matches the other filters. An admin requesting a company other
// than its own ends up with no company restriction at all; that oddity is
// kept as observed rather than tightened.
func UserListScopeFor(actor Actor, requestedCompanyID, requestedRole string, teamMembers bool) UserListScope {
	var scope UserListScope

	switch actor.Role {
	case RoleUser:
		if actor.CompanyID != "" {
			scope.CompanyID = actor.CompanyID
			scope.ExcludeMaster = true
		}
	case RoleAdmin:
		if requestedCompanyID != "" && actor.CompanyID == requestedCompanyID {
			scope.CompanyID = requestedCompanyID
		} else if requestedCompanyID == "" && actor.CompanyID != "" {
			scope.CompanyID = actor.CompanyID
		}
		if teamMembers || requestedCompanyID != "" {
			scope.ExcludeMaster = true
		}
	case RoleMaster:
		scope.CompanyID = requestedCompanyID
		if teamMembers || requestedCompanyID != "" {
			scope.PrependMaster = true
		}
	}

	// an explicit role filter is only honored for master, and only when
	// the scope has not already constrained roles
	if requestedRole != "" && actor.IsMaster() && !scope.ExcludeMaster {
		scope.Role = requestedRole
	}
	return scope
}

// Mutation field allow-lists. Modeled as data rather than branching so
// adding a role or field is a table change.

var adminTaskFields = fieldSet("task_name", "assigned_to", "deadline", "status", "comments")

// taskMutableFields maps a role to the set of task fields it may change.
var taskMutableFields = map[string]map[string]bool{
	RoleUser:   fieldSet("status", "comments"),
	RoleAdmin:  adminTaskFields,
	RoleMaster: adminTaskFields,
}

// CanMutateTaskField reports whether the role may change the named task
// field. Call sites drop disallowed fields silently instead of rejecting
// the whole request.
func CanMutateTaskField(role, field string) bool {
	return taskMutableFields[role][field]
}

// CanAssignRole reports whether the actor may hand out the given role when
// creating or updating a user. Only master assigns master.
func CanAssignRole(actor Actor, role string) bool {
	switch actor.Role {
	case RoleMaster:
		return true
	case RoleAdmin:
		return role != RoleMaster
	}
	return false
}

// CanReassignCompany reports whether the actor may move a user to another
// company.
func CanReassignCompany(actor Actor) bool {
	return actor.IsMaster()
}

func fieldSet(fields ...string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
