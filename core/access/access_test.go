package access

import "testing"

var (
	master = Actor{ID: "m1", Role: RoleMaster, IsActive: true}
	admin  = Actor{ID: "a1", Role: RoleAdmin, CompanyID: "acme", IsActive: true}
	usr    = Actor{ID: "u1", Role: RoleUser, CompanyID: "acme", IsActive: true}
)

func TestHasCompanyAccess(t *testing.T) {
	tests := []struct {
		name      string
		actor     Actor
		companyID string
		want      bool
	}{
		{name: "master, any company", actor: master, companyID: "globex", want: true},
		{name: "master, empty company", actor: master, companyID: "", want: true},
		{name: "admin, own company", actor: admin, companyID: "acme", want: true},
		{name: "admin, other company (blanket bypass)", actor: admin, companyID: "globex", want: true},
		{name: "user, own company", actor: usr, companyID: "acme", want: true},
		{name: "user, other company", actor: usr, companyID: "globex", want: false},
		{name: "user, empty company", actor: usr, companyID: "", want: false},
		{name: "user without affiliation", actor: Actor{ID: "u2", Role: RoleUser, IsActive: true}, companyID: "acme", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.HasCompanyAccess(tt.companyID); got != tt.want {
				t.Errorf("HasCompanyAccess() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestHasStrictCompanyAccess(t *testing.T) {
	tests := []struct {
		name      string
		actor     Actor
		companyID string
		want      bool
	}{
		{name: "master bypasses", actor: master, companyID: "globex", want: true},
		{name: "admin, own company", actor: admin, companyID: "acme", want: true},
		{name: "admin, other company (no bypass)", actor: admin, companyID: "globex", want: false},
		{name: "admin, empty company", actor: admin, companyID: "", want: false},
		{name: "user, own company", actor: usr, companyID: "acme", want: true},
		{name: "user, other company", actor: usr, companyID: "globex", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.HasStrictCompanyAccess(tt.companyID); got != tt.want {
				t.Errorf("HasStrictCompanyAccess() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestCheckAccess(t *testing.T) {
	inactive := Actor{ID: "x1", Role: RoleMaster, IsActive: false}

	tests := []struct {
		name    string
		actor   Actor
		op      Operation
		ref     Ref
		wantErr error
	}{
		{name: "inactive actor denied everything", actor: inactive, op: OpList, ref: Ref{Entity: EntityTask}, wantErr: ErrForbidden},

		// companies
		{name: "company create by master", actor: master, op: OpCreate, ref: Ref{Entity: EntityCompany}},
		{name: "company create by admin", actor: admin, op: OpCreate, ref: Ref{Entity: EntityCompany}},
		{name: "company create by user", actor: usr, op: OpCreate, ref: Ref{Entity: EntityCompany}, wantErr: ErrForbidden},
		{name: "company update by user", actor: usr, op: OpUpdate, ref: Ref{Entity: EntityCompany, CompanyID: "acme"}, wantErr: ErrForbidden},
		{name: "company delete by admin (no scope check)", actor: admin, op: OpDelete, ref: Ref{Entity: EntityCompany, CompanyID: "globex"}},
		{name: "company read by user, own", actor: usr, op: OpRead, ref: Ref{Entity: EntityCompany, CompanyID: "acme"}},
		{name: "company read by user, other", actor: usr, op: OpRead, ref: Ref{Entity: EntityCompany, CompanyID: "globex"}, wantErr: ErrForbidden},

		// departments
		{name: "department list without company", actor: master, op: OpList, ref: Ref{Entity: EntityDepartment}, wantErr: ErrCompanyRequired},
		{name: "department list, user own company", actor: usr, op: OpList, ref: Ref{Entity: EntityDepartment, CompanyID: "acme"}},
		{name: "department list, user other company", actor: usr, op: OpList, ref: Ref{Entity: EntityDepartment, CompanyID: "globex"}, wantErr: ErrForbidden},
		{name: "department create by user, own company", actor: usr, op: OpCreate, ref: Ref{Entity: EntityDepartment, CompanyID: "acme"}},
		{name: "department delete by admin, other company (blanket bypass)", actor: admin, op: OpDelete, ref: Ref{Entity: EntityDepartment, CompanyID: "globex"}},

		// tasks
		{name: "task create by user, own company", actor: usr, op: OpCreate, ref: Ref{Entity: EntityTask, CompanyID: "acme"}},
		{name: "task create by user, other company", actor: usr, op: OpCreate, ref: Ref{Entity: EntityTask, CompanyID: "globex"}, wantErr: ErrForbidden},
		{name: "task update by user, own company", actor: usr, op: OpUpdate, ref: Ref{Entity: EntityTask, CompanyID: "acme"}},
		{name: "task delete by user always denied", actor: usr, op: OpDelete, ref: Ref{Entity: EntityTask, CompanyID: "acme"}, wantErr: ErrForbidden},
		{name: "task delete by admin", actor: admin, op: OpDelete, ref: Ref{Entity: EntityTask, CompanyID: "acme"}},
		{name: "task delete by master", actor: master, op: OpDelete, ref: Ref{Entity: EntityTask, CompanyID: "globex"}},

		// users
		{name: "user create master role by admin", actor: admin, op: OpCreate, ref: Ref{Entity: EntityUser, Role: RoleMaster, CompanyID: "acme"}, wantErr: ErrForbidden},
		{name: "user create master role by master", actor: master, op: OpCreate, ref: Ref{Entity: EntityUser, Role: RoleMaster}},
		{name: "user create by admin, own company", actor: admin, op: OpCreate, ref: Ref{Entity: EntityUser, Role: RoleUser, CompanyID: "acme"}},
		{name: "user create by admin, other company", actor: admin, op: OpCreate, ref: Ref{Entity: EntityUser, Role: RoleUser, CompanyID: "globex"}, wantErr: ErrForbidden},
		{name: "user create by user", actor: usr, op: OpCreate, ref: Ref{Entity: EntityUser, Role: RoleUser, CompanyID: "acme"}, wantErr: ErrForbidden},
		{name: "user update self", actor: usr, op: OpUpdate, ref: Ref{Entity: EntityUser, UserID: "u1"}},
		{name: "user update other by user", actor: usr, op: OpUpdate, ref: Ref{Entity: EntityUser, UserID: "u9"}, wantErr: ErrForbidden},
		{name: "user update other by admin", actor: admin, op: OpUpdate, ref: Ref{Entity: EntityUser, UserID: "u9"}},
		{name: "user self-delete by master", actor: master, op: OpDelete, ref: Ref{Entity: EntityUser, UserID: "m1"}, wantErr: ErrForbidden},
		{name: "user self-delete by admin", actor: admin, op: OpDelete, ref: Ref{Entity: EntityUser, UserID: "a1"}, wantErr: ErrForbidden},
		{name: "user self-delete by user", actor: usr, op: OpDelete, ref: Ref{Entity: EntityUser, UserID: "u1"}, wantErr: ErrForbidden},
		{name: "user delete other by user", actor: usr, op: OpDelete, ref: Ref{Entity: EntityUser, UserID: "u9"}, wantErr: ErrForbidden},
		{name: "user delete other by admin", actor: admin, op: OpDelete, ref: Ref{Entity: EntityUser, UserID: "u9"}},
		{name: "password change self", actor: usr, op: OpChangePassword, ref: Ref{Entity: EntityUser, UserID: "u1"}},
		{name: "password change other by user", actor: usr, op: OpChangePassword, ref: Ref{Entity: EntityUser, UserID: "u9"}, wantErr: ErrForbidden},
		{name: "password change other by master", actor: master, op: OpChangePassword, ref: Ref{Entity: EntityUser, UserID: "u9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckAccess(tt.actor, tt.op, tt.ref); err != tt.wantErr {
				t.Errorf("CheckAccess() = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordChangeRequiresCurrent(t *testing.T) {
	if !PasswordChangeRequiresCurrent(usr, "u1") {
		t.Error("user changing own password must supply current password")
	}
	if PasswordChangeRequiresCurrent(admin, "u9") {
		t.Error("admin changing another user's password must not require current password")
	}
	if PasswordChangeRequiresCurrent(master, "m1") {
		t.Error("master changing own password must not require current password")
	}
}

func TestTaskListScope(t *testing.T) {
	if got := TaskListScope(usr, "globex"); got != "acme" {
		t.Errorf("user scope forced to own company; got %q", got)
	}
	if got := TaskListScope(admin, "globex"); got != "globex" {
		t.Errorf("admin requested scope honored; got %q", got)
	}
	if got := TaskListScope(master, ""); got != "" {
		t.Errorf("master with no filter sees all; got %q", got)
	}
}

func TestUserListScopeFor(t *testing.T) {
	tests := []struct {
		name        string
		actor       Actor
		companyID   string
		role        string
		teamMembers bool
		want        UserListScope
	}{
		{
			name: "user forced to own company, master hidden", actor: usr,
			want: UserListScope{CompanyID: "acme", ExcludeMaster: true},
		},
		{
			name: "admin without filter scoped to own company", actor: admin,
			want: UserListScope{CompanyID: "acme"},
		},
		{
			name: "admin fetching team members hides master", actor: admin, teamMembers: true,
			want: UserListScope{CompanyID: "acme", ExcludeMaster: true},
		},
		{
			name: "admin requesting own company hides master", actor: admin, companyID: "acme",
			want: UserListScope{CompanyID: "acme", ExcludeMaster: true},
		},
		{
			name: "admin requesting other company gets no company scope", actor: admin, companyID: "globex",
			want: UserListScope{ExcludeMaster: true},
		},
		{
			name: "master with no filter sees all", actor: master,
			want: UserListScope{},
		},
		{
			name: "master with company filter prepends itself", actor: master, companyID: "acme",
			want: UserListScope{CompanyID: "acme", PrependMaster: true},
		},
		{
			name: "role filter honored for master only", actor: master, role: RoleAdmin,
			want: UserListScope{Role: RoleAdmin},
		},
		{
			name: "role filter ignored for admin", actor: admin, role: RoleAdmin, teamMembers: true,
			want: UserListScope{CompanyID: "acme", ExcludeMaster: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserListScopeFor(tt.actor, tt.companyID, tt.role, tt.teamMembers); got != tt.want {
				t.Errorf("UserListScopeFor() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestCanMutateTaskField(t *testing.T) {
	for _, field := range []string{"status", "comments"} {
		if !CanMutateTaskField(RoleUser, field) {
			t.Errorf("user role must be able to change %q", field)
		}
	}
	for _, field := range []string{"task_name", "assigned_to", "deadline"} {
		if CanMutateTaskField(RoleUser, field) {
			t.Errorf("user role must not be able to change %q", field)
		}
	}
	for _, role := range []string{RoleAdmin, RoleMaster} {
		for _, field := range []string{"task_name", "assigned_to", "deadline", "status", "comments"} {
			if !CanMutateTaskField(role, field) {
				t.Errorf("%s role must be able to change %q", role, field)
			}
		}
	}
}

func TestCanAssignRole(t *testing.T) {
	if !CanAssignRole(master, RoleMaster) {
		t.Error("master may assign master")
	}
	if CanAssignRole(admin, RoleMaster) {
		t.Error("admin may not assign master")
	}
	if !CanAssignRole(admin, RoleUser) {
		t.Error("admin may assign user")
	}
	if CanAssignRole(usr, RoleUser) {
		t.Error("user may not assign roles")
	}
}
