package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
	testutil "github.com/padmanabh275/ProjectMgt/tests"
)

// A token outlives the account state it was issued with; the stored user is
// re-checked on every request, so deactivation or deletion locks the holder
// out right away instead of at token expiry.
func Test_api_staleToken(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	walle := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)
	eve := testutil.CreateUser(t, usrRepo, "Eve", "eve@acme.cd", "", access.RoleUser, acme.ID, true)
	ship := testutil.CreateTask(t, taskRepo, "Ship it", acme.ID, eng.ID, task.StatusNotStarted, time.Now())

	// both tokens issued while the accounts were still around
	walleToken := getToken(t, walle)
	eveToken := getToken(t, eve)

	inactive := false
	if _, err := usrRepo.UpdateUser(user.User{ID: walle.ID}, &inactive); err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}
	if err := usrRepo.DeleteUser(eve.ID); err != nil {
		t.Fatalf("DeleteUser() failed: %v", err)
	}

	deactivated := marchallObj(t, httpErr{Error: "account deactivated"})
	tests := []httpTest{
		{
			name: "deactivated account cannot read", method: http.MethodGet, path: "/v1/tasks/" + ship.ID,
			token: walleToken, wantCode: http.StatusForbidden, wantData: deactivated,
		},
		{
			name: "deactivated account cannot write", method: http.MethodPut, path: "/v1/tasks/" + ship.ID,
			body:  marchallObj(t, task.UpdateTask{Status: task.StatusCompleted}),
			token: walleToken, wantCode: http.StatusForbidden, wantData: deactivated,
		},
		{
			name: "deactivated account cannot list", method: http.MethodGet, path: "/v1/tasks",
			token: walleToken, wantCode: http.StatusForbidden, wantData: deactivated,
		},
		{
			name: "deleted account is unauthenticated", method: http.MethodGet, path: "/v1/tasks",
			token: eveToken, wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	refreshed, err := taskRepo.GetTaskByID(ship.ID)
	if err != nil {
		t.Fatalf("GetTaskByID() failed: %v", err)
	}
	if refreshed.Status != task.StatusNotStarted {
		t.Errorf("task changed through a deactivated account; task = %+v", refreshed)
	}
}
