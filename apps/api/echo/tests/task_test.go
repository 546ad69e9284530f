package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/task"
	testutil "github.com/padmanabh275/ProjectMgt/tests"
)

func Test_taskApi_query(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	globex := testutil.CreateCompany(t, compRepo, "Globex", "", true)

	master := testutil.CreateUser(t, usrRepo, "Archi", "archi@test.cd", "", access.RoleMaster, "", true)
	usr := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)

	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	sales := testutil.CreateDepartment(t, deptRepo, "Sales", globex.ID)

	now := time.Now()
	ship := testutil.CreateTask(t, taskRepo, "Ship it", acme.ID, eng.ID, task.StatusInProgress, now)
	test := testutil.CreateTask(t, taskRepo, "Test it", acme.ID, eng.ID, task.StatusCompleted, now.AddDate(0, 0, 1))
	sell := testutil.CreateTask(t, taskRepo, "Sell it", globex.ID, sales.ID, task.StatusNotStarted, now.AddDate(0, 0, 2))

	tests := []httpTest{
		{name: "Auth required", path: "/v1/tasks", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "master sees all", path: "/v1/tasks", token: getToken(t, master),
			wantData: marchallList(t, ship, test, sell),
		},
		{
			name: "master filters by company", path: "/v1/tasks?company_id=" + globex.ID, token: getToken(t, master),
			wantData: marchallList(t, sell),
		},
		{
			name: "master filters by status", path: "/v1/tasks?status=Completed", token: getToken(t, master),
			wantData: marchallList(t, test),
		},
		{
			name: "master filters by department", path: "/v1/tasks?department_id=" + sales.ID, token: getToken(t, master),
			wantData: marchallList(t, sell),
		},
		{
			name: "assignee filter matches substrings", path: "/v1/tasks?assigned_to=unass", token: getToken(t, master),
			wantData: marchallList(t, ship, test, sell),
		},
		{
			name: "user scope beats the requested company", path: "/v1/tasks?company_id=" + globex.ID, token: getToken(t, usr),
			wantData: marchallList(t, ship, test),
		},
		{
			name: "user sees own company", path: "/v1/tasks", token: getToken(t, usr),
			wantData: marchallList(t, ship, test),
		},
		{
			name: "malformed filter payload is a bad request", path: "/v1/tasks", token: getToken(t, master),
			body: []byte("lol"), wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_taskApi_dashboard(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	usr := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)

	now := time.Now()
	testutil.CreateTask(t, taskRepo, "Late", acme.ID, eng.ID, task.StatusInProgress, now.AddDate(0, 0, -2))
	testutil.CreateTask(t, taskRepo, "Today", acme.ID, eng.ID, task.StatusNotStarted, now)
	testutil.CreateTask(t, taskRepo, "Soon", acme.ID, eng.ID, task.StatusNotStarted, now.AddDate(0, 0, 3))
	testutil.CreateTask(t, taskRepo, "Far out", acme.ID, eng.ID, task.StatusNotStarted, now.AddDate(0, 0, task.UpcomingWindowDays+5))
	for i := 0; i < 25; i++ {
		testutil.CreateTask(t, taskRepo, "Done", acme.ID, eng.ID, task.StatusCompleted, now)
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/tasks/dashboard", getToken(t, usr))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var b task.Buckets
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if len(b.Overdue) != 1 || b.Overdue[0].TaskName != "Late" {
		t.Errorf("overdue = %+v", b.Overdue)
	}
	if len(b.DueToday) != 1 || b.DueToday[0].TaskName != "Today" {
		t.Errorf("due today = %+v", b.DueToday)
	}
	if len(b.Upcoming) != 1 || b.Upcoming[0].TaskName != "Soon" {
		t.Errorf("upcoming = %+v", b.Upcoming)
	}
	if len(b.Completed) != 20 {
		t.Errorf("completed not capped; got %d", len(b.Completed))
	}
}

func Test_taskApi_mine(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	globex := testutil.CreateCompany(t, compRepo, "Globex", "", true)
	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	sales := testutil.CreateDepartment(t, deptRepo, "Sales", globex.ID)
	usr := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)

	now := time.Now()
	mine := testutil.CreateTask(t, taskRepo, "Ship it", acme.ID, eng.ID, task.StatusNotStarted, now)
	// the assignee match ignores case
	shouting := strings.ToUpper(usr.Name)
	mineTask, err := taskRepo.UpdateTask(mine.ID, task.Changes{AssignedTo: &shouting, UpdatedAt: now.UTC()})
	if err != nil {
		t.Fatalf("UpdateTask() failed: %v", err)
	}
	testutil.CreateTask(t, taskRepo, "Not mine", acme.ID, eng.ID, task.StatusNotStarted, now)

	// a teammate whose name merely contains the caller's must not leak in
	junior := usr.Name + " Jr"
	almost := testutil.CreateTask(t, taskRepo, "Ship it too", acme.ID, eng.ID, task.StatusNotStarted, now)
	if _, err := taskRepo.UpdateTask(almost.ID, task.Changes{AssignedTo: &junior, UpdatedAt: now.UTC()}); err != nil {
		t.Fatalf("UpdateTask() failed: %v", err)
	}

	// same assignee name in another company stays invisible
	other := testutil.CreateTask(t, taskRepo, "Sell it", globex.ID, sales.ID, task.StatusNotStarted, now)
	if _, err := taskRepo.UpdateTask(other.ID, task.Changes{AssignedTo: &usr.Name, UpdatedAt: now.UTC()}); err != nil {
		t.Fatalf("UpdateTask() failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/tasks/mine", getToken(t, usr))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var b task.Buckets
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if len(b.DueToday) != 1 || b.DueToday[0].ID != mineTask.ID {
		t.Errorf("due today = %+v", b.DueToday)
	}
	if len(b.Overdue)+len(b.Upcoming)+len(b.Completed) != 0 {
		t.Errorf("unexpected buckets: %+v", b)
	}
}

func Test_taskApi_create(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	globex := testutil.CreateCompany(t, compRepo, "Globex", "", true)
	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	sales := testutil.CreateDepartment(t, deptRepo, "Sales", globex.ID)

	admin := testutil.CreateUser(t, usrRepo, "Eve", "eve@acme.cd", "", access.RoleAdmin, acme.ID, true)
	usr := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)

	deadline := time.Now().AddDate(0, 0, 5).UTC()
	newTask := func(name, companyID, departmentID, status string) []byte {
		return marchallObj(t, task.NewTask{
			TaskName:     name,
			Deadline:     deadline,
			Status:       status,
			CompanyID:    companyID,
			DepartmentID: departmentID,
		})
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: getToken(t, admin), wantCode: http.StatusBadRequest,
			body: marchallObj(t, task.NewTask{}),
			wantData: marchallObj(t, map[string]string{
				"task_name": "this field is required", "deadline": "this field is required",
				"company_id": "this field is required", "department_id": "this field is required",
			}),
		},
		{
			name: "invalid status", token: getToken(t, admin), wantCode: http.StatusBadRequest,
			body:     newTask("Ship it", acme.ID, eng.ID, "Paused"),
			wantData: marchallObj(t, map[string]string{"status": "invalid status"}),
		},
		{
			name: "user cannot create in another company", token: getToken(t, usr), wantCode: http.StatusForbidden,
			body: newTask("Sell it", globex.ID, sales.ID, ""), wantData: marchallObj(t, errForbidden),
		},
		{
			name: "department must belong to the company", token: getToken(t, admin), wantCode: http.StatusBadRequest,
			body:     newTask("Ship it", acme.ID, sales.ID, ""),
			wantData: marchallObj(t, map[string]string{"department_id": "department does not belong to this company"}),
		},
		{
			name: "unknown department", token: getToken(t, admin), wantCode: http.StatusNotFound,
			body: newTask("Ship it", acme.ID, "lol", ""),
		},
		{
			name: "created with defaults", token: getToken(t, usr), wantCode: http.StatusCreated,
			body: newTask("Ship it", acme.ID, eng.ID, ""),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/tasks"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
				}
				var respData task.Task
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal() failed! err %v", err)
				}
				if respData.Status != task.StatusNotStarted || respData.AssignedTo != task.DefaultAssignee {
					t.Errorf("defaults not applied; task = %+v", respData)
				}
				if respData.CreatedBy != usr.ID {
					t.Errorf("created_by = %q; want %q", respData.CreatedBy, usr.ID)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_taskApi_update(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	globex := testutil.CreateCompany(t, compRepo, "Globex", "", true)
	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	sales := testutil.CreateDepartment(t, deptRepo, "Sales", globex.ID)

	admin := testutil.CreateUser(t, usrRepo, "Eve", "eve@acme.cd", "", access.RoleAdmin, acme.ID, true)
	usr := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)

	now := time.Now()
	ship := testutil.CreateTask(t, taskRepo, "Ship it", acme.ID, eng.ID, task.StatusNotStarted, now)
	sell := testutil.CreateTask(t, taskRepo, "Sell it", globex.ID, sales.ID, task.StatusNotStarted, now)

	t.Run("unknown task is a 404", func(t *testing.T) {
		body := marchallObj(t, task.UpdateTask{Status: task.StatusCompleted})
		req, rec := newAuthRequest(http.MethodPut, "/v1/tasks/lol", getToken(t, admin), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("user cannot touch another company's task", func(t *testing.T) {
		body := marchallObj(t, task.UpdateTask{Status: task.StatusCompleted})
		req, rec := newAuthRequest(http.MethodPut, "/v1/tasks/"+sell.ID, getToken(t, usr), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("user updates status and comments only", func(t *testing.T) {
		comments := "halfway there"
		body := marchallObj(t, task.UpdateTask{
			TaskName: "Renamed",
			Status:   task.StatusInProgress,
			Comments: &comments,
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/tasks/"+ship.ID, getToken(t, usr), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		refreshed, err := taskRepo.GetTaskByID(ship.ID)
		if err != nil {
			t.Fatalf("GetTaskByID() failed: %v", err)
		}
		if refreshed.Status != task.StatusInProgress || refreshed.Comments != comments {
			t.Errorf("allowed fields not updated; task = %+v", refreshed)
		}
		if refreshed.TaskName != "Ship it" {
			t.Error("task_name leaked through a user-role update")
		}
	})

	t.Run("admin updates everything", func(t *testing.T) {
		assignee := "Walle"
		deadline := now.AddDate(0, 0, 10).UTC()
		body := marchallObj(t, task.UpdateTask{
			TaskName:   "Ship it v2",
			AssignedTo: &assignee,
			Deadline:   deadline,
			Status:     task.StatusDelayed,
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/tasks/"+ship.ID, getToken(t, admin), body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		refreshed, err := taskRepo.GetTaskByID(ship.ID)
		if err != nil {
			t.Fatalf("GetTaskByID() failed: %v", err)
		}
		if refreshed.TaskName != "Ship it v2" || refreshed.AssignedTo != assignee || refreshed.Status != task.StatusDelayed {
			t.Errorf("fields not updated; task = %+v", refreshed)
		}
		if !refreshed.Deadline.Equal(deadline) {
			t.Errorf("deadline = %v; want %v", refreshed.Deadline, deadline)
		}
	})
}

func Test_taskApi_destroy(t *testing.T) {
	db.Reset()

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	eng := testutil.CreateDepartment(t, deptRepo, "Engineering", acme.ID)
	admin := testutil.CreateUser(t, usrRepo, "Eve", "eve@acme.cd", "", access.RoleAdmin, acme.ID, true)
	usr := testutil.CreateUser(t, usrRepo, "Walle", "walle@acme.cd", "", access.RoleUser, acme.ID, true)

	ship := testutil.CreateTask(t, taskRepo, "Ship it", acme.ID, eng.ID, task.StatusNotStarted, time.Now())

	tests := []httpTest{
		{name: "unknown task", path: "/v1/tasks/lol", token: getToken(t, admin), wantCode: http.StatusNotFound},
		{
			name: "user role may never delete", path: "/v1/tasks/" + ship.ID, token: getToken(t, usr),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "deleted", path: "/v1/tasks/" + ship.ID, token: getToken(t, admin), wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		tt.method = http.MethodDelete

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				if _, err := taskRepo.GetTaskByID(ship.ID); err != task.ErrNotFound {
					t.Error("task still exists")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
