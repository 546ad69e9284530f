package main

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/company"
	"github.com/padmanabh275/ProjectMgt/core/department"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
	emailsvc "github.com/padmanabh275/ProjectMgt/services/email"
	logsvc "github.com/padmanabh275/ProjectMgt/services/logger"
	inmemdb "github.com/padmanabh275/ProjectMgt/storage/database/inmem"
	testutil "github.com/padmanabh275/ProjectMgt/tests"
)

var (
	usrRepo  user.Repository
	compRepo company.Repository
	deptRepo department.Repository
	taskRepo task.Repository
)

func setup(t *testing.T) *commandLine {
	// set up DB & repos
	db := inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)
	compRepo = inmemdb.NewCompanyRepository(db)
	deptRepo = inmemdb.NewDepartmentRepository(db)
	taskRepo = inmemdb.NewTaskRepository(db)

	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags), core.Conf)
	logger.Enable(false)

	// start CLI
	return &commandLine{
		usrSvc:    user.NewService(usrRepo),
		reminders: task.NewReminderService(taskRepo, compRepo, usrRepo, emailsvc.NewConsoleServiceMock(), logger),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_createMaster(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"createmaster"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"createmaster", "-email", "root@test.cd"}, wantErr: errHelp},
		{name: "created", args: []string{"createmaster", "-email", "root@test.cd"}, extra: extra{pwd: "v3rry$ecret"}},
		{name: "existing master is reset", args: []string{"createmaster", "-name", "Root", "-email", "root@test.cd"}, extra: extra{pwd: "n3w$ecret"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				master, err := usrRepo.GetMasterUser()
				if err != nil {
					t.Fatalf("GetMasterUser() failed: %v", err)
				}
				if master.Role != access.RoleMaster || !master.IsActive {
					t.Errorf("master = %+v", master)
				}
				if pwd := tt.extra.(extra).pwd; master.CheckPassword(pwd) != nil {
					t.Error("password not set")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Awe", "awe@test.cd", "mdr123", access.RoleUser, "", true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", usr.Email}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "lmao42"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := usrRepo.GetUserByID(usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_sendReminders(t *testing.T) {
	cli := setup(t)

	acme := testutil.CreateCompany(t, compRepo, "Acme", "", true)
	dept := testutil.CreateDepartment(t, deptRepo, "Ops", acme.ID)
	testutil.CreateUser(t, usrRepo, "Eve", "eve@acme.cd", "", access.RoleAdmin, acme.ID, true)
	testutil.CreateTask(t, taskRepo, "Late", acme.ID, dept.ID, task.StatusNotStarted, time.Now().AddDate(0, 0, -1))

	emailsvc.SentMessages = nil
	if err := cli.run([]string{"admin", "sendreminders"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	if len(emailsvc.SentMessages) != 1 {
		t.Errorf("sent %d message(s); want 1", len(emailsvc.SentMessages))
	}
}
