package testutil

import (
	"testing"
	"time"

	"github.com/padmanabh275/ProjectMgt/core/company"
	"github.com/padmanabh275/ProjectMgt/core/department"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role, companyID string,
	isActive bool,
) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CompanyID: companyID,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCompany(t *testing.T, repo company.Repository, name, createdBy string, isActive bool) company.Company {
	t.Helper()
	tstamp := time.Now().UTC()
	comp, err := repo.CreateCompany(company.Company{
		Name:      name,
		IsActive:  isActive,
		CreatedBy: createdBy,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateCompany() failed: %v", err)
	}
	return comp
}

func CreateDepartment(t *testing.T, repo department.Repository, name, companyID string) department.Department {
	t.Helper()
	tstamp := time.Now().UTC()
	dept, err := repo.CreateDepartment(department.Department{
		Name:      name,
		CompanyID: companyID,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() failed: %v", err)
	}
	return dept
}

func CreateTask(
	t *testing.T,
	repo task.Repository,
	name, companyID, departmentID, status string,
	deadline time.Time,
) task.Task {
	t.Helper()
	tstamp := time.Now().UTC()
	tsk, err := repo.CreateTask(task.Task{
		TaskName:     name,
		AssignedTo:   task.DefaultAssignee,
		Deadline:     deadline,
		Status:       status,
		CompanyID:    companyID,
		DepartmentID: departmentID,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	})
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	return tsk
}
