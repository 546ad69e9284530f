// Package inmemdb provides an in-memory document store used in tests and
// local development. Tables mimic the real store's per-document atomicity:
// each repository method takes a single table lock and nothing more.
package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/padmanabh275/ProjectMgt/core/company"
	"github.com/padmanabh275/ProjectMgt/core/department"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}
	companyTable struct {
		mutex sync.RWMutex
		table map[string]*company.Company
	}
	departmentTable struct {
		mutex sync.RWMutex
		table map[string]*department.Department
	}
	taskTable struct {
		mutex sync.RWMutex
		table map[string]*task.Task
	}

	DB struct {
		user       *userTable
		company    *companyTable
		department *departmentTable
		task       *taskTable
	}
)

func Open() *DB {
	return &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		company:    &companyTable{table: make(map[string]*company.Company)},
		department: &departmentTable{table: make(map[string]*department.Department)},
		task:       &taskTable{table: make(map[string]*task.Task)},
	}
}

// Reset drops all stored documents.
func (db *DB) Reset() {
	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.mutex.Unlock()

	db.company.mutex.Lock()
	db.company.table = make(map[string]*company.Company)
	db.company.mutex.Unlock()

	db.department.mutex.Lock()
	db.department.table = make(map[string]*department.Department)
	db.department.mutex.Unlock()

	db.task.mutex.Lock()
	db.task.table = make(map[string]*task.Task)
	db.task.mutex.Unlock()
}

func newID() string {
	return uuid.New().String()
}
