package task

import (
	"time"

	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/department"
)

var (
	ErrNotFound = errors.New("task not found")

	errDeptMismatch = "department does not belong to this company"
)

type (
	// Changes holds a partial update; zero/nil fields are left untouched.
	Changes struct {
		TaskName   string
		AssignedTo *string
		Deadline   time.Time
		Status     string
		Comments   *string
		UpdatedAt  time.Time
	}

	Repository interface {
		CreateTask(t Task) (Task, error)
		GetTaskByID(id string) (Task, error)
		// FilterTasks returns tasks matching the filter, sorted by deadline ascending.
		FilterTasks(filter QueryFilter) ([]Task, error)
		UpdateTask(id string, ch Changes) (Task, error)
		DeleteTask(id string) error
		DeleteTasksByCompanyID(companyID string) error
		DeleteTasksByDepartmentID(departmentID string) error
	}

	// DepartmentGetter is the slice of the department store needed to
	// validate task placement.
	DepartmentGetter interface {
		GetDepartmentByID(id string) (department.Department, error)
	}

	ServiceInterface interface {
		Create(nt NewTask, createdBy string) (Task, error)
		GetByID(id string) (Task, error)
		Query(filter QueryFilter) ([]Task, error)
		Update(id string, ut UpdateTask, role string) (Task, error)
		Delete(id string) error
	}

	Service struct {
		repo  Repository
		depts DepartmentGetter
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, depts DepartmentGetter) *Service {
	return &Service{repo: repo, depts: depts}
}

// Create stores a new task after verifying that the target department
// actually belongs to the supplied company; a mismatch is a validation
// failure, not an access one.
func (svc *Service) Create(nt NewTask, createdBy string) (Task, error) {
	dept, err := svc.depts.GetDepartmentByID(nt.DepartmentID)
	if err != nil {
		return Task{}, err
	}
	if dept.CompanyID != nt.CompanyID {
		return Task{}, core.NewValidationError(nil, core.FieldError{Field: "department_id", Error: errDeptMismatch})
	}

	now := time.Now().UTC()
	t := Task{
		TaskName:     nt.TaskName,
		AssignedTo:   nt.AssignedTo,
		Deadline:     nt.Deadline,
		Status:       nt.Status,
		CompanyID:    nt.CompanyID,
		DepartmentID: nt.DepartmentID,
		CreatedBy:    createdBy,
		Comments:     nt.Comments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreateTask(t)
}

func (svc *Service) GetByID(id string) (Task, error) {
	return svc.repo.GetTaskByID(id)
}

func (svc *Service) Query(filter QueryFilter) ([]Task, error) {
	return svc.repo.FilterTasks(filter)
}

// Update applies the role's field allow-list to the requested changes:
// fields the role may not touch are dropped silently, the rest persist.
func (svc *Service) Update(id string, ut UpdateTask, role string) (Task, error) {
	ch := Changes{UpdatedAt: time.Now().UTC()}
	if ut.TaskName != "" && access.CanMutateTaskField(role, "task_name") {
		ch.TaskName = ut.TaskName
	}
	if ut.AssignedTo != nil && access.CanMutateTaskField(role, "assigned_to") {
		ch.AssignedTo = ut.AssignedTo
	}
	if !ut.Deadline.IsZero() && access.CanMutateTaskField(role, "deadline") {
		ch.Deadline = ut.Deadline
	}
	if ut.Status != "" && access.CanMutateTaskField(role, "status") {
		ch.Status = ut.Status
	}
	if ut.Comments != nil && access.CanMutateTaskField(role, "comments") {
		ch.Comments = ut.Comments
	}
	return svc.repo.UpdateTask(id, ch)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteTask(id)
}
