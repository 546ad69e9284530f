package department

import (
	"time"

	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core"
)

var (
	ErrNotFound   = errors.New("department not found")
	ErrNameExists = errors.New("department already exists in this company")
)

type (
	Repository interface {
		// CheckNameUniqueness enforces name uniqueness within a company.
		CheckNameUniqueness(companyID, name string, excludedDepartments ...Department) error
		CreateDepartment(dept Department) (Department, error)
		GetDepartmentByID(id string) (Department, error)
		// QueryDepartmentsByCompanyID returns a company's departments sorted by name.
		QueryDepartmentsByCompanyID(companyID string) ([]Department, error)
		// UpdateDepartment only saves set fields.
		UpdateDepartment(dept Department) (Department, error)
		DeleteDepartment(id string) error
		DeleteDepartmentsByCompanyID(companyID string) error
	}

	// TaskDeleter removes all tasks owned by a department.
	TaskDeleter interface {
		DeleteTasksByDepartmentID(departmentID string) error
	}

	ServiceInterface interface {
		CheckUniqueness(companyID, name string, exclDepartments ...Department) error
		Create(nd NewDepartment) (Department, error)
		GetByID(id string) (Department, error)
		QueryByCompany(companyID string) ([]Department, error)
		Update(id string, ud UpdateDepartment) (Department, error)
		Delete(id string) error
	}

	Service struct {
		repo  Repository
		tasks TaskDeleter
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, tasks TaskDeleter) *Service {
	return &Service{repo: repo, tasks: tasks}
}

func (svc *Service) CheckUniqueness(companyID, name string, exclDepartments ...Department) error {
	if err := svc.repo.CheckNameUniqueness(companyID, name, exclDepartments...); err != nil {
		if errors.Cause(err) == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nd NewDepartment) (Department, error) {
	now := time.Now().UTC()
	dept := Department{
		Name:      nd.Name,
		CompanyID: nd.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateDepartment(dept)
}

func (svc *Service) GetByID(id string) (Department, error) {
	return svc.repo.GetDepartmentByID(id)
}

func (svc *Service) QueryByCompany(companyID string) ([]Department, error) {
	return svc.repo.QueryDepartmentsByCompanyID(companyID)
}

func (svc *Service) Update(id string, ud UpdateDepartment) (Department, error) {
	dept := Department{
		ID:        id,
		Name:      ud.Name,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateDepartment(dept)
}

// Delete removes the department and cascades to its tasks. The two steps are
// separate writes with per-document atomicity only.
func (svc *Service) Delete(id string) error {
	if err := svc.tasks.DeleteTasksByDepartmentID(id); err != nil {
		return errors.Wrap(err, "deleting department tasks")
	}
	return svc.repo.DeleteDepartment(id)
}
