package company

import (
	"time"

	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core"
)

var (
	ErrNotFound   = errors.New("company not found")
	ErrNameExists = errors.New("a company with this name already exists")
)

type (
	Repository interface {
		// CheckNameUniqueness matches names case-insensitively.
		CheckNameUniqueness(name string, excludedCompanies ...Company) error
		CreateCompany(comp Company) (Company, error)
		GetCompanyByID(id string) (Company, error)
		// FilterCompanies returns companies matching the filter, most recent first.
		FilterCompanies(filter QueryFilter) ([]Company, error)
		// UpdateCompany only saves set fields; nil isActive leaves the flag untouched.
		UpdateCompany(comp Company, isActive *bool) (Company, error)
		DeleteCompany(id string) error
	}

	// DepartmentDeleter removes all departments owned by a company.
	DepartmentDeleter interface {
		DeleteDepartmentsByCompanyID(companyID string) error
	}

	// TaskDeleter removes all tasks owned by a company.
	TaskDeleter interface {
		DeleteTasksByCompanyID(companyID string) error
	}

	ServiceInterface interface {
		CheckUniqueness(name string, exclCompanies ...Company) error
		Create(nc NewCompany, createdBy string) (Company, error)
		GetByID(id string) (Company, error)
		Query(filter QueryFilter) ([]Company, error)
		Update(id string, uc UpdateCompany) (Company, error)
		Delete(id string) error
	}

	Service struct {
		repo  Repository
		depts DepartmentDeleter
		tasks TaskDeleter
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, depts DepartmentDeleter, tasks TaskDeleter) *Service {
	return &Service{repo: repo, depts: depts, tasks: tasks}
}

func (svc *Service) CheckUniqueness(name string, exclCompanies ...Company) error {
	if err := svc.repo.CheckNameUniqueness(name, exclCompanies...); err != nil {
		if errors.Cause(err) == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nc NewCompany, createdBy string) (Company, error) {
	now := time.Now().UTC()
	comp := Company{
		Name:      nc.Name,
		IsActive:  true,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCompany(comp)
}

func (svc *Service) GetByID(id string) (Company, error) {
	return svc.repo.GetCompanyByID(id)
}

func (svc *Service) Query(filter QueryFilter) ([]Company, error) {
	return svc.repo.FilterCompanies(filter)
}

func (svc *Service) Update(id string, uc UpdateCompany) (Company, error) {
	comp := Company{
		ID:        id,
		Name:      uc.Name,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateCompany(comp, uc.IsActive)
}

// Delete removes the company and cascades to its departments and tasks.
// The three steps are separate bulk writes with per-document atomicity only;
// an interrupt in between can leave orphaned records behind.
func (svc *Service) Delete(id string) error {
	if err := svc.tasks.DeleteTasksByCompanyID(id); err != nil {
		return errors.Wrap(err, "deleting company tasks")
	}
	if err := svc.depts.DeleteDepartmentsByCompanyID(id); err != nil {
		return errors.Wrap(err, "deleting company departments")
	}
	return svc.repo.DeleteCompany(id)
}
