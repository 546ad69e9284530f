package inmemdb

import (
	"sort"
	"strings"

	"github.com/padmanabh275/ProjectMgt/core/department"
)

type departmentRepository struct {
	db *departmentTable
}

func NewDepartmentRepository(db *DB) department.Repository {
	return &departmentRepository{db: db.department}
}

var _ department.Repository = (*departmentRepository)(nil)

func (repo *departmentRepository) query() []department.Department {
	depts := make([]department.Department, 0, len(repo.db.table))
	for _, d := range repo.db.table {
		depts = append(depts, *d)
	}
	return depts
}

func (repo *departmentRepository) CheckNameUniqueness(companyID, name string, excludedDepartments ...department.Department) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, dept := range repo.query() {
		if dept.CompanyID != companyID || !strings.EqualFold(dept.Name, name) {
			continue
		}
		if isExcludedDepartment(dept, excludedDepartments) {
			continue
		}
		return department.ErrNameExists
	}
	return nil
}

func (repo *departmentRepository) CreateDepartment(dept department.Department) (department.Department, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	dept.ID = newID()
	repo.db.table[dept.ID] = &dept
	return dept, nil
}

func (repo *departmentRepository) GetDepartmentByID(id string) (department.Department, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if dept, ok := repo.db.table[id]; ok {
		return *dept, nil
	}
	return department.Department{}, department.ErrNotFound
}

func (repo *departmentRepository) QueryDepartmentsByCompanyID(companyID string) ([]department.Department, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	depts := make([]department.Department, 0)
	for _, dept := range repo.query() {
		if dept.CompanyID == companyID {
			depts = append(depts, dept)
		}
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i].Name < depts[j].Name })
	return depts, nil
}

func (repo *departmentRepository) UpdateDepartment(dept department.Department) (department.Department, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	origDept, ok := repo.db.table[dept.ID]
	if !ok {
		return department.Department{}, department.ErrNotFound
	}
	if dept.Name != "" {
		origDept.Name = dept.Name
	}
	if !dept.UpdatedAt.IsZero() {
		origDept.UpdatedAt = dept.UpdatedAt
	}

	repo.db.table[dept.ID] = origDept
	return *origDept, nil
}

func (repo *departmentRepository) DeleteDepartment(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return department.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *departmentRepository) DeleteDepartmentsByCompanyID(companyID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, dept := range repo.db.table {
		if dept.CompanyID == companyID {
			delete(repo.db.table, id)
		}
	}
	return nil
}

func isExcludedDepartment(dept department.Department, excluded []department.Department) bool {
	for _, ex := range excluded {
		if ex.ID == dept.ID {
			return true
		}
	}
	return false
}
