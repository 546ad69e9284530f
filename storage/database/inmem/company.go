package inmemdb

import (
	"sort"
	"strings"

	"github.com/padmanabh275/ProjectMgt/core/company"
)

type companyRepository struct {
	db *companyTable
}

func NewCompanyRepository(db *DB) company.Repository {
	return &companyRepository{db: db.company}
}

var _ company.Repository = (*companyRepository)(nil)

func (repo *companyRepository) query() []company.Company {
	comps := make([]company.Company, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		comps = append(comps, *c)
	}
	return comps
}

func (repo *companyRepository) CheckNameUniqueness(name string, excludedCompanies ...company.Company) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, comp := range repo.query() {
		if !strings.EqualFold(comp.Name, name) {
			continue
		}
		if isExcludedCompany(comp, excludedCompanies) {
			continue
		}
		return company.ErrNameExists
	}
	return nil
}

func (repo *companyRepository) CreateCompany(comp company.Company) (company.Company, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	comp.ID = newID()
	repo.db.table[comp.ID] = &comp
	return comp, nil
}

func (repo *companyRepository) GetCompanyByID(id string) (company.Company, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if comp, ok := repo.db.table[id]; ok {
		return *comp, nil
	}
	return company.Company{}, company.ErrNotFound
}

func (repo *companyRepository) FilterCompanies(filter company.QueryFilter) ([]company.Company, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	comps := make([]company.Company, 0)
	for _, comp := range repo.query() {
		if filter.ID != "" && comp.ID != filter.ID {
			continue
		}
		if filter.IsActive != nil && comp.IsActive != *filter.IsActive {
			continue
		}
		comps = append(comps, comp)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i].CreatedAt.After(comps[j].CreatedAt) })
	return comps, nil
}

func (repo *companyRepository) UpdateCompany(comp company.Company, isActive *bool) (company.Company, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	origComp, ok := repo.db.table[comp.ID]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	if comp.Name != "" {
		origComp.Name = comp.Name
	}
	if isActive != nil {
		origComp.IsActive = *isActive
	}
	if !comp.UpdatedAt.IsZero() {
		origComp.UpdatedAt = comp.UpdatedAt
	}

	repo.db.table[comp.ID] = origComp
	return *origComp, nil
}

func (repo *companyRepository) DeleteCompany(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return company.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func isExcludedCompany(comp company.Company, excluded []company.Company) bool {
	for _, ex := range excluded {
		if ex.ID == comp.ID {
			return true
		}
	}
	return false
}
