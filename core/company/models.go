package company

import (
	"time"

	"github.com/padmanabh275/ProjectMgt/core"
)

type Company struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedBy string    `json:"created_by" bson:"created_by"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// NewCompany contains information needed to create a new Company.
type NewCompany struct {
	Name string `json:"name" validate:"required"`
}

func (nc *NewCompany) Validate(svc ServiceInterface) error {
	nc.Name = core.CleanString(nc.Name)
	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckUniqueness(nc.Name)
}

// UpdateCompany defines what may be modified on an existing Company.
type UpdateCompany struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

func (uc *UpdateCompany) Validate() error {
	uc.Name = core.CleanString(uc.Name)
	return nil
}

// QueryFilter narrows a company listing; fields AND together.
type QueryFilter struct {
	ID       string
	IsActive *bool
}
