package department

import (
	"time"

	"github.com/padmanabh275/ProjectMgt/core"
)

type Department struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CompanyID string    `json:"company_id" bson:"company_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// NewDepartment contains information needed to create a new Department.
type NewDepartment struct {
	Name      string `json:"name" validate:"required"`
	CompanyID string `json:"company_id" validate:"required"`
}

func (nd *NewDepartment) Validate(svc ServiceInterface) error {
	nd.Name = core.CleanString(nd.Name)
	if err := core.Validate.Struct(nd); err != nil {
		return err
	}
	return svc.CheckUniqueness(nd.CompanyID, nd.Name)
}

// UpdateDepartment defines what may be modified on an existing Department.
type UpdateDepartment struct {
	Name string `json:"name"`
}

func (ud *UpdateDepartment) Validate() error {
	ud.Name = core.CleanString(ud.Name)
	return nil
}
