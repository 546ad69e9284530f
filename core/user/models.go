package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/access"
)

type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Role         string    `json:"role" bson:"role"`
	CompanyID    string    `json:"company_id,omitempty" bson:"company_id,omitempty"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	PasswordHash []byte    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login" bson:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) IsMaster() bool { return u.Role == access.RoleMaster }
func (u User) IsAdmin() bool  { return u.Role == access.RoleAdmin }

// Actor maps the user onto the identity the access rules operate on.
func (u User) Actor() access.Actor {
	return access.Actor{
		ID:        u.ID,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		IsActive:  u.IsActive,
	}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"omitempty,userrole"`
	CompanyID string `json:"company_id" validate:"omitempty"`
}

func (nu *NewUser) Validate(svc ServiceInterface) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	if nu.Role == "" {
		nu.Role = access.RoleUser
	}

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Empty/nil fields are left untouched.
type UpdateUser struct {
	Name      string  `json:"name"`
	Role      string  `json:"role" validate:"omitempty,userrole"`
	CompanyID *string `json:"company_id"`
	IsActive  *bool   `json:"is_active"`
}

func (uu *UpdateUser) Validate() error {
	uu.Name = core.CleanString(uu.Name)
	return core.Validate.Struct(uu)
}

// ChangePassword carries a password change request.
// CurrentPassword is only required when users change their own password.
type ChangePassword struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (cp ChangePassword) Validate() error { return core.Validate.Struct(cp) }

// QueryFilter narrows a user listing; fields AND together.
type QueryFilter struct {
	CompanyID     string
	Role          string
	ExcludeMaster bool
}
