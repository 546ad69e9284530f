package user

import (
	"time"

	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/access"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		GetMasterUser() (User, error)
		// FilterUsers returns active users matching the filter, sorted by name.
		FilterUsers(filter QueryFilter) ([]User, error)
		// UpdateUser only saves set fields; nil isActive leaves the flag untouched.
		UpdateUser(usr User, isActive *bool) (User, error)
		DeleteUser(id string) error
	}

	ServiceInterface interface {
		CheckUniqueness(email string, exclUsers ...User) error
		Create(nu NewUser) (User, error)
		GetByID(id string) (User, error)
		GetByEmail(email string) (User, error)
		Query(scope access.UserListScope) ([]User, error)
		Update(id string, uu UpdateUser) (User, error)
		SetPassword(usr User, pwd string) (User, error)
		SetLastLogin(usr User) (User, error)
		Delete(id string) error
		EnsureMaster(name, email, pwd string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CompanyID: nu.CompanyID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(usr)
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

// Query lists users narrowed by an access.UserListScope. When the scope asks
// for it, the master account is prepended to the result if it matched no
// filter.
func (svc *Service) Query(scope access.UserListScope) ([]User, error) {
	users, err := svc.repo.FilterUsers(QueryFilter{
		CompanyID:     scope.CompanyID,
		Role:          scope.Role,
		ExcludeMaster: scope.ExcludeMaster,
	})
	if err != nil {
		return nil, err
	}

	if scope.PrependMaster {
		master, err := svc.repo.GetMasterUser()
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				return users, nil
			}
			return nil, err
		}
		for _, u := range users {
			if u.ID == master.ID {
				return users, nil
			}
		}
		users = append([]User{master}, users...)
	}
	return users, nil
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr := User{
		ID:        id,
		Name:      uu.Name,
		Role:      uu.Role,
		UpdatedAt: time.Now().UTC(),
	}
	if uu.CompanyID != nil {
		usr.CompanyID = *uu.CompanyID
	}
	return svc.repo.UpdateUser(usr, uu.IsActive)
}

func (svc *Service) SetPassword(usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(User{ID: usr.ID, PasswordHash: usr.PasswordHash, UpdatedAt: usr.UpdatedAt}, nil)
}

func (svc *Service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(User{ID: usr.ID, LastLogin: usr.LastLogin}, nil)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteUser(id)
}

// EnsureMaster guarantees the master account exists with the given
// credentials: it is created when absent, otherwise its name and password
// are reset.
func (svc *Service) EnsureMaster(name, email, pwd string) (User, error) {
	master, err := svc.repo.GetMasterUser()
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return User{}, err
		}
		return svc.Create(NewUser{
			Name:     name,
			Email:    core.CleanString(email, true /* lower */),
			Password: pwd,
			Role:     access.RoleMaster,
		})
	}

	if err = master.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	active := true
	return svc.repo.UpdateUser(User{
		ID:           master.ID,
		Name:         name,
		PasswordHash: master.PasswordHash,
		UpdatedAt:    time.Now().UTC(),
	}, &active)
}
