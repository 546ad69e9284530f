package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core"
	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

var errWrongPassword = echo.NewHTTPError(http.StatusUnauthorized, "current password is incorrect")

type userApi struct {
	svc user.ServiceInterface
}

func registerUserAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc user.ServiceInterface) {
	api := userApi{svc: svc}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)

	// authed endpoints
	ag := ug.Group("", auth...)
	ag.POST("/token-refresh", api.refreshToken)
	ag.GET("/me", api.me)
	ag.GET("", api.query)
	ag.POST("", api.create, masterOrAdminMiddleware())

	// detail endpoints
	dg := ag.Group("/:id")
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy, masterOrAdminMiddleware())
	dg.PUT("/password", api.changePassword)
}

// Handlers

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := authenticate(data.Email, data.Password, api.svc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *userApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	scope := access.UserListScopeFor(
		actor,
		ctx.QueryParam("company_id"),
		ctx.QueryParam("role"),
		ctx.QueryParam("team_members") == "true",
	)
	users, err := api.svc.Query(scope)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityUser, CompanyID: data.CompanyID, Role: data.Role}
	if err := access.CheckAccess(actor, access.OpCreate, ref); err != nil {
		return err
	}
	if data.CompanyID == "" {
		data.CompanyID = actor.CompanyID
	}

	usr, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	id := ctx.Param("id")
	if err := access.CheckAccess(actor, access.OpUpdate, access.Ref{Entity: access.EntityUser, UserID: id}); err != nil {
		return err
	}

	// drop fields the actor may not touch; a self-update only ever
	// changes the name
	if !actor.IsMasterOrAdmin() {
		data.Role = ""
		data.CompanyID = nil
		data.IsActive = nil
	}
	if data.Role != "" && !access.CanAssignRole(actor, data.Role) {
		data.Role = ""
	}
	if data.CompanyID != nil && !access.CanReassignCompany(actor) {
		data.CompanyID = nil
	}

	usr, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	id := ctx.Param("id")
	if err := access.CheckAccess(actor, access.OpDelete, access.Ref{Entity: access.EntityUser, UserID: id}); err != nil {
		return err
	}

	if _, err := api.svc.GetByID(id); err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	if err := api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) changePassword(ctx echo.Context) error {
	var data user.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	id := ctx.Param("id")
	if err := access.CheckAccess(actor, access.OpChangePassword, access.Ref{Entity: access.EntityUser, UserID: id}); err != nil {
		return err
	}

	usr, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}

	if access.PasswordChangeRequiresCurrent(actor, id) {
		if data.CurrentPassword == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "current_password", Error: "current password is required"})
		}
		if err := usr.CheckPassword(data.CurrentPassword); err != nil {
			return errWrongPassword
		}
	}

	if _, err := api.svc.SetPassword(usr, data.NewPassword); err != nil {
		return errors.Wrap(err, "setting password")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Password updated successfully."})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
