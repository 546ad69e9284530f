package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/department"
)

type departmentApi struct {
	svc department.ServiceInterface
}

func registerDepartmentAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc department.ServiceInterface) {
	api := departmentApi{svc: svc}

	dg := g.Group("/departments", auth...)
	dg.GET("", api.query)
	dg.POST("", api.create)
	dg.PUT("/:id", api.update)
	dg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *departmentApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	// a missing company scope is a bad request, reported before any
	// access decision
	companyID := ctx.QueryParam("company_id")
	ref := access.Ref{Entity: access.EntityDepartment, CompanyID: companyID}
	if err := access.CheckAccess(actor, access.OpList, ref); err != nil {
		return err
	}

	depts, err := api.svc.QueryByCompany(companyID)
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	if depts == nil {
		depts = []department.Department{}
	}
	return ctx.JSON(http.StatusOK, depts)
}

func (api *departmentApi) create(ctx echo.Context) error {
	var data department.NewDepartment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDepartment")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityDepartment, CompanyID: data.CompanyID}
	if err := access.CheckAccess(actor, access.OpCreate, ref); err != nil {
		return err
	}

	if err := data.Validate(api.svc); err != nil {
		return err
	}
	dept, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating department")
	}
	return ctx.JSON(http.StatusCreated, dept)
}

func (api *departmentApi) update(ctx echo.Context) error {
	dept, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding department by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityDepartment, CompanyID: dept.CompanyID}
	if err := access.CheckAccess(actor, access.OpUpdate, ref); err != nil {
		return err
	}

	var data department.UpdateDepartment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateDepartment")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Name != "" {
		if err := api.svc.CheckUniqueness(dept.CompanyID, data.Name, dept); err != nil {
			return err
		}
	}

	dept, err = api.svc.Update(dept.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating department")
	}
	return ctx.JSON(http.StatusOK, dept)
}

func (api *departmentApi) destroy(ctx echo.Context) error {
	dept, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding department by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityDepartment, CompanyID: dept.CompanyID}
	if err := access.CheckAccess(actor, access.OpDelete, ref); err != nil {
		return err
	}

	if err := api.svc.Delete(dept.ID); err != nil {
		return errors.Wrap(err, "deleting department")
	}
	return ctx.NoContent(http.StatusNoContent)
}
