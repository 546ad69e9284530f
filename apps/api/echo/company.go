package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/company"
	"github.com/padmanabh275/ProjectMgt/core/task"
)

type companyApi struct {
	svc     company.ServiceInterface
	taskSvc task.ServiceInterface
}

func registerCompanyAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc company.ServiceInterface, taskSvc task.ServiceInterface) {
	api := companyApi{svc: svc, taskSvc: taskSvc}

	cg := g.Group("/companies", auth...)
	cg.GET("", api.query)
	cg.POST("", api.create, masterOrAdminMiddleware())

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/stats", api.stats)
	dg.PUT("", api.update, masterOrAdminMiddleware())
	dg.DELETE("", api.destroy, masterOrAdminMiddleware())
}

// Handlers

func (api *companyApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	active := true
	filter := company.QueryFilter{
		ID:       access.CompanyListScope(actor),
		IsActive: &active,
	}
	comps, err := api.svc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying companies")
	}
	if comps == nil {
		comps = []company.Company{}
	}
	return ctx.JSON(http.StatusOK, comps)
}

func (api *companyApi) retrieve(ctx echo.Context) error {
	comp, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding company by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityCompany, CompanyID: comp.ID}
	if err := access.CheckAccess(actor, access.OpRead, ref); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, comp)
}

// stats reports a company's task counts bucketed by deadline proximity.
func (api *companyApi) stats(ctx echo.Context) error {
	comp, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding company by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityCompany, CompanyID: comp.ID}
	if err := access.CheckAccess(actor, access.OpRead, ref); err != nil {
		return err
	}

	tasks, err := api.taskSvc.Query(task.QueryFilter{CompanyID: comp.ID})
	if err != nil {
		return errors.Wrap(err, "querying company tasks")
	}
	return ctx.JSON(http.StatusOK, task.ComputeStats(tasks, time.Now()))
}

func (api *companyApi) create(ctx echo.Context) error {
	var data company.NewCompany
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCompany")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	comp, err := api.svc.Create(data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating company")
	}
	return ctx.JSON(http.StatusCreated, comp)
}

func (api *companyApi) update(ctx echo.Context) error {
	var data company.UpdateCompany
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCompany")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	if data.Name != "" {
		comp := company.Company{ID: ctx.Param("id")}
		if err := api.svc.CheckUniqueness(data.Name, comp); err != nil {
			return err
		}
	}

	comp, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating company")
	}
	return ctx.JSON(http.StatusOK, comp)
}

func (api *companyApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting company")
	}
	return ctx.NoContent(http.StatusNoContent)
}
