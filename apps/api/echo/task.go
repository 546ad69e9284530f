package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/task"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

// dashboardCompletedCap bounds the completed bucket on the dashboard view;
// the personal view stays unbounded.
const dashboardCompletedCap = 20

type taskApi struct {
	svc task.ServiceInterface
}

func registerTaskAPI(g *echo.Group, auth []echo.MiddlewareFunc, svc task.ServiceInterface) {
	api := taskApi{svc: svc}

	tg := g.Group("/tasks", auth...)
	tg.GET("", api.query)
	tg.GET("/dashboard", api.dashboard)
	tg.GET("/mine", api.mine)
	tg.POST("", api.create)

	dg := tg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *taskApi) query(ctx echo.Context) error {
	tasks, err := api.scopedTasks(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tasks)
}

// dashboard returns the scoped task list partitioned into deadline buckets,
// completed capped for display.
func (api *taskApi) dashboard(ctx echo.Context) error {
	tasks, err := api.scopedTasks(ctx)
	if err != nil {
		return err
	}
	b := task.Classify(tasks, time.Now()).CapCompleted(dashboardCompletedCap)
	return ctx.JSON(http.StatusOK, b)
}

// mine returns the caller's assigned tasks in buckets, uncapped.
func (api *taskApi) mine(ctx echo.Context) error {
	usr, ok := ctx.Get(contextUserKey).(user.User)
	if !ok {
		return errUnauthorized
	}

	// the assignee match is exact here; a substring match would leak
	// tasks of any teammate whose name contains the caller's
	filter := task.QueryFilter{
		CompanyID:     access.TaskListScope(usr.Actor(), ""),
		AssignedTo:    usr.Name,
		AssigneeExact: true,
	}
	filter.Clean()
	tasks, err := api.svc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, task.Classify(tasks, time.Now()))
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding task by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityTask, CompanyID: t.CompanyID}
	if err := access.CheckAccess(actor, access.OpRead, ref); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) create(ctx echo.Context) error {
	var data task.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityTask, CompanyID: data.CompanyID}
	if err := access.CheckAccess(actor, access.OpCreate, ref); err != nil {
		return err
	}

	t, err := api.svc.Create(data, actor.ID)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) update(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding task by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityTask, CompanyID: t.CompanyID}
	if err := access.CheckAccess(actor, access.OpUpdate, ref); err != nil {
		return err
	}

	var data task.UpdateTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	t, err = api.svc.Update(t.ID, data, actor.Role)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	t, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding task by ID")
	}

	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}
	ref := access.Ref{Entity: access.EntityTask, CompanyID: t.CompanyID}
	if err := access.CheckAccess(actor, access.OpDelete, ref); err != nil {
		return err
	}

	if err := api.svc.Delete(t.ID); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// scopedTasks binds the listing filter and narrows it to the caller's scope.
func (api *taskApi) scopedTasks(ctx echo.Context) ([]task.Task, error) {
	actor, err := getContextActor(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting context actor")
	}

	filter := new(task.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return nil, errors.Wrap(err, "binding to QueryFilter")
	}
	filter.CompanyID = access.TaskListScope(actor, filter.CompanyID)
	filter.Clean()

	tasks, err := api.svc.Query(*filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}
