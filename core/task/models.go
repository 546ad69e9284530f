package task

import (
	"time"

	"github.com/padmanabh275/ProjectMgt/core"
)

// Statuses
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusDelayed    = "Delayed"
)

var AllStatuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted, StatusDelayed}

// DefaultAssignee is used when a task is created without an assignee.
const DefaultAssignee = "Unassigned"

type Task struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	TaskName     string    `json:"task_name" bson:"task_name"`
	AssignedTo   string    `json:"assigned_to" bson:"assigned_to"`
	Deadline     time.Time `json:"deadline" bson:"deadline"`
	Status       string    `json:"status" bson:"status"`
	CompanyID    string    `json:"company_id" bson:"company_id"`
	DepartmentID string    `json:"department_id" bson:"department_id"`
	CreatedBy    string    `json:"created_by" bson:"created_by"`
	Comments     string    `json:"comments" bson:"comments"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	TaskName     string    `json:"task_name" validate:"required"`
	AssignedTo   string    `json:"assigned_to"`
	Deadline     time.Time `json:"deadline" validate:"required"`
	Status       string    `json:"status" validate:"omitempty,taskstatus"`
	CompanyID    string    `json:"company_id" validate:"required"`
	DepartmentID string    `json:"department_id" validate:"required"`
	Comments     string    `json:"comments"`
}

func (nt *NewTask) Validate() error {
	nt.TaskName = core.CleanString(nt.TaskName)
	nt.AssignedTo = core.CleanString(nt.AssignedTo)
	nt.Comments = core.CleanString(nt.Comments)
	if nt.AssignedTo == "" {
		nt.AssignedTo = DefaultAssignee
	}
	if nt.Status == "" {
		nt.Status = StatusNotStarted
	}
	return core.Validate.Struct(nt)
}

// UpdateTask defines what may be modified on an existing Task. Zero/nil
// fields are left untouched; pointers distinguish "absent" from "set empty".
type UpdateTask struct {
	TaskName   string    `json:"task_name"`
	AssignedTo *string   `json:"assigned_to"`
	Deadline   time.Time `json:"deadline"`
	Status     string    `json:"status" validate:"omitempty,taskstatus"`
	Comments   *string   `json:"comments"`
}

func (ut *UpdateTask) Validate() error {
	ut.TaskName = core.CleanString(ut.TaskName)
	return core.Validate.Struct(ut)
}

// QueryFilter narrows a task listing; fields AND together.
// AssignedTo does a case-insensitive substring match.
type QueryFilter struct {
	CompanyID    string `query:"company_id"`
	DepartmentID string `query:"department_id"`
	Status       string `query:"status"`
	AssignedTo   string `query:"assigned_to"`

	// AssigneeExact switches AssignedTo from a substring match to an
	// exact, case-insensitive one. Not settable from the query string.
	AssigneeExact bool `query:"-"`
}

func (qf *QueryFilter) Clean() {
	qf.AssignedTo = core.CleanString(qf.AssignedTo)
}
