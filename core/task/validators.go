package task

import (
	"github.com/go-playground/validator/v10"

	"github.com/padmanabh275/ProjectMgt/core"
)

var (
	taskStatusTag  = "taskstatus"
	taskStatusText = "invalid status"
)

func init() {
	_ = core.Validate.RegisterValidation(taskStatusTag, taskStatusValidation)
	core.RegisterCustomTranslation(taskStatusTag, taskStatusText)
}

// taskStatusValidation checks that the provided status is in AllStatuses.
func taskStatusValidation(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	for _, s := range AllStatuses {
		if status == s {
			return true
		}
	}
	return false
}
