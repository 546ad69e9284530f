// Package mongorepos implements the core repositories on top of the
// MongoDB document store.
package mongorepos

import (
	"context"
	"time"
)

// collection names
const (
	usersCollection       = "users"
	companiesCollection   = "companies"
	departmentsCollection = "departments"
	tasksCollection       = "tasks"
)

const queryTimeout = 5 * time.Second

func queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}
