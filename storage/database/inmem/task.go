package inmemdb

import (
	"sort"
	"strings"

	"github.com/padmanabh275/ProjectMgt/core/task"
)

type taskRepository struct {
	db *taskTable
}

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db.task}
}

var _ task.Repository = (*taskRepository)(nil)

func (repo *taskRepository) query() []task.Task {
	tasks := make([]task.Task, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tasks = append(tasks, *t)
	}
	return tasks
}

func (repo *taskRepository) CreateTask(t task.Task) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	t.ID = newID()
	repo.db.table[t.ID] = &t
	return t, nil
}

func (repo *taskRepository) GetTaskByID(id string) (task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.table[id]; ok {
		return *t, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) FilterTasks(filter task.QueryFilter) ([]task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tasks := make([]task.Task, 0)
	for _, t := range repo.query() {
		if filter.CompanyID != "" && t.CompanyID != filter.CompanyID {
			continue
		}
		if filter.DepartmentID != "" && t.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssignedTo != "" {
			if filter.AssigneeExact {
				if !strings.EqualFold(t.AssignedTo, filter.AssignedTo) {
					continue
				}
			} else if !strings.Contains(strings.ToLower(t.AssignedTo), strings.ToLower(filter.AssignedTo)) {
				continue
			}
		}
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Deadline.Before(tasks[j].Deadline) })
	return tasks, nil
}

func (repo *taskRepository) UpdateTask(id string, ch task.Changes) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	origTask, ok := repo.db.table[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	if ch.TaskName != "" {
		origTask.TaskName = ch.TaskName
	}
	if ch.AssignedTo != nil {
		origTask.AssignedTo = *ch.AssignedTo
	}
	if !ch.Deadline.IsZero() {
		origTask.Deadline = ch.Deadline
	}
	if ch.Status != "" {
		origTask.Status = ch.Status
	}
	if ch.Comments != nil {
		origTask.Comments = *ch.Comments
	}
	if !ch.UpdatedAt.IsZero() {
		origTask.UpdatedAt = ch.UpdatedAt
	}

	repo.db.table[id] = origTask
	return *origTask, nil
}

func (repo *taskRepository) DeleteTask(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return task.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *taskRepository) DeleteTasksByCompanyID(companyID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, t := range repo.db.table {
		if t.CompanyID == companyID {
			delete(repo.db.table, id)
		}
	}
	return nil
}

func (repo *taskRepository) DeleteTasksByDepartmentID(departmentID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, t := range repo.db.table {
		if t.DepartmentID == departmentID {
			delete(repo.db.table, id)
		}
	}
	return nil
}
