package mongorepos

import (
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/padmanabh275/ProjectMgt/core/task"
)

type taskRepository struct {
	coll *mongo.Collection
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *mongo.Database) task.Repository {
	return &taskRepository{coll: db.Collection(tasksCollection)}
}

func (repo *taskRepository) trapNoDocsErr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return task.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *taskRepository) CreateTask(t task.Task) (task.Task, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	t.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, t); err != nil {
		return task.Task{}, errors.Wrap(err, "inserting task")
	}
	return t, nil
}

func (repo *taskRepository) GetTaskByID(id string) (task.Task, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	var t task.Task
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return task.Task{}, repo.trapNoDocsErr(err, "getting task by id")
	}
	return t, nil
}

func (repo *taskRepository) FilterTasks(filter task.QueryFilter) ([]task.Task, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	query := bson.M{}
	if filter.CompanyID != "" {
		query["company_id"] = filter.CompanyID
	}
	if filter.DepartmentID != "" {
		query["department_id"] = filter.DepartmentID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AssignedTo != "" {
		pattern := regexp.QuoteMeta(filter.AssignedTo)
		if filter.AssigneeExact {
			pattern = "^" + pattern + "$"
		}
		query["assigned_to"] = bson.M{"$regex": pattern, "$options": "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}})
	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	tasks := make([]task.Task, 0)
	if err = cur.All(ctx, &tasks); err != nil {
		return nil, errors.Wrap(err, "decoding tasks")
	}
	return tasks, nil
}

func (repo *taskRepository) UpdateTask(id string, ch task.Changes) (task.Task, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	// only save set fields
	set := bson.M{}
	if ch.TaskName != "" {
		set["task_name"] = ch.TaskName
	}
	if ch.AssignedTo != nil {
		set["assigned_to"] = *ch.AssignedTo
	}
	if !ch.Deadline.IsZero() {
		set["deadline"] = ch.Deadline
	}
	if ch.Status != "" {
		set["status"] = ch.Status
	}
	if ch.Comments != nil {
		set["comments"] = *ch.Comments
	}
	if !ch.UpdatedAt.IsZero() {
		set["updated_at"] = ch.UpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated task.Task
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return task.Task{}, repo.trapNoDocsErr(err, "updating task")
	}
	return updated, nil
}

func (repo *taskRepository) DeleteTask(id string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if res.DeletedCount == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (repo *taskRepository) DeleteTasksByCompanyID(companyID string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	if _, err := repo.coll.DeleteMany(ctx, bson.M{"company_id": companyID}); err != nil {
		return errors.Wrap(err, "deleting company tasks")
	}
	return nil
}

func (repo *taskRepository) DeleteTasksByDepartmentID(departmentID string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	if _, err := repo.coll.DeleteMany(ctx, bson.M{"department_id": departmentID}); err != nil {
		return errors.Wrap(err, "deleting department tasks")
	}
	return nil
}
