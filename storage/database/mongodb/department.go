package mongorepos

import (
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/padmanabh275/ProjectMgt/core/department"
)

type departmentRepository struct {
	coll *mongo.Collection
}

var _ department.Repository = (*departmentRepository)(nil) // interface compliance check

func NewDepartmentRepository(db *mongo.Database) department.Repository {
	return &departmentRepository{coll: db.Collection(departmentsCollection)}
}

func (repo *departmentRepository) trapNoDocsErr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return department.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *departmentRepository) CheckNameUniqueness(companyID, name string, excludedDepartments ...department.Department) error {
	ctx, cancel := queryCtx()
	defer cancel()

	filter := bson.M{
		"company_id": companyID,
		"name":       bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"},
	}
	if len(excludedDepartments) > 0 {
		ids := make([]string, 0, len(excludedDepartments))
		for _, d := range excludedDepartments {
			ids = append(ids, d.ID)
		}
		filter["_id"] = bson.M{"$nin": ids}
	}

	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "checking department name uniqueness")
	}
	if count > 0 {
		return department.ErrNameExists
	}
	return nil
}

func (repo *departmentRepository) CreateDepartment(dept department.Department) (department.Department, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	dept.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, dept); err != nil {
		return department.Department{}, errors.Wrap(err, "inserting department")
	}
	return dept, nil
}

func (repo *departmentRepository) GetDepartmentByID(id string) (department.Department, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	var dept department.Department
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dept); err != nil {
		return department.Department{}, repo.trapNoDocsErr(err, "getting department by id")
	}
	return dept, nil
}

func (repo *departmentRepository) QueryDepartmentsByCompanyID(companyID string) ([]department.Department, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{"company_id": companyID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying departments")
	}
	depts := make([]department.Department, 0)
	if err = cur.All(ctx, &depts); err != nil {
		return nil, errors.Wrap(err, "decoding departments")
	}
	return depts, nil
}

func (repo *departmentRepository) UpdateDepartment(dept department.Department) (department.Department, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	// only save set fields
	set := bson.M{}
	if dept.Name != "" {
		set["name"] = dept.Name
	}
	if !dept.UpdatedAt.IsZero() {
		set["updated_at"] = dept.UpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated department.Department
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": dept.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return department.Department{}, repo.trapNoDocsErr(err, "updating department")
	}
	return updated, nil
}

func (repo *departmentRepository) DeleteDepartment(id string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting department")
	}
	if res.DeletedCount == 0 {
		return department.ErrNotFound
	}
	return nil
}

func (repo *departmentRepository) DeleteDepartmentsByCompanyID(companyID string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	if _, err := repo.coll.DeleteMany(ctx, bson.M{"company_id": companyID}); err != nil {
		return errors.Wrap(err, "deleting company departments")
	}
	return nil
}
