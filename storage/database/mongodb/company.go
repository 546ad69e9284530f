package mongorepos

import (
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/padmanabh275/ProjectMgt/core/company"
)

type companyRepository struct {
	coll *mongo.Collection
}

var _ company.Repository = (*companyRepository)(nil) // interface compliance check

func NewCompanyRepository(db *mongo.Database) company.Repository {
	return &companyRepository{coll: db.Collection(companiesCollection)}
}

func (repo *companyRepository) trapNoDocsErr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return company.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *companyRepository) CheckNameUniqueness(name string, excludedCompanies ...company.Company) error {
	ctx, cancel := queryCtx()
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"}}
	if len(excludedCompanies) > 0 {
		ids := make([]string, 0, len(excludedCompanies))
		for _, c := range excludedCompanies {
			ids = append(ids, c.ID)
		}
		filter["_id"] = bson.M{"$nin": ids}
	}

	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "checking company name uniqueness")
	}
	if count > 0 {
		return company.ErrNameExists
	}
	return nil
}

func (repo *companyRepository) CreateCompany(comp company.Company) (company.Company, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	comp.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, comp); err != nil {
		return company.Company{}, errors.Wrap(err, "inserting company")
	}
	return comp, nil
}

func (repo *companyRepository) GetCompanyByID(id string) (company.Company, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	var comp company.Company
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comp); err != nil {
		return company.Company{}, repo.trapNoDocsErr(err, "getting company by id")
	}
	return comp, nil
}

func (repo *companyRepository) FilterCompanies(filter company.QueryFilter) ([]company.Company, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	query := bson.M{}
	if filter.ID != "" {
		query["_id"] = filter.ID
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying companies")
	}
	comps := make([]company.Company, 0)
	if err = cur.All(ctx, &comps); err != nil {
		return nil, errors.Wrap(err, "decoding companies")
	}
	return comps, nil
}

func (repo *companyRepository) UpdateCompany(comp company.Company, isActive *bool) (company.Company, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	// only save set fields
	set := bson.M{}
	if comp.Name != "" {
		set["name"] = comp.Name
	}
	if isActive != nil {
		set["is_active"] = *isActive
	}
	if !comp.UpdatedAt.IsZero() {
		set["updated_at"] = comp.UpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated company.Company
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": comp.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return company.Company{}, repo.trapNoDocsErr(err, "updating company")
	}
	return updated, nil
}

func (repo *companyRepository) DeleteCompany(id string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting company")
	}
	if res.DeletedCount == 0 {
		return company.ErrNotFound
	}
	return nil
}
