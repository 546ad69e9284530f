package mongorepos

import (
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/padmanabh275/ProjectMgt/core/access"
	"github.com/padmanabh275/ProjectMgt/core/user"
)

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

// trapNoDocsErr maps mongo's "no documents" err to user.ErrNotFound
func (repo *userRepository) trapNoDocsErr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *userRepository) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	ctx, cancel := queryCtx()
	defer cancel()

	filter := bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		filter["_id"] = bson.M{"$nin": ids}
	}

	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	usr.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, usr); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	var usr user.User
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&usr); err != nil {
		return user.User{}, repo.trapNoDocsErr(err, "getting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	filter := bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
	var usr user.User
	if err := repo.coll.FindOne(ctx, filter).Decode(&usr); err != nil {
		return user.User{}, repo.trapNoDocsErr(err, "getting user by email")
	}
	return usr, nil
}

func (repo *userRepository) GetMasterUser() (user.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	var usr user.User
	filter := bson.M{"role": access.RoleMaster, "is_active": true}
	if err := repo.coll.FindOne(ctx, filter).Decode(&usr); err != nil {
		return user.User{}, repo.trapNoDocsErr(err, "getting master user")
	}
	return usr, nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	query := bson.M{"is_active": true}
	if filter.CompanyID != "" {
		query["company_id"] = filter.CompanyID
	}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.ExcludeMaster {
		query["role"] = bson.M{"$ne": access.RoleMaster}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0)
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	// only save set fields
	set := bson.M{}
	if usr.Name != "" {
		set["name"] = usr.Name
	}
	if usr.Role != "" {
		set["role"] = usr.Role
	}
	if usr.CompanyID != "" {
		set["company_id"] = usr.CompanyID
	}
	if usr.PasswordHash != nil {
		set["password_hash"] = usr.PasswordHash
	}
	if isActive != nil {
		set["is_active"] = *isActive
	}
	if !usr.LastLogin.IsZero() {
		set["last_login"] = usr.LastLogin
	}
	if !usr.UpdatedAt.IsZero() {
		set["updated_at"] = usr.UpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated user.User
	err := repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": usr.ID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return user.User{}, repo.trapNoDocsErr(err, "updating user")
	}
	return updated, nil
}

func (repo *userRepository) DeleteUser(id string) error {
	ctx, cancel := queryCtx()
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return nil
}
