package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

// One collection per role. Entity ids are only unique within their own
// collection, which is why every lookup is keyed by (role, id).
const (
	collectionAdmins    = "admins"
	collectionManagers  = "managers"
	collectionEmployees = "employees"
	collectionClients   = "clients"
)

type ProfileRepository struct {
	db *mongo.Database
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileDoc struct {
	ID           string `bson:"_id"`
	UserID       string `bson:"user_id"`
	FullName     string `bson:"full_name"`
	DepartmentID string `bson:"department_id,omitempty"`
}

func (r *ProfileRepository) collectionFor(role domain.Role) (*mongo.Collection, error) {
	switch role {
	case domain.RoleAdmin:
		return r.db.Collection(collectionAdmins), nil
	case domain.RoleManager:
		return r.db.Collection(collectionManagers), nil
	case domain.RoleEmployee:
		return r.db.Collection(collectionEmployees), nil
	case domain.RoleClient:
		return r.db.Collection(collectionClients), nil
	default:
		return nil, fmt.Errorf("%w: unknown role %d", domain.ErrValidation, int(role))
	}
}

func toProfile(role domain.Role, doc *profileDoc) domain.Profile {
	switch role {
	case domain.RoleAdmin:
		return domain.AdminProfile{ID: doc.ID, Name: doc.FullName}
	case domain.RoleManager:
		return domain.ManagerProfile{ID: doc.ID, Name: doc.FullName, DepartmentID: doc.DepartmentID}
	case domain.RoleEmployee:
		return domain.EmployeeProfile{ID: doc.ID, Name: doc.FullName, DepartmentID: doc.DepartmentID}
	default:
		return domain.ClientProfile{ID: doc.ID, Name: doc.FullName}
	}
}

// FindByUser retrieves the profile linked to a user account.
func (r *ProfileRepository) FindByUser(ctx context.Context, role domain.Role, userID string) (domain.Profile, error) {
	return r.findOne(ctx, role, bson.M{"user_id": userID})
}

// FindByEntity retrieves a profile by its own id.
func (r *ProfileRepository) FindByEntity(ctx context.Context, role domain.Role, entityID string) (domain.Profile, error) {
	return r.findOne(ctx, role, bson.M{"_id": entityID})
}

func (r *ProfileRepository) findOne(ctx context.Context, role domain.Role, filter bson.M) (domain.Profile, error) {
	col, err := r.collectionFor(role)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return toProfile(role, &doc), nil
}

// EnsureIndexes creates the user link index on every profile collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	userIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{collectionAdmins, collectionManagers, collectionEmployees, collectionClients} {
		if _, err := r.db.Collection(name).Indexes().CreateOne(ctx, userIdx); err != nil {
			return fmt.Errorf("index %s: %w", name, err)
		}
	}
	return nil
}
