package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

const collectionLeaveRequests = "leave_requests"

type LeaveRepository struct {
	col *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{col: db.Collection(collectionLeaveRequests)}
}

// Create inserts a new leave request document.
func (r *LeaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *req
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByID retrieves a leave request by id.
func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.LeaveRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Decide atomically moves a pending request into the given terminal status.
// The status precondition rides in the update filter, so of any number of
// concurrent decisions exactly one modifies the document; the rest observe
// a zero modified count and return false.
func (r *LeaveRepository) Decide(ctx context.Context, id, managerID string, status domain.LeaveStatus, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.LeavePending},
		bson.M{"$set": bson.M{
			"status":        status,
			"decision_by":   managerID,
			"decision_date": at,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// ListByEmployee returns all requests submitted by the employee, most recent
// start date first.
func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{"employee_id": employeeID})
}

// ListPendingByDepartment returns undecided requests whose department stamp
// matches.
func (r *LeaveRepository) ListPendingByDepartment(ctx context.Context, departmentID string) ([]*domain.LeaveRequest, error) {
	return r.list(ctx, bson.M{
		"department_id": departmentID,
		"status":        domain.LeavePending,
		"decision_by":   bson.M{"$in": bson.A{nil, ""}},
	})
}

// ListDecidedBy returns requests decided by the manager, optionally filtered
// to one terminal status.
func (r *LeaveRepository) ListDecidedBy(ctx context.Context, managerID string, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	filter := bson.M{"decision_by": managerID}
	if status != "" {
		filter["status"] = status
	} else {
		filter["status"] = bson.M{"$ne": domain.LeavePending}
	}
	return r.list(ctx, filter)
}

func (r *LeaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.LeaveRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.LeaveRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing the listing views.
func (r *LeaveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "start_date", Value: -1}}},
		{Keys: bson.D{{Key: "department_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "decision_by", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
