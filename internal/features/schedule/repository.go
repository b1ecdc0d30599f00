package schedule

import (
	"context"
	"time"

	"go-events/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleRepository interface {
	Create(ctx context.Context, sched *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context, tenantID string) ([]Schedule, error)
	Update(ctx context.Context, sched *Schedule) error
	Delete(ctx context.Context, id string) error
	GetActive(ctx context.Context) ([]Schedule, error)
	UpdateLastRun(ctx context.Context, id string, lastRun time.Time, nextRun *time.Time) error

	CreateLog(ctx context.Context, log *RunLog) error
	GetLogs(ctx context.Context, scheduleID string, limit int) ([]RunLog, error)
	UpdateLog(ctx context.Context, log *RunLog) error
}

type ScheduleRepositoryImpl struct {
	collection    *mongo.Collection
	logCollection *mongo.Collection
}

func NewScheduleRepository(db *database.MongodbDB) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		collection:    db.DB.Collection("report_schedules"),
		logCollection: db.DB.Collection("report_schedule_runs"),
	}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, sched *Schedule) error {
	sched.ID = primitive.NewObjectID()
	sched.CreatedAt = time.Now()
	sched.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, sched)
	return err
}

func (r *ScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (*Schedule, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var sched Schedule
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sched)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &sched, nil
}

func (r *ScheduleRepositoryImpl) List(ctx context.Context, tenantID string) ([]Schedule, error) {
	var schedules []Schedule

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tenant_id": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}

	if schedules == nil {
		schedules = []Schedule{}
	}

	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, sched *Schedule) error {
	sched.UpdatedAt = time.Now()
	filter := bson.M{"_id": sched.ID}
	update := bson.M{"$set": sched}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *ScheduleRepositoryImpl) GetActive(ctx context.Context) ([]Schedule, error) {
	var schedules []Schedule

	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *ScheduleRepositoryImpl) UpdateLastRun(ctx context.Context, id string, lastRun time.Time, nextRun *time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"last_run":   lastRun,
			"next_run":   nextRun,
			"updated_at": time.Now(),
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *ScheduleRepositoryImpl) CreateLog(ctx context.Context, log *RunLog) error {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now()

	_, err := r.logCollection.InsertOne(ctx, log)
	return err
}

func (r *ScheduleRepositoryImpl) GetLogs(ctx context.Context, scheduleID string, limit int) ([]RunLog, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return nil, err
	}

	var logs []RunLog

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.logCollection.Find(ctx, bson.M{"schedule_id": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []RunLog{}
	}

	return logs, nil
}

func (r *ScheduleRepositoryImpl) UpdateLog(ctx context.Context, log *RunLog) error {
	filter := bson.M{"_id": log.ID}
	update := bson.M{"$set": log}

	_, err := r.logCollection.UpdateOne(ctx, filter, update)
	return err
}
