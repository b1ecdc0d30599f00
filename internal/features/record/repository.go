package record

import (
	"context"
	"time"

	common_models "go-events/internal/common/models"
	"go-events/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved document keys the store owns; they never appear in fetched rows.
const (
	fieldTenantID = "tenant_id"
	fieldEventID  = "event_id"
)

type RecordRepository interface {
	Insert(ctx context.Context, scope common_models.Scope, sourceKey string, doc map[string]any) (string, error)
	Find(ctx context.Context, scope common_models.Scope, sourceKey string, paths []string) ([]map[string]any, error)
	List(ctx context.Context, scope common_models.Scope, sourceKey string, page, limit int64) ([]map[string]any, int64, error)
	Update(ctx context.Context, scope common_models.Scope, sourceKey, id string, doc map[string]any) error
	Delete(ctx context.Context, scope common_models.Scope, sourceKey, id string) error
	UpsertByKey(ctx context.Context, scope common_models.Scope, sourceKey, keyField string, doc map[string]any) error
}

type RecordRepositoryImpl struct {
	DB *mongo.Database
}

func NewRecordRepository(db *database.MongodbDB) RecordRepository {
	return &RecordRepositoryImpl{DB: db.DB}
}

func (r *RecordRepositoryImpl) collection(sourceKey string) *mongo.Collection {
	return r.DB.Collection("rows_" + sourceKey)
}

func scopeFilter(scope common_models.Scope) bson.M {
	return bson.M{
		fieldTenantID: scope.TenantID,
		fieldEventID:  scope.EventID,
	}
}

func (r *RecordRepositoryImpl) Insert(ctx context.Context, scope common_models.Scope, sourceKey string, doc map[string]any) (string, error) {
	stored := make(bson.M, len(doc)+3)
	for k, v := range doc {
		stored[k] = v
	}
	stored[fieldTenantID] = scope.TenantID
	stored[fieldEventID] = scope.EventID
	stored["created_at"] = time.Now()

	res, err := r.collection(sourceKey).InsertOne(ctx, stored)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

// Find returns the scoped rows with the store's projection applied. An empty
// paths slice fetches full rows (needed when a computed field is selected).
func (r *RecordRepositoryImpl) Find(ctx context.Context, scope common_models.Scope, sourceKey string, paths []string) ([]map[string]any, error) {
	opts := options.Find()
	if len(paths) > 0 {
		projection := bson.M{"_id": 0}
		for _, p := range paths {
			projection[p] = 1
		}
		opts.SetProjection(projection)
	}

	cursor, err := r.collection(sourceKey).Find(ctx, scopeFilter(scope), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		delete(doc, "_id")
		delete(doc, fieldTenantID)
		delete(doc, fieldEventID)
		delete(doc, "created_at")
		delete(doc, "updated_at")
		rows = append(rows, normalizeMap(doc))
	}
	return rows, nil
}

func (r *RecordRepositoryImpl) List(ctx context.Context, scope common_models.Scope, sourceKey string, page, limit int64) ([]map[string]any, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	filter := scopeFilter(scope)
	coll := r.collection(sourceKey)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	rows := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		delete(doc, fieldTenantID)
		delete(doc, fieldEventID)
		rows = append(rows, normalizeMap(doc))
	}
	return rows, total, nil
}

func (r *RecordRepositoryImpl) Update(ctx context.Context, scope common_models.Scope, sourceKey, id string, doc map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	set := make(bson.M, len(doc)+1)
	for k, v := range doc {
		if k == fieldTenantID || k == fieldEventID || k == "_id" {
			continue
		}
		set[k] = v
	}
	set["updated_at"] = time.Now()

	filter := scopeFilter(scope)
	filter["_id"] = oid

	res, err := r.collection(sourceKey).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *RecordRepositoryImpl) Delete(ctx context.Context, scope common_models.Scope, sourceKey, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	filter := scopeFilter(scope)
	filter["_id"] = oid

	res, err := r.collection(sourceKey).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpsertByKey replaces the scoped row matching doc[keyField], inserting when
// absent. Used by the financial import so re-runs stay idempotent.
func (r *RecordRepositoryImpl) UpsertByKey(ctx context.Context, scope common_models.Scope, sourceKey, keyField string, doc map[string]any) error {
	filter := scopeFilter(scope)
	filter[keyField] = doc[keyField]

	stored := make(bson.M, len(doc)+3)
	for k, v := range doc {
		stored[k] = v
	}
	stored[fieldTenantID] = scope.TenantID
	stored[fieldEventID] = scope.EventID
	stored["updated_at"] = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection(sourceKey).ReplaceOne(ctx, filter, stored, opts)
	return err
}
