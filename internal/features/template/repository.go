package template

import (
	"context"
	"time"

	"go-events/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TemplateRepository interface {
	Create(ctx context.Context, tpl *Template) error
	Get(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context, tenantID, userID string) ([]Template, error)
	Update(ctx context.Context, id string, tpl *Template) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTemplateRepository(db *database.MongodbDB) TemplateRepository {
	return &TemplateRepositoryImpl{
		Collection: db.DB.Collection("report_templates"),
	}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, tpl *Template) error {
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, tpl)
	return err
}

func (r *TemplateRepositoryImpl) Get(ctx context.Context, id string) (*Template, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var tpl Template
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&tpl)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List returns the caller's own templates plus public ones within the tenant.
func (r *TemplateRepositoryImpl) List(ctx context.Context, tenantID, userID string) ([]Template, error) {
	filter := bson.M{
		"tenant_id": tenantID,
		"$or": bson.A{
			bson.M{"owner_id": userID},
			bson.M{"is_public": true},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []Template
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, id string, tpl *Template) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	tpl.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":          tpl.Name,
			"description":   tpl.Description,
			"report_type":   tpl.ReportType,
			"configuration": tpl.Configuration,
			"is_public":     tpl.IsPublic,
			"updated_at":    tpl.UpdatedAt,
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
