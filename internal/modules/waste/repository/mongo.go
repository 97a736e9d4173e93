package repository

import (
	"context"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WasteCollection = "wastes"

type wasteDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	WasteType    string    `bson:"wasteType"`
	Prediction   string    `bson:"prediction"`
	ImageURL     string    `bson:"imageUrl"`
	Description  string    `bson:"description"`
	PointsEarned int       `bson:"pointsEarned"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type mongoWasteRepository struct {
	wastes *mongo.Collection
}

func NewMongoWasteRepository(db *mongo.Database) WasteRepository {
	return &mongoWasteRepository{wastes: db.Collection(WasteCollection)}
}

// EnsureIndexes creates the (userId, createdAt) index used by history reads.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(WasteCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *mongoWasteRepository) Create(ctx context.Context, record *entity.WasteRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.wastes.InsertOne(ctx, wasteDocument{
		ID:           record.ID.String(),
		UserID:       record.UserID.String(),
		WasteType:    string(record.WasteType),
		Prediction:   record.RawLabel,
		ImageURL:     record.ImageURL,
		Description:  record.Description,
		PointsEarned: record.PointsEarned,
		CreatedAt:    record.CreatedAt,
	})
	return err
}

func (r *mongoWasteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.wastes.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

func (r *mongoWasteRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.WasteRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.wastes.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []wasteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]entity.WasteRecord, 0, len(docs))
	for _, d := range docs {
		id, _ := uuid.Parse(d.ID)
		records = append(records, entity.WasteRecord{
			ID:           id,
			UserID:       userID,
			WasteType:    entity.WasteCategory(d.WasteType),
			RawLabel:     d.Prediction,
			ImageURL:     d.ImageURL,
			Description:  d.Description,
			PointsEarned: d.PointsEarned,
			CreatedAt:    d.CreatedAt,
		})
	}
	return records, nil
}

func (r *mongoWasteRepository) CountByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID.String()}}},
		{{Key: "$group", Value: bson.M{"_id": "$wasteType", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.wastes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		WasteType string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.WasteType] = row.Count
	}
	return counts, nil
}
