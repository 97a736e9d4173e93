package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection = "users"

	maxCASAttempts = 5
)

type userDocument struct {
	ID                string                `bson:"_id"`
	Name              string                `bson:"name"`
	Email             string                `bson:"email"`
	PasswordHash      string                `bson:"password"`
	EcoPoints         int                   `bson:"ecoPoints"`
	TotalPointsEarned int                   `bson:"totalPointsEarned"`
	Version           int64                 `bson:"version"`
	Achievements      []achievementDocument `bson:"achievements"`
	Redemptions       []redemptionDocument  `bson:"redemptions"`
	CreatedAt         time.Time             `bson:"createdAt"`
}

type achievementDocument struct {
	AchievementID    string    `bson:"achievementId"`
	AchievementTitle string    `bson:"achievementTitle"`
	UnlockedAt       time.Time `bson:"unlockedAt"`
}

type redemptionDocument struct {
	RewardID    string    `bson:"rewardId"`
	RewardTitle string    `bson:"rewardTitle"`
	RewardIcon  string    `bson:"rewardIcon"`
	Points      int       `bson:"points"`
	RedeemedAt  time.Time `bson:"redeemedAt"`
}

type mongoUserRepository struct {
	db    *mongo.Database
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{db: db, users: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index the store relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *mongoUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.users.InsertOne(ctx, toUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email %s: %w", user.Email, apperror.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	doc, err := r.findOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	doc, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*userDocument, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// Mutate replaces the document only if its version is unchanged since it was
// read, retrying on a lost race.
func (r *mongoUserRepository) Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*entity.User, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		doc, err := r.findOne(ctx, bson.M{"_id": id.String()})
		if err != nil {
			return nil, err
		}

		user := doc.toEntity()
		before := takeSnapshot(user)
		if err := fn(user); err != nil {
			return nil, err
		}
		changed, err := before.diff(user)
		if err != nil {
			return nil, err
		}
		if !changed {
			return user, nil
		}

		next := toUserDocument(user)
		next.Version = doc.Version + 1

		res, err := r.users.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": doc.Version}, next)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			user.Version = next.Version
			return user, nil
		}
	}

	return nil, apperror.New(http.StatusServiceUnavailable, "account is busy, please try again", apperror.ErrConflict)
}

func (r *mongoUserRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func toUserDocument(u *entity.User) userDocument {
	doc := userDocument{
		ID:                u.ID.String(),
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		EcoPoints:         u.EcoPoints,
		TotalPointsEarned: u.TotalPointsEarned,
		Version:           u.Version,
		Achievements:      make([]achievementDocument, 0, len(u.Achievements)),
		Redemptions:       make([]redemptionDocument, 0, len(u.Redemptions)),
		CreatedAt:         u.CreatedAt,
	}
	for _, a := range u.Achievements {
		doc.Achievements = append(doc.Achievements, achievementDocument{
			AchievementID:    a.AchievementID,
			AchievementTitle: a.AchievementTitle,
			UnlockedAt:       a.UnlockedAt,
		})
	}
	for _, rd := range u.Redemptions {
		doc.Redemptions = append(doc.Redemptions, redemptionDocument{
			RewardID:    rd.RewardID,
			RewardTitle: rd.RewardTitle,
			RewardIcon:  rd.RewardIcon,
			Points:      rd.PointsSpent,
			RedeemedAt:  rd.RedeemedAt,
		})
	}
	return doc
}

func (d *userDocument) toEntity() *entity.User {
	id, _ := uuid.Parse(d.ID)
	u := &entity.User{
		ID:                id,
		Name:              d.Name,
		Email:             d.Email,
		PasswordHash:      d.PasswordHash,
		EcoPoints:         d.EcoPoints,
		TotalPointsEarned: d.TotalPointsEarned,
		Version:           d.Version,
		Achievements:      make([]entity.UserAchievement, 0, len(d.Achievements)),
		Redemptions:       make([]entity.Redemption, 0, len(d.Redemptions)),
		CreatedAt:         d.CreatedAt,
	}
	for _, a := range d.Achievements {
		u.Achievements = append(u.Achievements, entity.UserAchievement{
			UserID:           id,
			AchievementID:    a.AchievementID,
			AchievementTitle: a.AchievementTitle,
			UnlockedAt:       a.UnlockedAt,
		})
	}
	for _, rd := range d.Redemptions {
		u.Redemptions = append(u.Redemptions, entity.Redemption{
			UserID:      id,
			RewardID:    rd.RewardID,
			RewardTitle: rd.RewardTitle,
			RewardIcon:  rd.RewardIcon,
			PointsSpent: rd.Points,
			RedeemedAt:  rd.RedeemedAt,
		})
	}
	return u
}
