package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/pkg/database"
	"github.com/google/uuid"
)

func TestGormWasteRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := database.Connect(dsn, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&entity.WasteRecord{}); err != nil {
		t.Fatal(err)
	}

	testWasteRepository(t, NewWasteRepository(db))
}

func TestMongoWasteRepository(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	mdb, err := database.ConnectMongo(context.Background(), uri, "ecoinsight_test")
	if err != nil {
		t.Fatal(err)
	}
	if err := EnsureIndexes(context.Background(), mdb); err != nil {
		t.Fatal(err)
	}

	testWasteRepository(t, NewMongoWasteRepository(mdb))
}

func testWasteRepository(t *testing.T, repo WasteRepository) {
	t.Helper()
	ctx := context.Background()
	userID := uuid.New()
	start := time.Now().UTC().Truncate(time.Millisecond)

	types := []entity.WasteCategory{
		entity.CategoryRecyclable,
		entity.CategoryNonRecyclable,
		entity.CategoryRecyclable,
		entity.WasteCategory("non_recyclable"),
	}
	for i, wt := range types {
		rec := &entity.WasteRecord{
			UserID:    userID,
			WasteType: wt,
			RawLabel:  string(wt),
			ImageURL:  "https://cdn.example.com/w.png",
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	history, err := repo.FindByUserID(ctx, userID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].WasteType != "non_recyclable" {
		t.Errorf("unexpected history %+v", history)
	}

	counts, err := repo.CountByType(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if counts["Recyclable"] != 2 || counts["Non-Recyclable"] != 1 || counts["non_recyclable"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}

	if err := repo.Delete(ctx, history[0].ID); err != nil {
		t.Fatal(err)
	}
	counts, err = repo.CountByType(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := counts["non_recyclable"]; ok {
		t.Errorf("deleted record still counted: %v", counts)
	}
}
