package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/database"
	"github.com/google/uuid"
)

func TestSnapshotDiff(t *testing.T) {
	base := func() *entity.User {
		return &entity.User{
			ID:                uuid.New(),
			EcoPoints:         40,
			TotalPointsEarned: 90,
			Achievements:      []entity.UserAchievement{{AchievementID: "first_upload"}},
			Redemptions:       []entity.Redemption{{RewardID: "1", PointsSpent: 50}},
		}
	}

	tests := []struct {
		name        string
		edit        func(u *entity.User)
		wantChanged bool
		wantErr     string
	}{
		{name: "untouched", edit: func(u *entity.User) {}},
		{name: "credit", edit: func(u *entity.User) { u.EcoPoints += 10; u.TotalPointsEarned += 10 }, wantChanged: true},
		{
			name: "append achievement",
			edit: func(u *entity.User) {
				u.Achievements = append(u.Achievements, entity.UserAchievement{AchievementID: "fifty_points"})
			},
			wantChanged: true,
		},
		{name: "drop redemption", edit: func(u *entity.User) { u.Redemptions = nil }, wantErr: "append-only"},
		{name: "negative balance", edit: func(u *entity.User) { u.EcoPoints = -1 }, wantErr: "negative"},
		{name: "lifetime decrease", edit: func(u *entity.User) { u.TotalPointsEarned-- }, wantErr: "lifetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base()
			s := takeSnapshot(u)
			tt.edit(u)
			changed, err := s.diff(u)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("diff() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("diff() error = %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("diff() changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestUserDocumentKeepsHistory(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	u := &entity.User{
		ID:           uuid.New(),
		Email:        "a@b.c",
		EcoPoints:    50,
		Achievements: []entity.UserAchievement{{AchievementID: "first_upload", AchievementTitle: "First Steps", UnlockedAt: now}},
		Redemptions:  []entity.Redemption{{RewardID: "2", RewardTitle: "Reusable Bottle Coupon", RewardIcon: "🍶", PointsSpent: 150, RedeemedAt: now}},
	}

	doc := toUserDocument(u)
	got := doc.toEntity()

	if got.ID != u.ID || got.Redemptions[0].PointsSpent != 150 || got.Redemptions[0].UserID != u.ID {
		t.Errorf("unexpected account %+v", got)
	}
	if !got.HasAchievement("first_upload") {
		t.Error("achievement lost")
	}
}

// Requires a disposable postgres database.
func TestGormMutateSerializesDebits(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := database.Connect(dsn, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.UserAchievement{}, &entity.Redemption{}); err != nil {
		t.Fatal(err)
	}

	repo := NewUserRepository(db)
	testSerializedDebits(t, repo)
}

// Requires a disposable mongo database.
func TestMongoMutateSerializesDebits(t *testing.T) {
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

	repo := NewMongoUserRepository(mdb)
	testSerializedDebits(t, repo)
}

func testSerializedDebits(t *testing.T, repo UserRepository) {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{
		Name:              "Race",
		Email:             uuid.NewString() + "@example.com",
		PasswordHash:      "x",
		EcoPoints:         100,
		TotalPointsEarned: 100,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(ctx, user.ID, func(u *entity.User) error {
				if u.EcoPoints < 30 {
					return apperror.ErrInsufficientBalance
				}
				u.EcoPoints -= 30
				u.Redemptions = append(u.Redemptions, entity.Redemption{
					RewardID: "2", RewardTitle: "Coupon", PointsSpent: 30, RedeemedAt: time.Now().UTC(),
				})
				return nil
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, apperror.ErrInsufficientBalance) && !errors.Is(err, apperror.ErrConflict) {
				t.Errorf("Mutate() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.EcoPoints != 100-30*succeeded || len(got.Redemptions) != succeeded {
		t.Errorf("balance %d with %d redemptions after %d successes", got.EcoPoints, len(got.Redemptions), succeeded)
	}
	if got.EcoPoints != got.TotalPointsEarned-got.PointsSpent() {
		t.Errorf("ledger invariant broken: %d != %d - %d", got.EcoPoints, got.TotalPointsEarned, got.PointsSpent())
	}
	if _, err := repo.FindByEmail(ctx, user.Email); err != nil {
		t.Errorf("FindByEmail() error = %v", err)
	}
	if err := repo.Create(ctx, &entity.User{Name: "Dup", Email: user.Email, PasswordHash: "x"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}
}
