package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	userMock "anoa.com/ecoinsight/internal/modules/user/repository/mock"
	wasteMock "anoa.com/ecoinsight/internal/modules/waste/repository/mock"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func mutateOn(stored *entity.User) func(context.Context, uuid.UUID, userRepo.MutateFunc) (*entity.User, error) {
	return func(_ context.Context, _ uuid.UUID, fn userRepo.MutateFunc) (*entity.User, error) {
		working := *stored
		working.Achievements = append([]entity.UserAchievement(nil), stored.Achievements...)
		working.Redemptions = append([]entity.Redemption(nil), stored.Redemptions...)
		if err := fn(&working); err != nil {
			return nil, err
		}
		*stored = working
		return &working, nil
	}
}

func newTestService(t *testing.T) (*achievementService, *userMock.MockUserRepository, *wasteMock.MockWasteRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := userMock.NewMockUserRepository(ctrl)
	wastes := wasteMock.NewMockWasteRepository(ctrl)

	svc := NewAchievementService(users, wastes, newDefaultEvaluator(t)).(*achievementService)
	svc.now = func() time.Time { return time.Date(2024, 4, 22, 9, 0, 0, 0, time.UTC) }
	return svc, users, wastes
}

func Test_achievementService_CheckAndUnlock(t *testing.T) {
	svc, users, wastes := newTestService(t)

	stored := &entity.User{ID: uuid.New(), EcoPoints: 10, TotalPointsEarned: 10}
	wastes.EXPECT().CountByType(gomock.Any(), stored.ID).Return(map[string]int64{"Recyclable": 1}, nil).Times(2)
	users.EXPECT().Mutate(gomock.Any(), stored.ID, gomock.Any()).DoAndReturn(mutateOn(stored)).Times(2)

	got, err := svc.CheckAndUnlock(context.Background(), stored.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "first_upload" || got[0].Title != "First Steps" {
		t.Fatalf("CheckAndUnlock() = %v", ids(got))
	}
	if len(stored.Achievements) != 1 || !stored.Achievements[0].UnlockedAt.Equal(svc.now()) {
		t.Errorf("stored achievements = %+v", stored.Achievements)
	}

	again, err := svc.CheckAndUnlock(context.Background(), stored.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 || len(stored.Achievements) != 1 {
		t.Errorf("second call unlocked %v, stored %d", ids(again), len(stored.Achievements))
	}
}

func Test_achievementService_CheckAndUnlockEcoStarterOnce(t *testing.T) {
	svc, users, wastes := newTestService(t)

	stored := &entity.User{
		ID:                uuid.New(),
		EcoPoints:         55,
		TotalPointsEarned: 55,
		Achievements:      []entity.UserAchievement{{AchievementID: "first_upload"}},
	}
	wastes.EXPECT().CountByType(gomock.Any(), stored.ID).Return(map[string]int64{"Organic": 6}, nil).Times(2)
	users.EXPECT().Mutate(gomock.Any(), stored.ID, gomock.Any()).DoAndReturn(mutateOn(stored)).Times(2)

	got, _ := svc.CheckAndUnlock(context.Background(), stored.ID)
	if len(got) != 1 || got[0].ID != "fifty_points" {
		t.Fatalf("CheckAndUnlock() = %v", ids(got))
	}
	again, _ := svc.CheckAndUnlock(context.Background(), stored.ID)
	if len(again) != 0 {
		t.Errorf("Eco Starter unlocked twice: %v", ids(again))
	}
}

func Test_achievementService_CheckAndUnlockCountsFailure(t *testing.T) {
	svc, _, wastes := newTestService(t)

	wastes.EXPECT().CountByType(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	if _, err := svc.CheckAndUnlock(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}

func Test_achievementService_ListForUser(t *testing.T) {
	svc, users, _ := newTestService(t)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &entity.User{
		ID:           uuid.New(),
		Achievements: []entity.UserAchievement{{AchievementID: "first_upload", UnlockedAt: at}},
	}
	users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

	resp, err := svc.ListForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalCount != 7 || resp.UnlockedCount != 1 || len(resp.Achievements) != 7 {
		t.Fatalf("unexpected counts %+v", resp)
	}
	first := resp.Achievements[0]
	if !first.Unlocked || first.UnlockedAt == nil || !first.UnlockedAt.Equal(at) {
		t.Errorf("first achievement = %+v", first)
	}
	if resp.Achievements[1].Unlocked || resp.Achievements[1].UnlockedAt != nil {
		t.Errorf("second achievement = %+v", resp.Achievements[1])
	}
}
