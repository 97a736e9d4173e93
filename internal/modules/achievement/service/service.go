package service

import (
	"context"
	"time"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/internal/modules/achievement/dto"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	wasteRepo "anoa.com/ecoinsight/internal/modules/waste/repository"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type AchievementService interface {
	// CheckAndUnlock persists and returns only the achievements unlocked by
	// this call.
	CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]catalog.Achievement, error)
	ListForUser(ctx context.Context, userID uuid.UUID) (*dto.AchievementListResponse, error)
}

type achievementService struct {
	users     userRepo.UserRepository
	wastes    wasteRepo.WasteRepository
	evaluator *Evaluator
	now       func() time.Time
}

func NewAchievementService(users userRepo.UserRepository, wastes wasteRepo.WasteRepository, evaluator *Evaluator) AchievementService {
	return &achievementService{
		users:     users,
		wastes:    wastes,
		evaluator: evaluator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *achievementService) CheckAndUnlock(ctx context.Context, userID uuid.UUID) ([]catalog.Achievement, error) {
	counts, err := s.wastes.CountByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newly []catalog.Achievement
	_, err = s.users.Mutate(ctx, userID, func(u *entity.User) error {
		newly = s.evaluator.Evaluate(NewStats(u, counts), unlockedSet(u))
		now := s.now()
		for _, a := range newly {
			u.Achievements = append(u.Achievements, entity.UserAchievement{
				UserID:           u.ID,
				AchievementID:    a.ID,
				AchievementTitle: a.Title,
				UnlockedAt:       now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return newly, nil
}

func (s *achievementService) ListForUser(ctx context.Context, userID uuid.UUID) (*dto.AchievementListResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(user.Achievements))
	for _, a := range user.Achievements {
		unlockedAt[a.AchievementID] = a.UnlockedAt
	}

	defs := s.evaluator.Definitions()
	resp := &dto.AchievementListResponse{
		Achievements: make([]dto.AchievementStatusResponse, 0, len(defs)),
		TotalCount:   len(defs),
	}
	for _, d := range defs {
		item := dto.AchievementStatusResponse{AchievementResponse: ToResponse(d)}
		if at, ok := unlockedAt[d.ID]; ok {
			at := at
			item.Unlocked = true
			item.UnlockedAt = &at
			resp.UnlockedCount++
		}
		resp.Achievements = append(resp.Achievements, item)
	}

	return resp, nil
}

func ToResponse(a catalog.Achievement) dto.AchievementResponse {
	return dto.AchievementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
	}
}

func ToResponses(list []catalog.Achievement) []dto.AchievementResponse {
	out := make([]dto.AchievementResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToResponse(a))
	}
	return out
}
