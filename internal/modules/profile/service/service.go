package profile

import (
	"context"

	"anoa.com/ecoinsight/internal/entity"
	achievement "anoa.com/ecoinsight/internal/modules/achievement/service"
	"anoa.com/ecoinsight/internal/modules/profile/dto"
	userDto "anoa.com/ecoinsight/internal/modules/user/dto"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	wasteRepo "anoa.com/ecoinsight/internal/modules/waste/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

type ProfileService interface {
	GetPoints(ctx context.Context, userID uuid.UUID) (*dto.PointsResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
}

type profileService struct {
	users  userRepo.UserRepository
	wastes wasteRepo.WasteRepository
}

func NewProfileService(users userRepo.UserRepository, wastes wasteRepo.WasteRepository) ProfileService {
	return &profileService{users: users, wastes: wastes}
}

func (s *profileService) GetPoints(ctx context.Context, userID uuid.UUID) (*dto.PointsResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PointsResponse{
		EcoPoints: user.EcoPoints,
		User: userDto.PublicUser{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			EcoPoints: user.EcoPoints,
		},
	}, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	var (
		user   *entity.User
		counts map[string]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.FindByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.wastes.CountByType(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profileUser := dto.ProfileUser{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		EcoPoints:         user.EcoPoints,
		TotalPointsEarned: user.TotalPointsEarned,
		Achievements:      user.Achievements,
		Redemptions:       user.Redemptions,
		CreatedAt:         user.CreatedAt,
	}
	if profileUser.Achievements == nil {
		profileUser.Achievements = []entity.UserAchievement{}
	}
	if profileUser.Redemptions == nil {
		profileUser.Redemptions = []entity.Redemption{}
	}

	return &dto.ProfileResponse{
		User:  profileUser,
		Stats: achievement.NewStats(user, counts),
		Rank:  RankFor(user.TotalPointsEarned),
	}, nil
}
