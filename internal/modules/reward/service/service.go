package service

import (
	"context"
	"strings"
	"time"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/entity"
	ledger "anoa.com/ecoinsight/internal/modules/ledger/service"
	"anoa.com/ecoinsight/internal/modules/reward/dto"
	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/sanitizer"
	"github.com/google/uuid"
)

type RewardService interface {
	Redeem(ctx context.Context, userID uuid.UUID, req dto.RedeemRequest) (*dto.RedeemResponse, error)
	Catalog() *dto.RewardListResponse
}

type rewardService struct {
	ledger  ledger.LedgerService
	catalog *catalog.Catalog
	policy  Policy
	now     func() time.Time
}

func NewRewardService(ledgerService ledger.LedgerService, cat *catalog.Catalog) RewardService {
	return &rewardService{
		ledger:  ledgerService,
		catalog: cat,
		policy:  Policy{DefaultIcon: cat.DefaultRewardIcon},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *rewardService) Redeem(ctx context.Context, userID uuid.UUID, req dto.RedeemRequest) (*dto.RedeemResponse, error) {
	reward, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	var redemption entity.Redemption
	user, err := s.ledger.Spend(ctx, userID, func(u *entity.User) (int, error) {
		rec, err := s.policy.AttemptRedeem(reward, u.EcoPoints, u.Redemptions, s.now())
		if err != nil {
			return 0, err
		}
		rec.UserID = u.ID
		u.Redemptions = append(u.Redemptions, rec)
		redemption = rec
		return rec.PointsSpent, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.RedeemResponse{
		Message:   "Points redeemed successfully.",
		EcoPoints: user.EcoPoints,
		Redemption: dto.RedemptionResponse{
			RewardID:    redemption.RewardID,
			RewardTitle: redemption.RewardTitle,
			RewardIcon:  redemption.RewardIcon,
			Points:      redemption.PointsSpent,
			RedeemedAt:  redemption.RedeemedAt,
		},
	}, nil
}

// resolve prefers the catalog entry for known ids. Unknown ids are taken as
// described by the client.
func (s *rewardService) resolve(req dto.RedeemRequest) (catalog.Reward, error) {
	id := strings.TrimSpace(string(req.RewardID))
	if id == "" {
		return catalog.Reward{}, apperror.Validation("Reward id is required.")
	}

	if r, ok := s.catalog.Reward(id); ok {
		if req.Points != 0 && req.Points != r.Cost {
			return catalog.Reward{}, apperror.Validation("Reward cost does not match the catalog.")
		}
		return r, nil
	}

	if req.Points <= 0 {
		return catalog.Reward{}, apperror.Validation("Invalid points amount.")
	}
	title := sanitizer.Text(req.RewardTitle)
	if title == "" {
		return catalog.Reward{}, apperror.Validation("Reward title is required.")
	}

	return catalog.Reward{
		ID:         id,
		Title:      title,
		Icon:       sanitizer.Text(req.RewardIcon),
		Cost:       req.Points,
		Repeatable: req.Repeatable == nil || *req.Repeatable,
	}, nil
}

func (s *rewardService) Catalog() *dto.RewardListResponse {
	resp := &dto.RewardListResponse{Rewards: make([]dto.RewardResponse, 0, len(s.catalog.Rewards))}
	for _, r := range s.catalog.Rewards {
		icon := r.Icon
		if icon == "" {
			icon = s.catalog.DefaultRewardIcon
		}
		resp.Rewards = append(resp.Rewards, dto.RewardResponse{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Icon:        icon,
			Cost:        r.Cost,
			Repeatable:  r.Repeatable,
		})
	}
	return resp
}
