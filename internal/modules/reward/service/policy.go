package service

import (
	"net/http"
	"time"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/pkg/apperror"
)

// Policy decides whether a reward may be redeemed. It never touches storage.
type Policy struct {
	DefaultIcon string
}

// AttemptRedeem checks cost against balance, then one-time rewards against
// history, and builds the record to append.
func (p Policy) AttemptRedeem(reward catalog.Reward, balance int, history []entity.Redemption, now time.Time) (entity.Redemption, error) {
	if reward.Cost <= 0 {
		return entity.Redemption{}, apperror.Validation("Invalid points amount.")
	}
	if balance < reward.Cost {
		return entity.Redemption{}, apperror.New(http.StatusBadRequest, "Insufficient points.", apperror.ErrInsufficientBalance)
	}

	if !reward.Repeatable {
		for _, r := range history {
			if r.RewardID == reward.ID {
				return entity.Redemption{}, apperror.New(http.StatusBadRequest,
					"This reward can only be redeemed once. You've already redeemed it.", apperror.ErrAlreadyRedeemed)
			}
		}
	}

	icon := reward.Icon
	if icon == "" {
		icon = p.DefaultIcon
	}

	return entity.Redemption{
		RewardID:    reward.ID,
		RewardTitle: reward.Title,
		RewardIcon:  icon,
		PointsSpent: reward.Cost,
		RedeemedAt:  now,
	}, nil
}
