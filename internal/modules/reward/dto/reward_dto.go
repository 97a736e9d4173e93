package dto

import (
	"encoding/json"
	"errors"
	"time"
)

// RewardID accepts both 2 and "2" on the wire.
type RewardID string

func (r *RewardID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = RewardID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("rewardId must be a string or a number")
	}
	*r = RewardID(n.String())
	return nil
}

type RedeemRequest struct {
	Points      int      `json:"points"`
	RewardID    RewardID `json:"rewardId" binding:"required"`
	RewardTitle string   `json:"rewardTitle" binding:"max=150"`
	RewardIcon  string   `json:"rewardIcon" binding:"max=32"`
	// nil means repeatable; only an explicit false makes a reward one-time.
	Repeatable *bool `json:"repeatable"`
}

type RedemptionResponse struct {
	RewardID    string    `json:"rewardId"`
	RewardTitle string    `json:"rewardTitle"`
	RewardIcon  string    `json:"rewardIcon"`
	Points      int       `json:"points"`
	RedeemedAt  time.Time `json:"redeemedAt"`
}

type RedeemResponse struct {
	Message    string             `json:"message"`
	EcoPoints  int                `json:"ecoPoints"`
	Redemption RedemptionResponse `json:"redemption"`
}

type RewardResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Cost        int    `json:"cost"`
	Repeatable  bool   `json:"repeatable"`
}

type RewardListResponse struct {
	Rewards []RewardResponse `json:"rewards"`
}
