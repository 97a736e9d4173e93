package dto

import (
	"time"

	"anoa.com/ecoinsight/internal/entity"
	achievement "anoa.com/ecoinsight/internal/modules/achievement/service"
	userDto "anoa.com/ecoinsight/internal/modules/user/dto"
	"github.com/google/uuid"
)

// EcoRank is the permanent rank derived from lifetime points.
type EcoRank struct {
	Name          string  `json:"name"`
	Icon          string  `json:"icon"`
	NextRank      string  `json:"nextRank"`
	CurrentPoints int     `json:"currentPoints"`
	TargetPoints  int     `json:"targetPoints"`
	Progress      float64 `json:"progress"` // percent towards NextRank
}

type PointsResponse struct {
	EcoPoints int                `json:"ecoPoints"`
	User      userDto.PublicUser `json:"user"`
}

// ProfileUser is the account without its password hash.
type ProfileUser struct {
	ID                uuid.UUID                `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	EcoPoints         int                      `json:"ecoPoints"`
	TotalPointsEarned int                      `json:"totalPointsEarned"`
	Achievements      []entity.UserAchievement `json:"achievements"`
	Redemptions       []entity.Redemption      `json:"redemptions"`
	CreatedAt         time.Time                `json:"createdAt"`
}

type ProfileResponse struct {
	User  ProfileUser       `json:"user"`
	Stats achievement.Stats `json:"stats"`
	Rank  EcoRank           `json:"rank"`
}
