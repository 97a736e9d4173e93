package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the eco account. EcoPoints is the spendable balance while
// TotalPointsEarned only ever grows; achievements and redemptions are
// append-only.
type User struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string            `gorm:"size:100;not null" json:"name"`
	Email             string            `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash      string            `gorm:"size:255;not null" json:"-"`
	EcoPoints         int               `gorm:"not null;default:0;check:eco_points >= 0" json:"ecoPoints"`
	TotalPointsEarned int               `gorm:"not null;default:0" json:"totalPointsEarned"`
	Version           int64             `gorm:"not null;default:0" json:"-"`
	Achievements      []UserAchievement `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"achievements"`
	Redemptions       []Redemption      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"redemptions"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasAchievement reports whether the achievement is already unlocked.
func (u *User) HasAchievement(achievementID string) bool {
	for _, a := range u.Achievements {
		if a.AchievementID == achievementID {
			return true
		}
	}
	return false
}

// PointsSpent sums every recorded redemption.
func (u *User) PointsSpent() int {
	total := 0
	for _, r := range u.Redemptions {
		total += r.PointsSpent
	}
	return total
}

type UserAchievement struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_achievement,priority:1;not null" json:"-"`
	AchievementID    string    `gorm:"size:64;uniqueIndex:idx_user_achievement,priority:2;not null" json:"achievementId"`
	AchievementTitle string    `gorm:"size:100" json:"achievementTitle"`
	UnlockedAt       time.Time `gorm:"not null" json:"unlockedAt"`
}

type Redemption struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_user_reward,priority:1;not null" json:"-"`
	RewardID    string    `gorm:"size:64;index:idx_user_reward,priority:2;not null" json:"rewardId"`
	RewardTitle string    `gorm:"size:150;not null" json:"rewardTitle"`
	RewardIcon  string    `gorm:"size:32" json:"rewardIcon"`
	PointsSpent int       `gorm:"not null" json:"points"`
	RedeemedAt  time.Time `gorm:"not null" json:"redeemedAt"`
}
