package dto

import "time"

type AchievementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type AchievementStatusResponse struct {
	AchievementResponse
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}

type AchievementListResponse struct {
	Achievements  []AchievementStatusResponse `json:"achievements"`
	UnlockedCount int                         `json:"unlockedCount"`
	TotalCount    int                         `json:"totalCount"`
}
