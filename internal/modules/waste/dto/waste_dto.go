package dto

import (
	"io"
	"time"

	achievementDto "anoa.com/ecoinsight/internal/modules/achievement/dto"
	"github.com/google/uuid"
)

// ImageFile is an uploaded image as received from the client.
type ImageFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type ClassifyInput struct {
	Image       ImageFile
	Description string
}

type ClassifyResponse struct {
	Message         string                               `json:"message"`
	Prediction      string                               `json:"prediction"`
	WasteType       string                               `json:"wasteType"`
	ImageURL        string                               `json:"imageUrl"`
	EcoPoints       int                                  `json:"ecoPoints"`
	PointsEarned    int                                  `json:"pointsEarned"`
	WasteID         uuid.UUID                            `json:"wasteId"`
	NewAchievements []achievementDto.AchievementResponse `json:"newAchievements"`
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SearchQuery struct {
	Query string `form:"q" binding:"required,max=200"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type WasteRecordResponse struct {
	ID           uuid.UUID `json:"id"`
	WasteType    string    `json:"wasteType"`
	Prediction   string    `json:"prediction"`
	ImageURL     string    `json:"imageUrl"`
	Description  string    `json:"description"`
	PointsEarned int       `json:"pointsEarned"`
	CreatedAt    time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	Records []WasteRecordResponse `json:"records"`
	Count   int                   `json:"count"`
}
