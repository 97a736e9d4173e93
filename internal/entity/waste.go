package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WasteCategory string

const (
	CategoryRecyclable    WasteCategory = "Recyclable"
	CategoryOrganic       WasteCategory = "Organic"
	CategoryHazardous     WasteCategory = "Hazardous"
	CategoryNonRecyclable WasteCategory = "Non-Recyclable"
)

// Categories lists the canonical categories in display order.
var Categories = []WasteCategory{
	CategoryRecyclable,
	CategoryOrganic,
	CategoryHazardous,
	CategoryNonRecyclable,
}

// keys are labels folded by foldLabel
var categoryAliases = map[string]WasteCategory{
	"recyclable":    CategoryRecyclable,
	"recycle":       CategoryRecyclable,
	"organic":       CategoryOrganic,
	"hazardous":     CategoryHazardous,
	"hazard":        CategoryHazardous,
	"nonrecyclable": CategoryNonRecyclable,
}

// NormalizeCategory maps a classifier or stored label onto its canonical
// category. Unknown labels come back trimmed but otherwise unchanged with
// ok=false.
func NormalizeCategory(label string) (WasteCategory, bool) {
	if c, ok := categoryAliases[foldLabel(label)]; ok {
		return c, true
	}
	return WasteCategory(strings.TrimSpace(label)), false
}

func foldLabel(label string) string {
	folded := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(label)))
	// "Organic Waste" and friends
	if trimmed := strings.TrimSuffix(folded, "waste"); trimmed != "" {
		folded = trimmed
	}
	return folded
}

type WasteRecord struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID     `gorm:"type:uuid;index:idx_waste_user_created,priority:1;not null" json:"userId"`
	WasteType    WasteCategory `gorm:"type:text;not null" json:"wasteType"`
	RawLabel     string        `gorm:"type:text" json:"prediction"`
	ImageURL     string        `gorm:"type:text;not null" json:"imageUrl"`
	Description  string        `gorm:"type:text" json:"description"`
	PointsEarned int           `gorm:"not null;default:0" json:"pointsEarned"`
	CreatedAt    time.Time     `gorm:"autoCreateTime;index:idx_waste_user_created,priority:2" json:"createdAt"`
}

func (w *WasteRecord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
