package repository

import (
	"context"

	"anoa.com/ecoinsight/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type WasteRepository interface {
	Create(ctx context.Context, record *entity.WasteRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByUserID returns the user's records newest first; limit <= 0 means all.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.WasteRecord, error)
	// CountByType counts records per stored waste type, as stored.
	CountByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
}

type wasteRepository struct {
	db *gorm.DB
}

func NewWasteRepository(db *gorm.DB) WasteRepository {
	return &wasteRepository{db: db}
}

func (r *wasteRepository) Create(ctx context.Context, record *entity.WasteRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *wasteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.WasteRecord{}, "id = ?", id).Error
}

func (r *wasteRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.WasteRecord, error) {
	var records []entity.WasteRecord
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *wasteRepository) CountByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		WasteType string
		Count     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.WasteRecord{}).
		Select("waste_type, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("waste_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.WasteType] = row.Count
	}
	return counts, nil
}
