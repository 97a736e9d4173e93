package repository

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// MutateFunc edits a loaded account in place. Achievements and redemptions
// may only be appended to. Returning an error discards every change.
type MutateFunc func(user *entity.User) error

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Mutate loads the account, applies fn and persists the result as one
	// atomic unit serialized against other Mutate calls for the same user.
	// fn may run more than once.
	Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*entity.User, error)
	Ping(ctx context.Context) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("email %s: %w", user.Email, apperror.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(r.db.WithContext(ctx), "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(r.db.WithContext(ctx), "email = ?", email)
}

func (r *userRepository) findOne(tx *gorm.DB, query string, arg any) (*entity.User, error) {
	var user entity.User
	if err := tx.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if err := loadHistory(tx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*entity.User, error) {
	var out *entity.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.ErrNotFound
			}
			return err
		}
		if err := loadHistory(tx, &user); err != nil {
			return err
		}

		before := takeSnapshot(&user)
		if err := fn(&user); err != nil {
			return err
		}
		changed, err := before.diff(&user)
		if err != nil {
			return err
		}
		if !changed {
			out = &user
			return nil
		}

		if newAch := user.Achievements[before.achievements:]; len(newAch) > 0 {
			for i := range newAch {
				newAch[i].UserID = user.ID
			}
			if err := tx.Create(&newAch).Error; err != nil {
				return err
			}
		}
		if newRed := user.Redemptions[before.redemptions:]; len(newRed) > 0 {
			for i := range newRed {
				newRed[i].UserID = user.ID
			}
			if err := tx.Create(&newRed).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&entity.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"eco_points":          user.EcoPoints,
				"total_points_earned": user.TotalPointsEarned,
				"version":             gorm.Expr("version + 1"),
			}).Error; err != nil {
			return err
		}
		user.Version++

		out = &user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *userRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func loadHistory(tx *gorm.DB, user *entity.User) error {
	if err := tx.Where("user_id = ?", user.ID).
		Order("unlocked_at ASC, id ASC").
		Find(&user.Achievements).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", user.ID).
		Order("redeemed_at ASC, id ASC").
		Find(&user.Redemptions).Error
}

type snapshot struct {
	ecoPoints    int
	totalEarned  int
	achievements int
	redemptions  int
}

func takeSnapshot(u *entity.User) snapshot {
	return snapshot{
		ecoPoints:    u.EcoPoints,
		totalEarned:  u.TotalPointsEarned,
		achievements: len(u.Achievements),
		redemptions:  len(u.Redemptions),
	}
}

// diff reports whether u moved away from s and rejects edits that shrink the
// append-only histories or break the balance floor.
func (s snapshot) diff(u *entity.User) (bool, error) {
	if len(u.Achievements) < s.achievements || len(u.Redemptions) < s.redemptions {
		return false, fmt.Errorf("account %s: history is append-only", u.ID)
	}
	if u.EcoPoints < 0 {
		return false, fmt.Errorf("account %s: balance would go negative: %w", u.ID, apperror.ErrInsufficientBalance)
	}
	if u.TotalPointsEarned < s.totalEarned {
		return false, fmt.Errorf("account %s: lifetime points cannot decrease", u.ID)
	}
	return takeSnapshot(u) != s, nil
}
