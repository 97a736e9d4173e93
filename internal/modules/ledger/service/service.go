// Package service holds the points ledger. Every balance change goes through
// UserRepository.Mutate so it is serialized per account, and every change
// keeps ecoPoints == totalPointsEarned - sum(redemptions) with ecoPoints >= 0.
package service

import (
	"context"
	"fmt"

	"anoa.com/ecoinsight/internal/entity"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	"anoa.com/ecoinsight/pkg/apperror"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// SpendFunc validates a purchase against the locked account, appends its
// record and returns the amount to debit.
type SpendFunc func(user *entity.User) (int, error)

type LedgerService interface {
	Credit(ctx context.Context, userID uuid.UUID, amount int) (*entity.User, error)
	Debit(ctx context.Context, userID uuid.UUID, amount int) (*entity.User, error)
	// Spend runs fn and the matching debit as one atomic unit.
	Spend(ctx context.Context, userID uuid.UUID, fn SpendFunc) (*entity.User, error)
}

type ledgerService struct {
	users userRepo.UserRepository
}

func NewLedgerService(users userRepo.UserRepository) LedgerService {
	return &ledgerService{users: users}
}

func (s *ledgerService) Credit(ctx context.Context, userID uuid.UUID, amount int) (*entity.User, error) {
	if amount <= 0 {
		return nil, invalidAmount(amount)
	}
	return s.users.Mutate(ctx, userID, func(u *entity.User) error {
		return ApplyCredit(u, amount)
	})
}

func (s *ledgerService) Debit(ctx context.Context, userID uuid.UUID, amount int) (*entity.User, error) {
	if amount <= 0 {
		return nil, invalidAmount(amount)
	}
	return s.users.Mutate(ctx, userID, func(u *entity.User) error {
		return ApplyDebit(u, amount)
	})
}

func (s *ledgerService) Spend(ctx context.Context, userID uuid.UUID, fn SpendFunc) (*entity.User, error) {
	return s.users.Mutate(ctx, userID, func(u *entity.User) error {
		amount, err := fn(u)
		if err != nil {
			return err
		}
		return ApplyDebit(u, amount)
	})
}

// ApplyCredit adds earned points to both the balance and the lifetime total.
func ApplyCredit(u *entity.User, amount int) error {
	if amount <= 0 {
		return invalidAmount(amount)
	}
	u.EcoPoints += amount
	u.TotalPointsEarned += amount
	return nil
}

// ApplyDebit removes spent points from the balance only.
func ApplyDebit(u *entity.User, amount int) error {
	if amount <= 0 {
		return invalidAmount(amount)
	}
	if u.EcoPoints < amount {
		return fmt.Errorf("balance %d, need %d: %w", u.EcoPoints, amount, apperror.ErrInsufficientBalance)
	}
	u.EcoPoints -= amount
	return nil
}

func invalidAmount(amount int) error {
	return apperror.Validation(fmt.Sprintf("amount must be positive, got %d", amount))
}
