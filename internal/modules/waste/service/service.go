package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"anoa.com/ecoinsight/internal/entity"
	achievement "anoa.com/ecoinsight/internal/modules/achievement/service"
	ledger "anoa.com/ecoinsight/internal/modules/ledger/service"
	search "anoa.com/ecoinsight/internal/modules/search/service"
	"anoa.com/ecoinsight/internal/modules/waste/dto"
	"anoa.com/ecoinsight/internal/modules/waste/repository"
	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/classifier"
	"anoa.com/ecoinsight/pkg/ratelimiter"
	"anoa.com/ecoinsight/pkg/sanitizer"
	"anoa.com/ecoinsight/pkg/storage"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

const (
	imageFolder      = "waste"
	classifyAction   = "classify"
	maxDescriptionLn = 500
)

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".bmp": true,
}

type WasteService interface {
	Classify(ctx context.Context, userID uuid.UUID, input dto.ClassifyInput) (*dto.ClassifyResponse, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]dto.WasteRecordResponse, error)
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) (*dto.HistoryResponse, error)
}

type wasteService struct {
	repo               repository.WasteRepository
	classifier         classifier.Classifier
	imageStorage       storage.ImageStorage
	ledger             ledger.LedgerService
	achievementService achievement.AchievementService
	searchService      search.SearchService
	limiter            ratelimiter.Limiter
	pointsPerImage     int
}

// NewWasteService wires the classification flow. searchService and limiter
// may be nil.
func NewWasteService(
	repo repository.WasteRepository,
	cls classifier.Classifier,
	imageStorage storage.ImageStorage,
	ledgerService ledger.LedgerService,
	achievementService achievement.AchievementService,
	searchService search.SearchService,
	limiter ratelimiter.Limiter,
	pointsPerImage int,
) WasteService {
	return &wasteService{
		repo:               repo,
		classifier:         cls,
		imageStorage:       imageStorage,
		ledger:             ledgerService,
		achievementService: achievementService,
		searchService:      searchService,
		limiter:            limiter,
		pointsPerImage:     pointsPerImage,
	}
}

func (s *wasteService) Classify(ctx context.Context, userID uuid.UUID, input dto.ClassifyInput) (*dto.ClassifyResponse, error) {
	if input.Image.Reader == nil {
		return nil, apperror.Validation("No image uploaded")
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(input.Image.FileName)))
	if !allowedImageExt[ext] {
		return nil, apperror.Validation("Only image files are allowed")
	}
	description := sanitizer.Text(input.Description)
	if len(description) > maxDescriptionLn {
		return nil, apperror.Validation(fmt.Sprintf("Description must be at most %d characters long", maxDescriptionLn))
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, userID, classifyAction); err != nil {
			return nil, err
		}
	}

	tmp, err := os.CreateTemp("", "ecoinsight-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, input.Image.Reader); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}

	// 1. Classify
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	label, err := s.classifier.Classify(ctx, tmp, input.Image.FileName)
	if err != nil {
		if !errors.Is(err, apperror.ErrUpstreamUnavailable) {
			err = apperror.Upstream("Failed to connect to ML service", err)
		}
		log.Printf("❌ classification failed for user %s: %v", userID, err)
		return nil, err
	}

	// 2. Normalize
	category, known := entity.NormalizeCategory(label)
	if !known {
		log.Printf("⚠️ unmapped classifier label %q", label)
	}

	// 3. Store image and record
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	imageURL, err := s.imageStorage.UploadImage(ctx, tmp, imageFolder, input.Image.FileName)
	if err != nil {
		return nil, apperror.Upstream("Failed to upload image", err)
	}

	record := &entity.WasteRecord{
		UserID:       userID,
		WasteType:    category,
		RawLabel:     label,
		ImageURL:     imageURL,
		Description:  description,
		PointsEarned: s.pointsPerImage,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.removeImage(ctx, imageURL)
		return nil, err
	}

	// 4. Credit; an uncredited record must not remain
	user, err := s.ledger.Credit(ctx, userID, s.pointsPerImage)
	if err != nil {
		if delErr := s.repo.Delete(context.WithoutCancel(ctx), record.ID); delErr != nil {
			log.Printf("⚠️ failed to remove uncredited waste record %s: %v", record.ID, delErr)
		}
		s.removeImage(ctx, imageURL)
		return nil, err
	}

	// 5. Achievements never roll back the credit
	newAchievements, err := s.achievementService.CheckAndUnlock(ctx, userID)
	if err != nil {
		log.Printf("⚠️ achievement check failed for user %s: %v", userID, err)
		newAchievements = nil
	}
	for _, a := range newAchievements {
		log.Printf("🏆 user %s unlocked %s", userID, a.ID)
	}

	if s.searchService != nil {
		if err := s.searchService.IndexWaste(ctx, record); err != nil {
			log.Printf("⚠️ failed to index waste record %s: %v", record.ID, err)
		}
	}

	return &dto.ClassifyResponse{
		Message:         "Image classified successfully.",
		Prediction:      label,
		WasteType:       string(category),
		ImageURL:        imageURL,
		EcoPoints:       user.EcoPoints,
		PointsEarned:    s.pointsPerImage,
		WasteID:         record.ID,
		NewAchievements: achievement.ToResponses(newAchievements),
	}, nil
}

func (s *wasteService) removeImage(ctx context.Context, imageURL string) {
	if err := s.imageStorage.DeleteImage(context.WithoutCancel(ctx), imageURL); err != nil {
		log.Printf("⚠️ failed to clean up image %s: %v", imageURL, err)
	}
}

func (s *wasteService) History(ctx context.Context, userID uuid.UUID, limit int) ([]dto.WasteRecordResponse, error) {
	records, err := s.repo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toRecordResponses(records), nil
}

func (s *wasteService) Search(ctx context.Context, userID uuid.UUID, query string, limit int) (*dto.HistoryResponse, error) {
	if s.searchService == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "Search is not configured", apperror.ErrUpstreamUnavailable)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("Search query is required")
	}

	records, err := s.searchService.SearchWaste(ctx, userID, query, limit)
	if err != nil {
		return nil, apperror.Upstream("Search is temporarily unavailable", err)
	}
	return toHistoryResponse(records), nil
}

func toHistoryResponse(records []entity.WasteRecord) *dto.HistoryResponse {
	out := toRecordResponses(records)
	return &dto.HistoryResponse{Records: out, Count: len(out)}
}

// toRecordResponses never returns nil so an empty history encodes as [].
func toRecordResponses(records []entity.WasteRecord) []dto.WasteRecordResponse {
	out := make([]dto.WasteRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.WasteRecordResponse{
			ID:           r.ID,
			WasteType:    string(r.WasteType),
			Prediction:   r.RawLabel,
			ImageURL:     r.ImageURL,
			Description:  r.Description,
			PointsEarned: r.PointsEarned,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}
