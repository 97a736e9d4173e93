package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"anoa.com/ecoinsight/internal/entity"
	"anoa.com/ecoinsight/pkg/sanitizer"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

const WasteIndex = "waste_records"

type SearchService interface {
	IndexWaste(ctx context.Context, record *entity.WasteRecord) error
	// SearchWaste only ever returns records owned by userID.
	SearchWaste(ctx context.Context, userID uuid.UUID, query string, limit int) ([]entity.WasteRecord, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"user_id", "waste_type"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(WasteIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update waste filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(WasteIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update waste sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliWasteDoc struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	WasteType    string `json:"waste_type"`
	Prediction   string `json:"prediction"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	PointsEarned int    `json:"points_earned"`
	CreatedAt    int64  `json:"created_at"`
}

func toDoc(r *entity.WasteRecord) meiliWasteDoc {
	return meiliWasteDoc{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		WasteType:    string(r.WasteType),
		Prediction:   r.RawLabel,
		Description:  sanitizer.Text(r.Description),
		ImageURL:     r.ImageURL,
		PointsEarned: r.PointsEarned,
		CreatedAt:    r.CreatedAt.Unix(),
	}
}

func (d meiliWasteDoc) toRecord() entity.WasteRecord {
	id, _ := uuid.Parse(d.ID)
	userID, _ := uuid.Parse(d.UserID)
	return entity.WasteRecord{
		ID:           id,
		UserID:       userID,
		WasteType:    entity.WasteCategory(d.WasteType),
		RawLabel:     d.Prediction,
		ImageURL:     d.ImageURL,
		Description:  d.Description,
		PointsEarned: d.PointsEarned,
		CreatedAt:    time.Unix(d.CreatedAt, 0).UTC(),
	}
}

func (s *meiliSearchService) IndexWaste(ctx context.Context, record *entity.WasteRecord) error {
	task, err := s.client.Index(WasteIndex).AddDocumentsWithContext(ctx, []meiliWasteDoc{toDoc(record)}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed waste record %s, task id: %d", record.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) SearchWaste(ctx context.Context, userID uuid.UUID, query string, limit int) ([]entity.WasteRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	raw, err := s.client.Index(WasteIndex).SearchRawWithContext(ctx, query, &meilisearch.SearchRequest{
		Filter: ownerFilter(userID),
		Sort:   []string{"created_at:desc"},
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []meiliWasteDoc `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	records := make([]entity.WasteRecord, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		// the filter already scopes hits; this guards a misconfigured index
		if hit.UserID != userID.String() {
			continue
		}
		records = append(records, hit.toRecord())
	}
	return records, nil
}

func ownerFilter(userID uuid.UUID) string {
	return fmt.Sprintf("user_id = %q", userID.String())
}

func strPtr(s string) *string {
	return &s
}
