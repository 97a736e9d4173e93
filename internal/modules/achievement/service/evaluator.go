package service

import (
	"fmt"

	"anoa.com/ecoinsight/internal/catalog"
	"anoa.com/ecoinsight/internal/entity"
)

// Statistic names usable in achievement requirements.
const (
	StatTotalUploads       = "total_uploads"
	StatTotalPointsEarned  = "total_points_earned"
	StatCurrentPoints      = "current_points"
	StatRecyclableCount    = "recyclable_count"
	StatOrganicCount       = "organic_count"
	StatHazardousCount     = "hazardous_count"
	StatNonRecyclableCount = "non_recyclable_count"
)

var categoryStats = map[string]entity.WasteCategory{
	StatRecyclableCount:    entity.CategoryRecyclable,
	StatOrganicCount:       entity.CategoryOrganic,
	StatHazardousCount:     entity.CategoryHazardous,
	StatNonRecyclableCount: entity.CategoryNonRecyclable,
}

type Stats struct {
	TotalUploads      int64                          `json:"totalUploads"`
	TotalPointsEarned int64                          `json:"totalPointsEarned"`
	CurrentPoints     int64                          `json:"currentPoints"`
	ByCategory        map[entity.WasteCategory]int64 `json:"byCategory"`
}

// NewStats folds stored per-type counts onto canonical categories, so
// "non_recyclable" and "Non-Recyclable" land in the same bucket. Unknown
// labels still count as uploads.
func NewStats(user *entity.User, counts map[string]int64) Stats {
	s := Stats{
		TotalPointsEarned: int64(user.TotalPointsEarned),
		CurrentPoints:     int64(user.EcoPoints),
		ByCategory:        make(map[entity.WasteCategory]int64, len(entity.Categories)),
	}
	for _, c := range entity.Categories {
		s.ByCategory[c] = 0
	}
	for label, n := range counts {
		s.TotalUploads += n
		if c, ok := entity.NormalizeCategory(label); ok {
			s.ByCategory[c] += n
		}
	}
	return s
}

func (s Stats) Value(name string) (int64, bool) {
	switch name {
	case StatTotalUploads:
		return s.TotalUploads, true
	case StatTotalPointsEarned:
		return s.TotalPointsEarned, true
	case StatCurrentPoints:
		return s.CurrentPoints, true
	}
	if c, ok := categoryStats[name]; ok {
		return s.ByCategory[c], true
	}
	return 0, false
}

type Evaluator struct {
	defs []catalog.Achievement
}

// NewEvaluator rejects definitions that reference unknown statistics.
func NewEvaluator(defs []catalog.Achievement) (*Evaluator, error) {
	var zero Stats
	for _, d := range defs {
		for name := range d.Requirements {
			if _, ok := zero.Value(name); !ok {
				return nil, fmt.Errorf("achievement %q: unknown statistic %q", d.ID, name)
			}
		}
	}
	return &Evaluator{defs: defs}, nil
}

func (e *Evaluator) Definitions() []catalog.Achievement {
	return e.defs
}

// Evaluate returns, in definition order, every achievement whose
// requirements all hold and whose id is not in unlocked.
func (e *Evaluator) Evaluate(stats Stats, unlocked map[string]bool) []catalog.Achievement {
	var out []catalog.Achievement
	for _, d := range e.defs {
		if unlocked[d.ID] {
			continue
		}
		if satisfies(stats, d.Requirements) {
			out = append(out, d)
		}
	}
	return out
}

func satisfies(stats Stats, requirements map[string]int64) bool {
	if len(requirements) == 0 {
		return false
	}
	for name, want := range requirements {
		v, ok := stats.Value(name)
		if !ok || v < want {
			return false
		}
	}
	return true
}

func unlockedSet(user *entity.User) map[string]bool {
	set := make(map[string]bool, len(user.Achievements))
	for _, a := range user.Achievements {
		set[a.AchievementID] = true
	}
	return set
}
