package profile

import (
	"math"

	"anoa.com/ecoinsight/internal/modules/profile/dto"
)

type rankTier struct {
	name   string
	icon   string
	points int
}

// Ascending by threshold. Ranks depend on lifetime points so spending never
// demotes a user.
var rankTiers = []rankTier{
	{"Seedling", "🌱", 0},
	{"Sprout", "🌿", 100},
	{"Sapling", "🪴", 500},
	{"Tree", "🌳", 2000},
	{"Forest", "🌲", 5000},
}

const maxLevel = "Max Level"

// RankFor calculates the eco rank for the given lifetime points.
func RankFor(totalPointsEarned int) dto.EcoRank {
	if totalPointsEarned < 0 {
		totalPointsEarned = 0
	}

	current := 0
	for i, tier := range rankTiers {
		if totalPointsEarned >= tier.points {
			current = i
		}
	}

	tier := rankTiers[current]
	rank := dto.EcoRank{
		Name:          tier.name,
		Icon:          tier.icon,
		CurrentPoints: totalPointsEarned,
	}

	if current == len(rankTiers)-1 {
		rank.NextRank = maxLevel
		rank.TargetPoints = tier.points
		rank.Progress = 100
		return rank
	}

	next := rankTiers[current+1]
	rank.NextRank = next.name
	rank.TargetPoints = next.points
	progress := float64(totalPointsEarned) / float64(next.points) * 100
	rank.Progress = math.Round(progress*100) / 100
	return rank
}
