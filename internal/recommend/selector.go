package recommend

import (
	"fmt"
	"sort"
	"time"

	"example.com/travlapes/backend/internal/models"
)

// Radius (km) around the primary picks within which dependent tiers survive.
const (
	secondaryRadiusKm     = 2.5
	foodRadiusKm          = 1.5
	accommodationRadiusKm = 2.0
)

// Share of the running budget granted to each tier, in acceptance order.
const (
	accommodationBudgetShare = 0.3
	foodBudgetShare          = 0.3
	primaryBudgetShare       = 0.3
	secondaryBudgetShare     = 0.1
)

// scoredPlace is selector-internal; scores are never persisted.
type scoredPlace struct {
	score int
	place models.Destination
}

type Tier struct {
	Places      []models.Destination `json:"data"`
	Recommended int                  `json:"recommended"`
}

type Selection struct {
	Primary        Tier `json:"primary"`
	Secondary      Tier `json:"secondary"`
	Food           Tier `json:"food"`
	Accommodations Tier `json:"accommodations"`
}

type Selector struct {
	tables Tables
}

// NewSelector создает селектор с таблицами соответствия настроений.
func NewSelector(tables Tables) *Selector {
	return &Selector{tables: tables}
}

// TripDays возвращает число дней поездки для включительного диапазона дат.
func TripDays(fromDate, toDate time.Time) int {
	from := fromDate.Truncate(24 * time.Hour)
	to := toDate.Truncate(24 * time.Hour)
	return int(to.Sub(from).Hours()/24) + 1
}

// Select распределяет пул мест по четырем ярусам с учетом бюджета.
//
// Tier ordering is descending by score + rating. Budget is consumed
// sequentially: accommodation, food, primary, secondary; each tier's
// greedy pass depletes both its own sub-pool and the running budget,
// so a negative balance can never occur.
func (s *Selector) Select(pool []models.Destination, fromDate, toDate time.Time, moods []models.Mood, budget float64) (Selection, error) {
	for _, mood := range moods {
		if _, ok := s.tables.Categories[mood]; !ok {
			return Selection{}, fmt.Errorf("no categories mapped for mood %q", mood)
		}
	}

	tripDays := TripDays(fromDate, toDate)

	primary := s.scorePrimary(pool, moods)

	// Places already picked as primary never compete for the secondary tier.
	primaryIDs := make(map[int64]struct{}, len(primary))
	for _, entry := range primary {
		primaryIDs[entry.place.ID] = struct{}{}
	}

	remainder := make([]models.Destination, 0, len(pool))
	for _, place := range pool {
		if _, used := primaryIDs[place.ID]; !used {
			remainder = append(remainder, place)
		}
	}

	secondary := s.scoreSecondary(remainder, moods)
	food := s.scoreFood(pool, moods)
	accommodations := s.scoreAccommodations(pool, moods)

	secondary = filterWithinRadius(primary, secondary, secondaryRadiusKm)
	food = filterWithinRadius(primary, food, foodRadiusKm)
	accommodations = filterWithinRadius(primary, accommodations, accommodationRadiusKm)

	sortByScoreAndRating(primary)
	sortByScoreAndRating(secondary)
	sortByScoreAndRating(food)
	sortByScoreAndRating(accommodations)

	if tripDays <= 1 {
		// Single-day trips never need a stay.
		accommodations = nil
	}

	var recommendedAccommodations, recommendedFood, recommendedPrimary, recommendedSecondary int

	// A zero or negative budget is valid input: nothing gets recommended.
	if budget > 0 {
		if tripDays > 1 {
			recommendedAccommodations, budget = pickAccommodation(accommodations, budget, tripDays)
		}
		recommendedFood, budget = greedyPick(food, budget, foodBudgetShare)
		recommendedPrimary, budget = greedyPick(primary, budget, primaryBudgetShare)
		recommendedSecondary, _ = greedyPick(secondary, budget, secondaryBudgetShare)
	}

	return Selection{
		Primary:        Tier{Places: places(primary), Recommended: recommendedPrimary},
		Secondary:      Tier{Places: places(secondary), Recommended: recommendedSecondary},
		Food:           Tier{Places: places(food), Recommended: recommendedFood},
		Accommodations: Tier{Places: places(accommodations), Recommended: recommendedAccommodations},
	}, nil
}

// scorePrimary admits places whose category serves a requested mood and
// whose compatibility tags include that mood.
func (s *Selector) scorePrimary(pool []models.Destination, moods []models.Mood) []scoredPlace {
	scored := make([]scoredPlace, 0, len(pool))

	for _, place := range pool {
		score := 0
		for _, mood := range moods {
			if !containsCategory(s.tables.Categories[mood], place.Category) {
				continue
			}
			if containsMood(place.CompatibleMoods, mood) {
				score++
			}
		}

		if score > 0 {
			scored = append(scored, scoredPlace{score: score, place: place})
		}
	}

	return scored
}

// scoreSecondary admits places matching a complementary mood of any
// requested mood. Operates on the pool with primary picks removed.
func (s *Selector) scoreSecondary(pool []models.Destination, moods []models.Mood) []scoredPlace {
	scored := make([]scoredPlace, 0, len(pool))

	for _, place := range pool {
		score := 0
		for _, mood := range moods {
			for _, complement := range s.tables.Complements[mood] {
				if !containsCategory(s.tables.Categories[complement], place.Category) {
					continue
				}
				if containsMood(place.CompatibleMoods, complement) {
					score++
				}
			}
		}

		if score > 0 {
			scored = append(scored, scoredPlace{score: score, place: place})
		}
	}

	return scored
}

// scoreFood собирает рестораны; пропускается, если food среди настроений.
func (s *Selector) scoreFood(pool []models.Destination, moods []models.Mood) []scoredPlace {
	if containsMood(moods, models.MoodFood) {
		// Restaurants are then already handled by the primary tier.
		return nil
	}

	return scoreByCategory(pool, moods, models.CategoryRestaurant)
}

// scoreAccommodations собирает места размещения из полного пула.
func (s *Selector) scoreAccommodations(pool []models.Destination, moods []models.Mood) []scoredPlace {
	return scoreByCategory(pool, moods, models.CategoryAccommodations)
}

func scoreByCategory(pool []models.Destination, moods []models.Mood, category models.Category) []scoredPlace {
	scored := make([]scoredPlace, 0)

	for _, place := range pool {
		if place.Category != category {
			continue
		}

		score := 0
		for _, mood := range moods {
			if containsMood(place.CompatibleMoods, mood) {
				score++
			}
		}

		if score > 0 {
			scored = append(scored, scoredPlace{score: score, place: place})
		}
	}

	return scored
}

// pickAccommodation accepts at most one stay: the best-ranked place whose
// whole-trip cost (per-night price times nights) fits 30% of the budget.
func pickAccommodation(ranked []scoredPlace, budget float64, tripDays int) (int, float64) {
	subBudget := budget * accommodationBudgetShare

	for _, entry := range ranked {
		cost := entry.place.AvgPrice * float64(tripDays-1)
		if cost <= subBudget {
			return 1, budget - cost
		}
	}

	return 0, budget
}

// greedyPick walks the ranked list accepting every place that still fits the
// tier's remaining sub-pool, depleting the running budget as it goes.
func greedyPick(ranked []scoredPlace, budget float64, share float64) (int, float64) {
	subBudget := budget * share
	recommended := 0

	for _, entry := range ranked {
		if entry.place.AvgPrice <= subBudget {
			subBudget -= entry.place.AvgPrice
			budget -= entry.place.AvgPrice
			recommended++
		}
	}

	return recommended, budget
}

func sortByScoreAndRating(entries []scoredPlace) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := float64(entries[i].score) + entries[i].place.Rating
		right := float64(entries[j].score) + entries[j].place.Rating
		return left > right
	})
}

func places(entries []scoredPlace) []models.Destination {
	out := make([]models.Destination, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.place)
	}
	return out
}

func containsMood(haystack []models.Mood, needle models.Mood) bool {
	for _, mood := range haystack {
		if mood == needle {
			return true
		}
	}
	return false
}

func containsCategory(haystack []models.Category, needle models.Category) bool {
	for _, category := range haystack {
		if category == needle {
			return true
		}
	}
	return false
}

// TakeRecommended slices a ranked tier by its recommended count. Historical
// clients iterated one past the count, showing a single unaffordable bonus
// item; includeBonus reproduces that reading.
func TakeRecommended(tier Tier, includeBonus bool) []models.Destination {
	n := tier.Recommended
	if includeBonus && n > 0 {
		n++
	}
	if n > len(tier.Places) {
		n = len(tier.Places)
	}

	return tier.Places[:n]
}
