package recommend

import "example.com/travlapes/backend/internal/models"

// Tables holds the static mood lookup data the selector scores against.
// Built once at startup and passed by reference; never mutated afterwards.
type Tables struct {
	Categories  map[models.Mood][]models.Category
	Complements map[models.Mood][]models.Mood
}

// DefaultTables возвращает стандартные таблицы соответствия настроений.
func DefaultTables() Tables {
	return Tables{
		Categories: map[models.Mood][]models.Category{
			models.MoodFood:          {models.CategoryRestaurant},
			models.MoodEntertainment: {models.CategoryPark, models.CategoryPicnicSite},
			models.MoodCultural:      {models.CategoryHeritage, models.CategoryTemple},
			models.MoodPeaceful:      {models.CategoryLakes, models.CategoryPicnicSite, models.CategoryTemple},
			models.MoodAdventurous:   {models.CategoryPeaks, models.CategoryRivers, models.CategoryWaterfalls},
			models.MoodNature:        {models.CategoryPeaks, models.CategoryLakes, models.CategoryRivers, models.CategoryWaterfalls, models.CategoryPark},
		},
		Complements: map[models.Mood][]models.Mood{
			models.MoodFood:          {models.MoodEntertainment, models.MoodCultural, models.MoodPeaceful},
			models.MoodEntertainment: {models.MoodFood, models.MoodNature},
			models.MoodCultural:      {models.MoodPeaceful, models.MoodFood},
			models.MoodPeaceful:      {models.MoodNature, models.MoodCultural},
			models.MoodAdventurous:   {models.MoodNature, models.MoodEntertainment},
			models.MoodNature:        {models.MoodPeaceful, models.MoodAdventurous},
		},
	}
}
