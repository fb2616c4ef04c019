package weather

import (
	"time"

	"example.com/travlapes/backend/internal/models"
)

// Fixed month→season classification; no hemisphere awareness by contract.
var seasonByMonth = map[time.Month]models.Season{
	time.March:     models.SeasonSpring,
	time.April:     models.SeasonSpring,
	time.May:       models.SeasonSpring,
	time.June:      models.SeasonSummer,
	time.July:      models.SeasonSummer,
	time.August:    models.SeasonSummer,
	time.September: models.SeasonAutumn,
	time.October:   models.SeasonAutumn,
	time.November:  models.SeasonAutumn,
	time.December:  models.SeasonWinter,
	time.January:   models.SeasonWinter,
	time.February:  models.SeasonWinter,
}

// SeasonForDate возвращает сезон для календарной даты.
func SeasonForDate(date time.Time) models.Season {
	return seasonByMonth[date.Month()]
}
