package recommend

import (
	"context"
	"fmt"
	"time"

	"example.com/travlapes/backend/internal/models"
)

// WeatherSource classifies the weather at a coordinate for a calendar date.
type WeatherSource interface {
	WeatherForDate(ctx context.Context, latitude, longitude float64, date time.Time) (models.Weather, error)
}

// SeasonSource classifies a calendar date into a season. Pure, no I/O.
type SeasonSource func(date time.Time) models.Season

// DayPlan holds one trip day's assignments. Food and accommodation lists are
// not split per day: every day carries the full list.
type DayPlan struct {
	PrimaryAttractions   []models.Destination `json:"primary_attraction"`
	SecondaryAttractions []models.Destination `json:"secondary_attraction"`
	FoodPlaces           []models.Destination `json:"food_places"`
	Accommodations       []models.Destination `json:"accommodations"`
}

type Scheduler struct {
	weather WeatherSource
	season  SeasonSource
}

// NewScheduler создает планировщик дней поездки.
func NewScheduler(weather WeatherSource, season SeasonSource) *Scheduler {
	return &Scheduler{weather: weather, season: season}
}

// dayEnvironment is the precomputed season/weather classification per day.
type dayEnvironment struct {
	seasons []models.Season
	weather []models.Weather
}

// dayCursor walks trip days in a wrapping round-robin. It is shared between
// the primary and secondary passes: the second pass continues from wherever
// the first one stopped.
type dayCursor struct {
	day      int
	tripDays int
}

func (c *dayCursor) advance() {
	c.day = (c.day + 1) % c.tripDays
}

// Distribute раскладывает выбранные места по дням поездки.
//
// Each attraction is tried against successive days' season and weather
// suitability; after tripDays failed attempts it is dropped silently.
// Weather is sampled once per day at the first primary attraction's
// coordinates. A weather lookup failure aborts the whole request.
func (s *Scheduler) Distribute(
	ctx context.Context,
	primary, secondary, food, accommodations []models.Destination,
	fromDate, toDate time.Time,
) (map[int]DayPlan, error) {
	tripDays := TripDays(fromDate, toDate)

	days := make(map[int]DayPlan, tripDays)
	for i := 1; i <= tripDays; i++ {
		days[i] = DayPlan{
			PrimaryAttractions:   []models.Destination{},
			SecondaryAttractions: []models.Destination{},
			FoodPlaces:           food,
			Accommodations:       accommodations,
		}
	}

	// Without a primary anchor there is nothing to sample weather at and
	// nothing to place.
	if len(primary) == 0 {
		return days, nil
	}

	env, err := s.buildEnvironment(ctx, primary[0], fromDate, tripDays)
	if err != nil {
		return nil, err
	}

	cursor := &dayCursor{tripDays: tripDays}

	s.placeRoundRobin(primary, cursor, env, func(day int, place models.Destination) {
		plan := days[day]
		plan.PrimaryAttractions = append(plan.PrimaryAttractions, place)
		days[day] = plan
	})
	s.placeRoundRobin(secondary, cursor, env, func(day int, place models.Destination) {
		plan := days[day]
		plan.SecondaryAttractions = append(plan.SecondaryAttractions, place)
		days[day] = plan
	})

	return days, nil
}

func (s *Scheduler) buildEnvironment(ctx context.Context, anchor models.Destination, fromDate time.Time, tripDays int) (dayEnvironment, error) {
	env := dayEnvironment{
		seasons: make([]models.Season, 0, tripDays),
		weather: make([]models.Weather, 0, tripDays),
	}

	for i := 0; i < tripDays; i++ {
		date := fromDate.AddDate(0, 0, i)
		env.seasons = append(env.seasons, s.season(date))

		weather, err := s.weather.WeatherForDate(ctx, anchor.Latitude, anchor.Longitude, date)
		if err != nil {
			return dayEnvironment{}, fmt.Errorf("weather for %s: %w", date.Format("2006-01-02"), err)
		}
		env.weather = append(env.weather, weather)
	}

	return env, nil
}

// placeRoundRobin assigns places to days in ranked order. Every place gets
// up to tripDays attempts on consecutive days; the cursor advances whether
// or not an attempt succeeds, so assignments spread across the trip.
func (s *Scheduler) placeRoundRobin(ordered []models.Destination, cursor *dayCursor, env dayEnvironment, assign func(day int, place models.Destination)) {
	for _, place := range ordered {
		for attempts := 0; attempts < cursor.tripDays; attempts++ {
			day := cursor.day
			suits := containsSeason(place.SuitableSeasons, env.seasons[day]) &&
				containsWeather(place.SuitableWeather, env.weather[day])
			cursor.advance()

			if suits {
				assign(day+1, place)
				break
			}
		}
		// Exhausted attempts drop the place without an assignment.
	}
}

func containsSeason(haystack []models.Season, needle models.Season) bool {
	for _, season := range haystack {
		if season == needle {
			return true
		}
	}
	return false
}

func containsWeather(haystack []models.Weather, needle models.Weather) bool {
	for _, weather := range haystack {
		if weather == needle {
			return true
		}
	}
	return false
}
