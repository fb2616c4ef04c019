package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"example.com/travlapes/backend/internal/models"
)

// stubWeather отдает фиксированную погоду и записывает параметры запросов.
type stubWeather struct {
	byDate   map[string]models.Weather
	err      error
	calls    int
	lat, lon float64
}

func (s *stubWeather) WeatherForDate(_ context.Context, latitude, longitude float64, date time.Time) (models.Weather, error) {
	if s.err != nil {
		return "", s.err
	}

	s.calls++
	s.lat, s.lon = latitude, longitude

	if weather, ok := s.byDate[date.Format("2006-01-02")]; ok {
		return weather, nil
	}
	return models.WeatherSunny, nil
}

func winterOnly(time.Time) models.Season {
	return models.SeasonWinter
}

func newTestScheduler(weather WeatherSource) *Scheduler {
	return NewScheduler(weather, winterOnly)
}

// TestDistributeRoundRobin проверяет раскладку primary по дням по кругу.
func TestDistributeRoundRobin(t *testing.T) {
	scheduler := newTestScheduler(&stubWeather{})
	primary := []models.Destination{
		testPlace(1, models.CategoryPark, 0, 5.0, baseLat, baseLon, models.MoodEntertainment),
		testPlace(2, models.CategoryPark, 0, 4.0, baseLat, baseLon, models.MoodEntertainment),
		testPlace(3, models.CategoryPark, 0, 3.0, baseLat, baseLon, models.MoodEntertainment),
	}
	food := []models.Destination{
		testPlace(4, models.CategoryRestaurant, 0, 4.0, baseLat, baseLon, models.MoodEntertainment),
	}

	days, err := scheduler.Distribute(context.Background(), primary, nil, food, nil, day(t, "2025-12-20"), day(t, "2025-12-22"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}

	for i := 1; i <= 3; i++ {
		plan := days[i]
		if len(plan.PrimaryAttractions) != 1 || plan.PrimaryAttractions[0].ID != int64(i) {
			t.Fatalf("day %d: expected place %d, got %+v", i, i, plan.PrimaryAttractions)
		}
		// Food is not split per day.
		if len(plan.FoodPlaces) != 1 {
			t.Fatalf("day %d: expected full food list, got %+v", i, plan.FoodPlaces)
		}
	}
}

// TestDistributeDropsUnsuitable проверяет исключение места после всех попыток.
func TestDistributeDropsUnsuitable(t *testing.T) {
	scheduler := newTestScheduler(&stubWeather{})
	summerPeak := testPlace(1, models.CategoryPeaks, 0, 5.0, baseLat, baseLon, models.MoodAdventurous)
	summerPeak.SuitableSeasons = []models.Season{models.SeasonSummer}

	primary := []models.Destination{
		summerPeak,
		testPlace(2, models.CategoryPark, 0, 4.0, baseLat, baseLon, models.MoodEntertainment),
	}

	days, err := scheduler.Distribute(context.Background(), primary, nil, nil, nil, day(t, "2025-12-20"), day(t, "2025-12-21"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i, plan := range days {
		for _, place := range plan.PrimaryAttractions {
			if place.ID == 1 {
				t.Fatalf("day %d: expected winter trip to drop the summer peak", i)
			}
		}
	}

	// The cursor wraps back after the failed attempts, so the park still
	// lands on day one.
	if len(days[1].PrimaryAttractions) != 1 || days[1].PrimaryAttractions[0].ID != 2 {
		t.Fatalf("expected park on day 1, got %+v", days[1].PrimaryAttractions)
	}
}

// TestDistributeSharedCursor проверяет общий указатель дня между ярусами.
func TestDistributeSharedCursor(t *testing.T) {
	scheduler := newTestScheduler(&stubWeather{})
	primary := []models.Destination{
		testPlace(1, models.CategoryPark, 0, 5.0, baseLat, baseLon, models.MoodEntertainment),
	}
	secondary := []models.Destination{
		testPlace(2, models.CategoryLakes, 0, 4.0, baseLat, baseLon, models.MoodNature),
	}

	days, err := scheduler.Distribute(context.Background(), primary, secondary, nil, nil, day(t, "2025-12-20"), day(t, "2025-12-21"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(days[1].PrimaryAttractions) != 1 || days[1].PrimaryAttractions[0].ID != 1 {
		t.Fatalf("expected park on day 1, got %+v", days[1].PrimaryAttractions)
	}
	// The secondary pass continues from where the primary pass stopped.
	if len(days[2].SecondaryAttractions) != 1 || days[2].SecondaryAttractions[0].ID != 2 {
		t.Fatalf("expected lake on day 2, got %+v", days[2].SecondaryAttractions)
	}
}

// TestDistributeEmptyPrimary проверяет, что без primary погода не запрашивается.
func TestDistributeEmptyPrimary(t *testing.T) {
	weather := &stubWeather{err: errors.New("must not be called")}
	scheduler := newTestScheduler(weather)
	secondary := []models.Destination{
		testPlace(1, models.CategoryLakes, 0, 4.0, baseLat, baseLon, models.MoodNature),
	}
	food := []models.Destination{
		testPlace(2, models.CategoryRestaurant, 0, 4.0, baseLat, baseLon, models.MoodNature),
	}

	days, err := scheduler.Distribute(context.Background(), nil, secondary, food, nil, day(t, "2025-12-20"), day(t, "2025-12-21"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i, plan := range days {
		if len(plan.SecondaryAttractions) != 0 {
			t.Fatalf("day %d: expected no placements without a primary anchor, got %+v", i, plan.SecondaryAttractions)
		}
		if len(plan.FoodPlaces) != 1 {
			t.Fatalf("day %d: expected full food list, got %+v", i, plan.FoodPlaces)
		}
	}
}

// TestDistributeWeatherFailure проверяет остановку при ошибке погодного API.
func TestDistributeWeatherFailure(t *testing.T) {
	scheduler := newTestScheduler(&stubWeather{err: errors.New("open-meteo down")})
	primary := []models.Destination{
		testPlace(1, models.CategoryPark, 0, 5.0, baseLat, baseLon, models.MoodEntertainment),
	}

	_, err := scheduler.Distribute(context.Background(), primary, nil, nil, nil, day(t, "2025-12-20"), day(t, "2025-12-21"))
	if err == nil {
		t.Fatal("expected error when weather lookup fails")
	}
}

// TestDistributeWeatherAnchor проверяет точку и число запросов погоды.
func TestDistributeWeatherAnchor(t *testing.T) {
	weather := &stubWeather{}
	scheduler := newTestScheduler(weather)
	primary := []models.Destination{
		testPlace(1, models.CategoryPark, 0, 5.0, baseLat, baseLon, models.MoodEntertainment),
		testPlace(2, models.CategoryPark, 0, 4.0, baseLat+0.05, baseLon, models.MoodEntertainment),
	}

	_, err := scheduler.Distribute(context.Background(), primary, nil, nil, nil, day(t, "2025-12-20"), day(t, "2025-12-22"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if weather.calls != 3 {
		t.Fatalf("expected one weather lookup per day, got %d", weather.calls)
	}
	if weather.lat != baseLat || weather.lon != baseLon {
		t.Fatalf("expected lookups at the first primary's coordinates, got %f,%f", weather.lat, weather.lon)
	}
}

// TestDistributeWeatherUnsuitable проверяет учет погодных ограничений места.
func TestDistributeWeatherUnsuitable(t *testing.T) {
	weather := &stubWeather{byDate: map[string]models.Weather{
		"2025-12-20": models.WeatherRainy,
		"2025-12-21": models.WeatherSunny,
	}}
	scheduler := newTestScheduler(weather)

	sunnyPark := testPlace(1, models.CategoryPark, 0, 5.0, baseLat, baseLon, models.MoodEntertainment)
	sunnyPark.SuitableWeather = []models.Weather{models.WeatherSunny}

	days, err := scheduler.Distribute(context.Background(), []models.Destination{sunnyPark}, nil, nil, nil, day(t, "2025-12-20"), day(t, "2025-12-21"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(days[1].PrimaryAttractions) != 0 {
		t.Fatalf("expected rainy day 1 to stay empty, got %+v", days[1].PrimaryAttractions)
	}
	if len(days[2].PrimaryAttractions) != 1 || days[2].PrimaryAttractions[0].ID != 1 {
		t.Fatalf("expected park on sunny day 2, got %+v", days[2].PrimaryAttractions)
	}
}
