package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"example.com/travlapes/backend/internal/models"
)

func fixedNow(value string) func() time.Time {
	now, _ := time.Parse(dateLayout, value)
	return func() time.Time { return now }
}

// TestWeatherForDateClassification проверяет классификацию погоды по ответу API.
func TestWeatherForDateClassification(t *testing.T) {
	var precipitation, cloudCover float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"daily":{"precipitation_sum":[%f],"cloudcover_mean":[%f]}}`, precipitation, cloudCover)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, "Asia/Kathmandu", time.Second)
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	precipitation, cloudCover = 4.2, 90
	got, err := client.WeatherForDate(context.Background(), 27.7, 85.3, date)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != models.WeatherRainy {
		t.Fatalf("expected rainy for positive precipitation, got %s", got)
	}

	precipitation, cloudCover = 0, 75
	got, err = client.WeatherForDate(context.Background(), 27.7, 85.3, date)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != models.WeatherCloudy {
		t.Fatalf("expected cloudy for heavy cloud cover, got %s", got)
	}

	precipitation, cloudCover = 0, 20
	got, err = client.WeatherForDate(context.Background(), 27.7, 85.3, date)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != models.WeatherSunny {
		t.Fatalf("expected sunny for clear skies, got %s", got)
	}
}

// TestWeatherForDateEndpoints проверяет выбор архива для прошлых дат.
func TestWeatherForDateEndpoints(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"daily":{"precipitation_sum":[0],"cloudcover_mean":[0]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/forecast", server.URL+"/archive", "Asia/Kathmandu", time.Second)
	client.now = fixedNow("2025-06-15")

	past := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, past); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "/archive" {
		t.Fatalf("expected archive endpoint for past date, got %s", path)
	}

	// Today still goes to the archive: the forecast API rejects it.
	today := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, today); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "/archive" {
		t.Fatalf("expected archive endpoint for today, got %s", path)
	}

	future := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, future); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "/forecast" {
		t.Fatalf("expected forecast endpoint for future date, got %s", path)
	}
}

// TestWeatherForDateEndpointsLocalMidnight проверяет выбор эндпоинта
// по календарной дате часов, а не по UTC-суткам.
func TestWeatherForDateEndpointsLocalMidnight(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"daily":{"precipitation_sum":[0],"cloudcover_mean":[0]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/forecast", server.URL+"/archive", "Asia/Kathmandu", time.Second)
	// Late evening June 15 in UTC-11 is already June 16 in UTC.
	client.now = func() time.Time {
		return time.Date(2025, time.June, 15, 20, 0, 0, 0, time.FixedZone("UTC-11", -11*3600))
	}

	tomorrow := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, tomorrow); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "/forecast" {
		t.Fatalf("expected forecast endpoint for tomorrow's date, got %s", path)
	}

	today := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, today); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if path != "/archive" {
		t.Fatalf("expected archive endpoint for today's date, got %s", path)
	}
}

// TestWeatherForDateQuery проверяет параметры запроса к Open-Meteo.
func TestWeatherForDateQuery(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		fmt.Fprint(w, `{"daily":{"precipitation_sum":[0],"cloudcover_mean":[0]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, "Asia/Kathmandu", time.Second)
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, date); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, part := range []string{
		"start_date=2025-06-10",
		"end_date=2025-06-10",
		"daily=precipitation_sum%2Ccloudcover_mean",
		"timezone=Asia%2FKathmandu",
	} {
		if !strings.Contains(query, part) {
			t.Fatalf("expected query to contain %s, got %s", part, query)
		}
	}
}

// TestWeatherForDateAPIError проверяет передачу причины ошибки API.
func TestWeatherForDateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":true,"reason":"Latitude must be in range"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, "Asia/Kathmandu", time.Second)
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	_, err := client.WeatherForDate(context.Background(), 999, 85.3, date)
	if err == nil {
		t.Fatal("expected error for rejected request")
	}
	if !strings.Contains(err.Error(), "Latitude must be in range") {
		t.Fatalf("expected API reason in error, got %v", err)
	}
}

// TestWeatherForDateMissingData проверяет ошибку при пустом дневном ряде.
func TestWeatherForDateMissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"daily":{"precipitation_sum":[],"cloudcover_mean":[]}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.URL, "Asia/Kathmandu", time.Second)
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	if _, err := client.WeatherForDate(context.Background(), 27.7, 85.3, date); err == nil {
		t.Fatal("expected error for missing daily data")
	}
}
