package handlers

import (
	"testing"

	"example.com/travlapes/backend/internal/models"
)

// TestParseTripDatesValid проверяет корректный разбор дат поездки.
func TestParseTripDatesValid(t *testing.T) {
	from, to, err := parseTripDates("2025-12-20", "2025-12-25")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if from.Format(dateLayout) != "2025-12-20" {
		t.Fatalf("unexpected from date: %s", from.Format(dateLayout))
	}
	if to.Format(dateLayout) != "2025-12-25" {
		t.Fatalf("unexpected to date: %s", to.Format(dateLayout))
	}

	// A single-day trip is valid.
	if _, _, err := parseTripDates("2025-12-20", "2025-12-20"); err != nil {
		t.Fatalf("expected single-day trip to parse, got %v", err)
	}
}

// TestParseTripDatesInvalid проверяет ошибки при неверных датах.
func TestParseTripDatesInvalid(t *testing.T) {
	if _, _, err := parseTripDates("20-12-2025", "2025-12-25"); err == nil {
		t.Fatal("expected error for invalid from_date format")
	}

	if _, _, err := parseTripDates("2025-12-20", "25.12.2025"); err == nil {
		t.Fatal("expected error for invalid to_date format")
	}

	if _, _, err := parseTripDates("2025-12-25", "2025-12-20"); err == nil {
		t.Fatal("expected error for to_date before from_date")
	}
}

// TestParseMoods проверяет разбор списка настроений.
func TestParseMoods(t *testing.T) {
	moods, err := parseMoods([]string{"entertainment", "nature"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(moods) != 2 || moods[0] != models.MoodEntertainment || moods[1] != models.MoodNature {
		t.Fatalf("unexpected moods: %v", moods)
	}

	if _, err := parseMoods([]string{"entertainment", "bored"}); err == nil {
		t.Fatal("expected error for unknown mood")
	}
}
