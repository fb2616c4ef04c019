// Command geocode заполняет координаты мест через Nominatim.
//
// Reads a places JSON file, resolves each place name to coordinates and
// writes the enriched document back out. Requests are throttled to one per
// second per the Nominatim usage policy.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const nominatimURL = "https://nominatim.openstreetmap.org/search"

const userAgent = "TravlapesGeocoder/1.0"

type placesFile struct {
	Metadata map[string]any `json:"metadata,omitempty"`
	Places   []place        `json:"places"`
}

type place struct {
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func main() {
	input := flag.String("in", "places.json", "input places JSON file")
	output := flag.String("out", "places_with_coordinates.json", "output JSON file")
	region := flag.String("region", "Kathmandu, Nepal", "region suffix appended to each query")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(context.Background(), logger, *input, *output, *region); err != nil {
		logger.Error("geocoding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, input, output, region string) error {
	payload, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	var doc placesFile
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	client := &http.Client{Timeout: 20 * time.Second}
	throttle := time.NewTicker(time.Second)
	defer throttle.Stop()

	for i := range doc.Places {
		name := doc.Places[i].Name
		logger.Info("geocoding place", slog.String("name", name))

		lat, lon, err := geocode(ctx, client, name, region)
		if err != nil {
			return fmt.Errorf("geocode %s: %w", name, err)
		}

		doc.Places[i].Latitude = lat
		doc.Places[i].Longitude = lon

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-throttle.C:
		}
	}

	doc.Metadata = map[string]any{
		"source":       "Nominatim (OpenStreetMap)",
		"generated_at": time.Now().Format(time.RFC3339),
		"total_places": len(doc.Places),
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, encoded, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("saved coordinates", slog.String("file", output), slog.Int("places", len(doc.Places)))
	return nil
}

// geocode возвращает координаты места или nil, если ничего не найдено.
func geocode(ctx context.Context, client *http.Client, name, region string) (*float64, *float64, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s, %s", name, region))
	query.Set("format", "json")
	query.Set("limit", "1")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, nil, err
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := client.Do(request)
	if err != nil {
		return nil, nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, err
	}

	if response.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("nominatim status %d", response.StatusCode)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, nil, err
	}

	if len(results) == 0 {
		return nil, nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, nil, err
	}

	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, nil, err
	}

	return &lat, &lon, nil
}
