package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"example.com/travlapes/backend/internal/models"
)

const dateLayout = "2006-01-02"

// Client calls the Open-Meteo daily weather API. Past dates go to the
// archive endpoint, future dates to the forecast endpoint.
type Client struct {
	forecastURL string
	archiveURL  string
	timezone    string
	httpClient  *http.Client
	now         func() time.Time
}

type dailyResponse struct {
	Daily struct {
		PrecipitationSum []float64 `json:"precipitation_sum"`
		CloudCoverMean   []float64 `json:"cloudcover_mean"`
	} `json:"daily"`
	Reason string `json:"reason,omitempty"`
}

// NewClient создает клиент Open-Meteo с заданными параметрами.
func NewClient(forecastURL, archiveURL, timezone string, timeout time.Duration) *Client {
	return &Client{
		forecastURL: strings.TrimRight(forecastURL, "/"),
		archiveURL:  strings.TrimRight(archiveURL, "/"),
		timezone:    timezone,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// WeatherForDate классифицирует погоду в точке на указанную дату.
//
// rainy — daily precipitation above zero; cloudy — mean cloud cover above
// 60%; sunny otherwise. Lookup failures are not retried.
func (c *Client) WeatherForDate(ctx context.Context, latitude, longitude float64, date time.Time) (models.Weather, error) {
	// Calendar dates, not instants: the clock's local day decides, so the
	// archive/forecast split does not drift around midnight.
	dateStr := date.Format(dateLayout)
	endpoint := c.forecastURL
	if dateStr <= c.now().Format(dateLayout) {
		endpoint = c.archiveURL
	}
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", latitude))
	query.Set("longitude", fmt.Sprintf("%f", longitude))
	query.Set("start_date", dateStr)
	query.Set("end_date", dateStr)
	query.Set("daily", "precipitation_sum,cloudcover_mean")
	query.Set("timezone", c.timezone)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("open-meteo request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	var parsed dailyResponse
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Reason != "" {
			return "", fmt.Errorf("open-meteo error: %s", parsed.Reason)
		}
		return "", fmt.Errorf("open-meteo error: %s", strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Daily.PrecipitationSum) == 0 || len(parsed.Daily.CloudCoverMean) == 0 {
		return "", fmt.Errorf("open-meteo response missing daily data for %s", dateStr)
	}

	switch {
	case parsed.Daily.PrecipitationSum[0] > 0:
		return models.WeatherRainy, nil
	case parsed.Daily.CloudCoverMean[0] > 60:
		return models.WeatherCloudy, nil
	default:
		return models.WeatherSunny, nil
	}
}
