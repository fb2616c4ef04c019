package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/travlapes/backend/internal/models"
	"example.com/travlapes/backend/internal/recommend"
	"example.com/travlapes/backend/internal/repository"
)

const dateLayout = "2006-01-02"

type PlacesHandler struct {
	Destinations *repository.DestinationRepository
	Selector     *recommend.Selector
	Scheduler    *recommend.Scheduler
}

// NewPlacesHandler создает обработчик рекомендаций мест.
func NewPlacesHandler(destinations *repository.DestinationRepository, selector *recommend.Selector, scheduler *recommend.Scheduler) *PlacesHandler {
	return &PlacesHandler{
		Destinations: destinations,
		Selector:     selector,
		Scheduler:    scheduler,
	}
}

type RecommendRequest struct {
	Location string   `json:"location" validate:"required"`
	FromDate string   `json:"from_date" validate:"required"`
	ToDate   string   `json:"to_date" validate:"required"`
	Moods    []string `json:"moods" validate:"required,min=1"`
	Budget   float64  `json:"budget"`
}

type FinalizeRequest struct {
	PrimaryAttractions   []models.Destination `json:"primary_attractions"`
	SecondaryAttractions []models.Destination `json:"secondary_attractions"`
	FoodPlaces           []models.Destination `json:"food_places"`
	Accommodations       []models.Destination `json:"accommodations"`
	FromDate             string               `json:"from_date" validate:"required"`
	ToDate               string               `json:"to_date" validate:"required"`
}

type PlanRequest struct {
	RecommendRequest
	// IncludeBonus keeps one extra place past each tier's recommended
	// count, mirroring how early clients sliced the ranked lists.
	IncludeBonus bool `json:"include_bonus"`
}

type PlanResponse struct {
	Recommendations recommend.Selection       `json:"recommendations"`
	Days            map[int]recommend.DayPlan `json:"days"`
}

// Recommend подбирает места по локации, датам, настроениям и бюджету.
func (h *PlacesHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	fromDate, toDate, err := parseTripDates(req.FromDate, req.ToDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	moods, err := parseMoods(req.Moods)
	if err != nil {
		return badRequest(c, err.Error())
	}

	places, err := h.Destinations.ListByLocation(c.Request().Context(), req.Location)
	if err != nil {
		return serverError(c)
	}

	if len(places) == 0 {
		return badRequest(c, "invalid location")
	}

	selection, err := h.Selector.Select(places, fromDate, toDate, moods, req.Budget)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, selection)
}

// Finalize раскладывает утвержденные места по дням поездки.
func (h *PlacesHandler) Finalize(c echo.Context) error {
	var req FinalizeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	fromDate, toDate, err := parseTripDates(req.FromDate, req.ToDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	days, err := h.Scheduler.Distribute(
		c.Request().Context(),
		req.PrimaryAttractions, req.SecondaryAttractions, req.FoodPlaces, req.Accommodations,
		fromDate, toDate,
	)
	if err != nil {
		return badGateway(c, "weather lookup failed")
	}

	return c.JSON(http.StatusOK, days)
}

// Plan выполняет подбор и распределение по дням за один запрос.
func (h *PlacesHandler) Plan(c echo.Context) error {
	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	fromDate, toDate, err := parseTripDates(req.FromDate, req.ToDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	moods, err := parseMoods(req.Moods)
	if err != nil {
		return badRequest(c, err.Error())
	}

	places, err := h.Destinations.ListByLocation(c.Request().Context(), req.Location)
	if err != nil {
		return serverError(c)
	}

	if len(places) == 0 {
		return badRequest(c, "invalid location")
	}

	selection, err := h.Selector.Select(places, fromDate, toDate, moods, req.Budget)
	if err != nil {
		return serverError(c)
	}

	days, err := h.Scheduler.Distribute(
		c.Request().Context(),
		recommend.TakeRecommended(selection.Primary, req.IncludeBonus),
		recommend.TakeRecommended(selection.Secondary, req.IncludeBonus),
		recommend.TakeRecommended(selection.Food, req.IncludeBonus),
		recommend.TakeRecommended(selection.Accommodations, req.IncludeBonus),
		fromDate, toDate,
	)
	if err != nil {
		return badGateway(c, "weather lookup failed")
	}

	return c.JSON(http.StatusOK, PlanResponse{Recommendations: selection, Days: days})
}

func parseTripDates(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from_date must be in YYYY-MM-DD format")
	}

	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to_date must be in YYYY-MM-DD format")
	}

	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("to_date must not be before from_date")
	}

	return fromDate, toDate, nil
}

func parseMoods(values []string) ([]models.Mood, error) {
	moods := make([]models.Mood, 0, len(values))
	for _, value := range values {
		mood, err := models.ParseMood(value)
		if err != nil {
			return nil, err
		}
		moods = append(moods, mood)
	}

	return moods, nil
}
