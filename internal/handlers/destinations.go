package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/travlapes/backend/internal/models"
	"example.com/travlapes/backend/internal/repository"
)

type DestinationHandler struct {
	Destinations *repository.DestinationRepository
}

// NewDestinationHandler создает обработчик справочника мест.
func NewDestinationHandler(destinations *repository.DestinationRepository) *DestinationHandler {
	return &DestinationHandler{Destinations: destinations}
}

type DestinationRequest struct {
	ID              int64    `json:"id" validate:"required,gt=0"`
	Location        string   `json:"location" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" validate:"required"`
	AvgPrice        float64  `json:"avg_price" validate:"gte=0"`
	Rating          float64  `json:"rating" validate:"gte=0,lte=5"`
	OpenHours       string   `json:"open_hours"`
	Latitude        float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude       float64  `json:"longitude" validate:"gte=-180,lte=180"`
	SuitableSeasons []string `json:"suitable_season"`
	SuitableWeather []string `json:"suitable_weather"`
	CompatibleMoods []string `json:"compatible_moods"`
}

type DestinationSearchRequest struct {
	Location   string   `json:"location"`
	Categories []string `json:"category"`
	Moods      []string `json:"moods"`
}

type DestinationListResponse struct {
	Status string               `json:"status"`
	Data   []models.Destination `json:"data"`
	Count  int                  `json:"count"`
}

// List возвращает все места справочника.
func (h *DestinationHandler) List(c echo.Context) error {
	destinations, err := h.Destinations.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, DestinationListResponse{
		Status: "ok",
		Data:   destinations,
		Count:  len(destinations),
	})
}

// Create добавляет новое место в справочник.
func (h *DestinationHandler) Create(c echo.Context) error {
	var req DestinationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	dest, err := destinationFromRequest(req)
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.Destinations.Create(c.Request().Context(), dest)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "destination with this id already exists")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid destination")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Search ищет места по локации, категориям и настроениям.
func (h *DestinationHandler) Search(c echo.Context) error {
	var req DestinationSearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	filter := repository.DestinationFilter{Location: req.Location}

	for _, value := range req.Categories {
		category, err := models.ParseCategory(value)
		if err != nil {
			return badRequest(c, err.Error())
		}
		filter.Categories = append(filter.Categories, category)
	}

	for _, value := range req.Moods {
		mood, err := models.ParseMood(value)
		if err != nil {
			return badRequest(c, err.Error())
		}
		filter.Moods = append(filter.Moods, mood)
	}

	destinations, err := h.Destinations.Search(c.Request().Context(), filter)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, DestinationListResponse{
		Status: "ok",
		Data:   destinations,
		Count:  len(destinations),
	})
}

func destinationFromRequest(req DestinationRequest) (models.Destination, error) {
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return models.Destination{}, err
	}

	seasons := make([]models.Season, 0, len(req.SuitableSeasons))
	for _, value := range req.SuitableSeasons {
		season := models.Season(value)
		if !season.Valid() {
			return models.Destination{}, fmt.Errorf("unknown season: %s", value)
		}
		seasons = append(seasons, season)
	}

	weather := make([]models.Weather, 0, len(req.SuitableWeather))
	for _, value := range req.SuitableWeather {
		condition := models.Weather(value)
		if !condition.Valid() {
			return models.Destination{}, fmt.Errorf("unknown weather: %s", value)
		}
		weather = append(weather, condition)
	}

	moods, err := parseMoods(req.CompatibleMoods)
	if err != nil {
		return models.Destination{}, err
	}

	return models.Destination{
		ID:              req.ID,
		Location:        req.Location,
		Name:            req.Name,
		Description:     req.Description,
		Category:        category,
		AvgPrice:        req.AvgPrice,
		Rating:          req.Rating,
		OpenHours:       req.OpenHours,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		SuitableSeasons: seasons,
		SuitableWeather: weather,
		CompatibleMoods: moods,
	}, nil
}
