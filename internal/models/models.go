package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Mood string

type Season string

type Weather string

type Category string

const (
	MoodFood          Mood = "food"
	MoodEntertainment Mood = "entertainment"
	MoodCultural      Mood = "cultural"
	MoodPeaceful      Mood = "peaceful"
	MoodAdventurous   Mood = "adventurous"
	MoodNature        Mood = "nature"

	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"

	WeatherSunny  Weather = "sunny"
	WeatherRainy  Weather = "rainy"
	WeatherCloudy Weather = "cloudy"

	CategoryRestaurant     Category = "restaurant"
	CategoryAccommodations Category = "accommodations"
	CategoryPeaks          Category = "peaks"
	CategoryLakes          Category = "lakes"
	CategoryRivers         Category = "rivers"
	CategoryWaterfalls     Category = "waterfalls"
	CategoryPicnicSite     Category = "picnic_site"
	CategoryHeritage       Category = "heritage"
	CategoryPark           Category = "park"
	CategoryTemple         Category = "temple"
	CategoryOther          Category = "other"
)

var moods = map[Mood]struct{}{
	MoodFood:          {},
	MoodEntertainment: {},
	MoodCultural:      {},
	MoodPeaceful:      {},
	MoodAdventurous:   {},
	MoodNature:        {},
}

var categories = map[Category]struct{}{
	CategoryRestaurant:     {},
	CategoryAccommodations: {},
	CategoryPeaks:          {},
	CategoryLakes:          {},
	CategoryRivers:         {},
	CategoryWaterfalls:     {},
	CategoryPicnicSite:     {},
	CategoryHeritage:       {},
	CategoryPark:           {},
	CategoryTemple:         {},
	CategoryOther:          {},
}

// Valid сообщает, входит ли настроение в фиксированный набор.
func (m Mood) Valid() bool {
	_, ok := moods[m]
	return ok
}

// Valid сообщает, входит ли категория в фиксированный набор.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Valid сообщает, входит ли сезон в фиксированный набор.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	default:
		return false
	}
}

// Valid сообщает, входит ли погода в фиксированный набор.
func (w Weather) Valid() bool {
	switch w {
	case WeatherSunny, WeatherRainy, WeatherCloudy:
		return true
	default:
		return false
	}
}

// ParseMood преобразует строку в Mood с проверкой значения.
func ParseMood(value string) (Mood, error) {
	mood := Mood(value)
	if !mood.Valid() {
		return "", fmt.Errorf("unknown mood: %s", value)
	}

	return mood, nil
}

// ParseCategory преобразует строку в Category с проверкой значения.
func ParseCategory(value string) (Category, error) {
	category := Category(value)
	if !category.Valid() {
		return "", fmt.Errorf("unknown category: %s", value)
	}

	return category, nil
}

// Destination is a point of interest loaded from the place store.
// Rating and AvgPrice default to zero when the source record omits them.
type Destination struct {
	ID              int64     `json:"id"`
	Location        string    `json:"location"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	AvgPrice        float64   `json:"avg_price"`
	Rating          float64   `json:"rating"`
	OpenHours       string    `json:"open_hours"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	SuitableSeasons []Season  `json:"suitable_season"`
	SuitableWeather []Weather `json:"suitable_weather"`
	CompatibleMoods []Mood    `json:"compatible_moods"`
	CreatedAt       time.Time `json:"created_at"`
}

// User is an account record. Username is the login identifier; email is
// kept for contact only and never used to sign in.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
