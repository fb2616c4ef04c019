package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travlapes/backend/internal/models"
)

type DestinationRepository struct {
	db *pgxpool.Pool
}

// DestinationFilter описывает поисковый запрос по местам.
// Пустые поля не ограничивают выборку.
type DestinationFilter struct {
	Location   string
	Categories []models.Category
	Moods      []models.Mood
}

const destinationColumns = `id, location, name, description, category, avg_price, rating, open_hours,
	        latitude, longitude, suitable_season, suitable_weather, compatible_moods, created_at`

// NewDestinationRepository создает репозиторий мест.
func NewDestinationRepository(db *pgxpool.Pool) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// Create добавляет место; дубликат внешнего id возвращает ErrConflict,
// некорректный id или категория — ErrInvalid.
func (r *DestinationRepository) Create(ctx context.Context, dest models.Destination) (models.Destination, error) {
	if dest.ID <= 0 || !dest.Category.Valid() {
		return dest, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO destinations (id, location, name, description, category, avg_price, rating, open_hours,
		                           latitude, longitude, suitable_season, suitable_weather, compatible_moods)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING created_at`,
		dest.ID, dest.Location, dest.Name, dest.Description, string(dest.Category), dest.AvgPrice, dest.Rating,
		dest.OpenHours, dest.Latitude, dest.Longitude,
		seasonsToStrings(dest.SuitableSeasons), weatherToStrings(dest.SuitableWeather), moodsToStrings(dest.CompatibleMoods),
	).Scan(&dest.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return dest, ErrConflict
		}
		return dest, err
	}

	return dest, nil
}

// ListByLocation возвращает все места локации без гарантии порядка.
func (r *DestinationRepository) ListByLocation(ctx context.Context, location string) ([]models.Destination, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+destinationColumns+`
		 FROM destinations
		 WHERE location = $1`,
		location,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDestinations(rows)
}

// List возвращает все места.
func (r *DestinationRepository) List(ctx context.Context) ([]models.Destination, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+destinationColumns+`
		 FROM destinations
		 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDestinations(rows)
}

// Search возвращает места по фильтру локации, категорий и настроений.
func (r *DestinationRepository) Search(ctx context.Context, filter DestinationFilter) ([]models.Destination, error) {
	categories := make([]string, 0, len(filter.Categories))
	for _, category := range filter.Categories {
		categories = append(categories, string(category))
	}

	moods := make([]string, 0, len(filter.Moods))
	for _, mood := range filter.Moods {
		moods = append(moods, string(mood))
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+destinationColumns+`
		 FROM destinations
		 WHERE ($1 = '' OR location = $1)
		   AND (cardinality($2::text[]) = 0 OR category = ANY($2::text[]))
		   AND (cardinality($3::text[]) = 0 OR compatible_moods && $3::text[])
		 ORDER BY id`,
		filter.Location, categories, moods,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDestinations(rows)
}

func scanDestinations(rows pgx.Rows) ([]models.Destination, error) {
	destinations := make([]models.Destination, 0)

	for rows.Next() {
		var dest models.Destination
		var category string
		var seasons, weather, compatibleMoods []string

		err := rows.Scan(&dest.ID, &dest.Location, &dest.Name, &dest.Description, &category, &dest.AvgPrice,
			&dest.Rating, &dest.OpenHours, &dest.Latitude, &dest.Longitude, &seasons, &weather, &compatibleMoods,
			&dest.CreatedAt)
		if err != nil {
			return nil, err
		}

		dest.Category = models.Category(category)
		dest.SuitableSeasons = seasonsFromStrings(seasons)
		dest.SuitableWeather = weatherFromStrings(weather)
		dest.CompatibleMoods = moodsFromStrings(compatibleMoods)

		destinations = append(destinations, dest)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return destinations, nil
}

func seasonsToStrings(values []models.Season) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func weatherToStrings(values []models.Weather) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func moodsToStrings(values []models.Mood) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func seasonsFromStrings(values []string) []models.Season {
	out := make([]models.Season, 0, len(values))
	for _, v := range values {
		out = append(out, models.Season(v))
	}
	return out
}

func weatherFromStrings(values []string) []models.Weather {
	out := make([]models.Weather, 0, len(values))
	for _, v := range values {
		out = append(out, models.Weather(v))
	}
	return out
}

func moodsFromStrings(values []string) []models.Mood {
	out := make([]models.Mood, 0, len(values))
	for _, v := range values {
		out = append(out, models.Mood(v))
	}
	return out
}
