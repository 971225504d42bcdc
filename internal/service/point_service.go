package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"recycling-api/internal/geo"
	"recycling-api/internal/models"
)

// ErrInvalidFilter is returned when a listing filter is out of range.
var ErrInvalidFilter = errors.New("service: invalid filter")

// PointService contains the business rules applied around reads and writes of recycling points
type PointService struct {
	repo   PointRepository
	alerts AlertChecker
	now    func() time.Time
}

// PointRepository interface for dependency injection
type PointRepository interface {
	ListPoints(ctx context.Context, filter models.PointFilter) ([]models.RecyclingPoint, error)
	GetPoint(ctx context.Context, id int64) (*models.RecyclingPoint, error)
	CreatePoint(ctx context.Context, point models.RecyclingPoint) (*models.RecyclingPoint, error)
	UpdatePoint(ctx context.Context, point models.RecyclingPoint) (*models.RecyclingPoint, error)
	DeletePoint(ctx context.Context, id int64) error
}

// AlertChecker decides whether a saved point needs a notification and dispatches it without blocking.
type AlertChecker interface {
	Check(point models.RecyclingPoint) bool
}

// NewPointService creates a new point service
func NewPointService(repo PointRepository, alerts AlertChecker) *PointService {
	return &PointService{repo: repo, alerts: alerts, now: time.Now}
}

// ListPoints returns all points matching the filter. A proximity filter keeps points within the radius, nearest first.
func (s *PointService) ListPoints(ctx context.Context, filter models.PointFilter) ([]models.RecyclingPoint, error) {
	if near := filter.Near; near != nil {
		if near.Latitude < -90 || near.Latitude > 90 {
			return nil, fmt.Errorf("%w: latitude %f out of range", ErrInvalidFilter, near.Latitude)
		}
		if near.Longitude < -180 || near.Longitude > 180 {
			return nil, fmt.Errorf("%w: longitude %f out of range", ErrInvalidFilter, near.Longitude)
		}
		if near.RadiusKm <= 0 {
			return nil, fmt.Errorf("%w: radius must be positive", ErrInvalidFilter)
		}
	}

	points, err := s.repo.ListPoints(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list points: %w", err)
	}

	if filter.Near != nil {
		points = geo.WithinRadius(points, *filter.Near)
	}
	return points, nil
}

// GetPoint returns one point by id
func (s *PointService) GetPoint(ctx context.Context, id int64) (*models.RecyclingPoint, error) {
	point, err := s.repo.GetPoint(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get point: %w", err)
	}
	return point, nil
}

// CreatePoint stores a new point, filling in defaults, and runs the alert check on the saved record
func (s *PointService) CreatePoint(ctx context.Context, input models.CreatePointInput) (*models.RecyclingPoint, error) {
	now := s.now()

	point := models.RecyclingPoint{
		Name:          input.Name,
		WasteType:     input.WasteType,
		LastEmptiedAt: now,
		CreatedAt:     now,
	}
	if input.Latitude != nil {
		point.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		point.Longitude = *input.Longitude
	}
	if input.FillLevel != nil {
		point.FillLevel = *input.FillLevel
	}
	if point.WasteType == "" {
		point.WasteType = models.DefaultWasteType
	}
	if input.LastEmptiedAt != nil {
		point.LastEmptiedAt = *input.LastEmptiedAt
	}

	saved, err := s.repo.CreatePoint(ctx, point)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create point: %w", err)
	}

	s.alerts.Check(*saved)
	return saved, nil
}

// UpdatePoint applies the non-nil fields of input to the stored point.
//
// A fill level that is missing or cannot be read as an integer keeps the stored level. When the resulting
// fill level is 0 the point counts as emptied and last_emptied_at is reset to now, overriding any
// value sent by the client. The alert check runs on every saved update.
func (s *PointService) UpdatePoint(ctx context.Context, id int64, input models.UpdatePointInput) (*models.RecyclingPoint, error) {
	current, err := s.repo.GetPoint(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load point: %w", err)
	}

	point := *current
	if input.Name != nil {
		point.Name = *input.Name
	}
	if input.Latitude != nil {
		point.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		point.Longitude = *input.Longitude
	}
	if input.WasteType != nil {
		point.WasteType = *input.WasteType
	}
	if input.LastEmptiedAt != nil {
		point.LastEmptiedAt = *input.LastEmptiedAt
	}

	if fill, ok := ParseFillLevel(input.FillLevel); ok {
		point.FillLevel = fill
	}
	if point.FillLevel == 0 {
		point.LastEmptiedAt = s.now()
	}

	saved, err := s.repo.UpdatePoint(ctx, point)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update point: %w", err)
	}

	s.alerts.Check(*saved)
	return saved, nil
}

// DeletePoint permanently removes a point
func (s *PointService) DeletePoint(ctx context.Context, id int64) error {
	if err := s.repo.DeletePoint(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete point: %w", err)
	}
	return nil
}

// ParseFillLevel reads a fill level from a raw JSON value. Integers, integral floats and strings holding an
// integer are accepted; anything else (including a missing value) reports false.
func ParseFillLevel(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || val > math.MaxInt32 || val < math.MinInt32 {
			return 0, false
		}
		return int(val), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
