package service

import (
	"context"
	"sort"

	"github.com/dmardones/delivery-slots/internal/geo"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

// ZoneResolver assigns a geographic point to the active coverage zones
// whose boundary contains it. Pure read, no side effects; an empty
// result is not an error at this layer.
type ZoneResolver struct {
	zoneRepo repository.ZoneRepository
}

func NewZoneResolver(zoneRepo repository.ZoneRepository) *ZoneResolver {
	return &ZoneResolver{zoneRepo: zoneRepo}
}

// Resolve returns every active zone containing the point, smallest area
// first (ties broken by id). When zones overlap, callers take the first
// element and get a deterministic pick instead of database return order.
func (r *ZoneResolver) Resolve(ctx context.Context, point geo.Point) ([]models.ZoneCoverage, error) {
	zones, err := r.zoneRepo.FindActiveWithBoundary(ctx)
	if err != nil {
		return nil, err
	}

	var matches []models.ZoneCoverage
	for _, zone := range zones {
		if zone.Boundary != nil && zone.Boundary.Contains(point) {
			matches = append(matches, zone)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		ai, aj := matches[i].Boundary.Area(), matches[j].Boundary.Area()
		if ai != aj {
			return ai < aj
		}
		return matches[i].ID < matches[j].ID
	})
	return matches, nil
}
