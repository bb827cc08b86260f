// README: Pricing service computes itemized toll and road costs for a plaza itinerary.
package pricing

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"farely/internal/modules/vehicle"
)

var (
	ErrInsufficientPlazas  = errors.New("at least two toll plazas are required")
	ErrInvalidVehicleClass = errors.New("invalid vehicle class")
	ErrInvalidDistance     = errors.New("invalid travel distance")

	ErrRateNotFound = errors.New("toll rate not found")
)

// RateLookup returns the rate row for an exact (from, to) pair, or ErrRateNotFound.
type RateLookup interface {
	Lookup(ctx context.Context, from, to string) (Rate, error)
}

type VehicleCatalog interface {
	Resolve(id string) (vehicle.Class, error)
}

type Service struct {
	rates   RateLookup
	catalog VehicleCatalog
	workers int
}

// NewService prices at most workers segments at a time; workers <= 1 scans sequentially.
func NewService(rates RateLookup, catalog VehicleCatalog, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{rates: rates, catalog: catalog, workers: workers}
}

// IsValidationError reports whether err rejects the request before any lookup ran.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInsufficientPlazas) ||
		errors.Is(err, ErrInvalidVehicleClass) ||
		errors.Is(err, ErrInvalidDistance)
}

// Calculate never fails because of a lookup: unpriced segments come back with a nil rate.
func (s *Service) Calculate(ctx context.Context, cmd CalculateCommand) (*FareResult, error) {
	plazas := cleanPlazas(cmd.Plazas)
	if len(plazas) < 2 {
		return nil, ErrInsufficientPlazas
	}
	class, err := s.catalog.Resolve(cmd.VehicleClass)
	if err != nil {
		return nil, ErrInvalidVehicleClass
	}
	d := cmd.DistanceKm
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return nil, ErrInvalidDistance
	}

	details := make([]SegmentResult, len(plazas)-1)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range details {
		i := i
		seg := Segment{From: plazas[i], To: plazas[i+1]}
		g.Go(func() error {
			details[i] = s.priceSegment(ctx, seg, class.ID)
			return nil
		})
	}
	_ = g.Wait()

	var toll float64
	for _, sr := range details {
		if sr.Rate != nil {
			toll += *sr.Rate
		}
	}
	road := d * class.RatePerKm

	return &FareResult{
		TotalCost:    road + toll,
		RoadCost:     road,
		TollCost:     toll,
		Details:      details,
		VehicleType:  class.Name,
		VehicleClass: class.ID,
		Distance:     d,
		RatePerKm:    class.RatePerKm,
	}, nil
}

func (s *Service) priceSegment(ctx context.Context, seg Segment, classID string) (res SegmentResult) {
	res = SegmentResult{From: seg.From, To: seg.To}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pricing: lookup %q -> %q panicked: %v", seg.From, seg.To, r)
			res.Rate = nil
		}
	}()

	row, err := s.rates.Lookup(ctx, seg.From, seg.To)
	if errors.Is(err, ErrRateNotFound) {
		return res
	}
	if err != nil {
		log.Printf("pricing: lookup %q -> %q failed: %v", seg.From, seg.To, err)
		return res
	}
	if rate := parseRate(row.Rates[classID]); rate > 0 {
		res.Rate = &rate
	}
	return res
}

func cleanPlazas(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseRate maps anything that is not a finite number to zero.
func parseRate(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
