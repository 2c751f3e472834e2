package services

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/pkg/errs"
)

// Default pricing configuration. The serviceable postal range approximates the
// launch city's delivery zone.
const (
	DefaultBaseFare        = 40
	DefaultPerKmRate       = 10
	DefaultMinDistanceKm   = 1.0
	DefaultServiceableFrom = 700001
	DefaultServiceableTo   = 700150
)

// DistanceEstimator estimates the delivery distance between two addresses in
// kilometers. The result must be a positive real number.
//
// The reference implementation is a bounded pseudo-random stand-in for a real
// geodistance computation; production deployments plug a geo service here.
type DistanceEstimator interface {
	EstimateKm(origin, destination kernel.Address) float64
}

// RandomDistanceEstimator returns a pseudo-random distance between 2.0 and
// 15.0 km, rounded to one decimal place.
type RandomDistanceEstimator struct{}

// NewRandomDistanceEstimator creates the reference distance estimator.
func NewRandomDistanceEstimator() RandomDistanceEstimator {
	return RandomDistanceEstimator{}
}

// EstimateKm implements DistanceEstimator.
func (RandomDistanceEstimator) EstimateKm(_, _ kernel.Address) float64 {
	km := rand.Float64()*13 + 2 //nolint:gosec // stand-in for a real geodistance service
	return math.Round(km*10) / 10
}

// PricingEstimator is a stateless domain service that decides whether an
// address can be delivered to, estimates the delivery distance and computes
// the delivery fee.
//
// Fee formula: ceil(baseFare + max(distanceKm, minDistance) * perKmRate).
// The fee is therefore always at least baseFare + minDistance*perKmRate.
//
// Example usage:
//
//	estimator := services.NewPricingEstimator(services.PricingConfig{}, services.NewRandomDistanceEstimator())
//	if !estimator.IsServiceable("700050") {
//	    // outside the delivery zone
//	}
//	km := estimator.EstimateDistance(origin, destination)
//	fee := estimator.Fee(km)
type PricingEstimator struct {
	baseFare        int
	perKmRate       int
	minDistanceKm   float64
	serviceableFrom int
	serviceableTo   int
	distance        DistanceEstimator
}

// PricingConfig carries the tunable pricing parameters. Zero fields fall back
// to the package defaults.
type PricingConfig struct {
	BaseFare        int
	PerKmRate       int
	MinDistanceKm   float64
	ServiceableFrom int
	ServiceableTo   int
}

// NewPricingEstimator creates a pricing estimator with the given configuration
// and distance estimator. A nil distance estimator falls back to the
// pseudo-random reference implementation.
func NewPricingEstimator(cfg PricingConfig, distance DistanceEstimator) PricingEstimator {
	if cfg.BaseFare <= 0 {
		cfg.BaseFare = DefaultBaseFare
	}
	if cfg.PerKmRate <= 0 {
		cfg.PerKmRate = DefaultPerKmRate
	}
	if cfg.MinDistanceKm <= 0 {
		cfg.MinDistanceKm = DefaultMinDistanceKm
	}
	if cfg.ServiceableFrom <= 0 {
		cfg.ServiceableFrom = DefaultServiceableFrom
	}
	if cfg.ServiceableTo <= 0 {
		cfg.ServiceableTo = DefaultServiceableTo
	}
	if distance == nil {
		distance = NewRandomDistanceEstimator()
	}

	return PricingEstimator{
		baseFare:        cfg.BaseFare,
		perKmRate:       cfg.PerKmRate,
		minDistanceKm:   cfg.MinDistanceKm,
		serviceableFrom: cfg.ServiceableFrom,
		serviceableTo:   cfg.ServiceableTo,
		distance:        distance,
	}
}

// IsServiceable reports whether the postal code falls inside the configured
// delivery zone. Non-numeric postal codes are never serviceable.
func (p PricingEstimator) IsServiceable(postalCode string) bool {
	code, err := strconv.Atoi(postalCode)
	if err != nil {
		return false
	}
	return code >= p.serviceableFrom && code <= p.serviceableTo
}

// EstimateDistance returns the estimated delivery distance in kilometers
// between origin and destination via the pluggable distance estimator.
func (p PricingEstimator) EstimateDistance(origin, destination kernel.Address) float64 {
	return p.distance.EstimateKm(origin, destination)
}

// Fee computes the delivery fee for a distance in kilometers.
// Distances below the configured minimum are billed at the minimum.
func (p PricingEstimator) Fee(distanceKm float64) int {
	dist := math.Max(distanceKm, p.minDistanceKm)
	return int(math.Ceil(float64(p.baseFare) + dist*float64(p.perKmRate)))
}

// Estimate runs the full quote flow for a destination address: serviceability
// check, distance estimate and fee. Returns errs.ErrValueIsOutOfRange when the
// postal code is outside the delivery zone.
func (p PricingEstimator) Estimate(origin, destination kernel.Address) (distanceKm float64, fee int, err error) {
	if !p.IsServiceable(destination.PostalCode()) {
		return 0, 0, errs.NewValueIsOutOfRangeErrorWithCause(
			"postalCode", destination.PostalCode(), p.serviceableFrom, p.serviceableTo,
			fmt.Errorf("delivery not available in this area"))
	}

	km := p.EstimateDistance(origin, destination)
	return km, p.Fee(km), nil
}
