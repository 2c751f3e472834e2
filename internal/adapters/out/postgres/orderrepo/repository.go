package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and initial history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists a lifecycle transition conditionally on the loaded version.
// Only the mutable columns change: status, courier binding, payment status and
// the version bump. Items are immutable; history rows are appended with
// ON CONFLICT DO NOTHING so a replayed transition cannot duplicate entries.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":         dto.Status,
			"courier_id":     dto.CourierID,
			"payment_status": dto.PaymentStatus,
			"version":        dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("order %s was modified concurrently or does not exist", aggregate.ID()))
	}

	if len(dto.History) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.History).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including items and the full status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsActiveWithParticipants reports whether the customer already has an
// active order covering any of the given participant references. Cancelled
// and failed orders release their participants for re-ordering.
func (r *GormOrderRepository) ExistsActiveWithParticipants(
	ctx context.Context,
	customerID kernel.UUID,
	participantRefs []string,
) (bool, error) {
	if err := customerID.Validate(); err != nil {
		return false, err
	}
	if len(participantRefs) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderItemDTO{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ?", customerID.Bytes()).
		Where("orders.status NOT IN ?", []int{int(order.Cancelled), int(order.Failed)}).
		Where("order_items.participant_ref IN ?", participantRefs).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
