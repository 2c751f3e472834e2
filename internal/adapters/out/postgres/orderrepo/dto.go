// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The root row carries the version column used for optimistic concurrency;
// items and status history live in their own tables.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index"`
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	Status        int        `gorm:"index"`
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	PickupCode    string
	DeliveryCode  string
	DistanceKm    float64
	DeliveryFee   int
	PaymentMethod int
	PaymentStatus int
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items   []OrderItemDTO     `gorm:"foreignKey:OrderID"`
	History []StatusHistoryDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address within the order table.
// Coordinates are optional and stored as nullable columns.
type AddressDTO struct {
	Street     string
	City       string
	PostalCode string `gorm:"index"`
	GeoLat     *float64
	GeoLng     *float64
}

// OrderItemDTO represents one bib line of an order.
// Items are written once at order creation and never updated.
type OrderItemDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ParticipantRef string    `gorm:"index"`
	BibNumber      string
	EventName      string
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO represents one append-only status history entry.
// The (order_id, seq) primary key makes history inserts idempotent: a retried
// transition inserts the same seq and conflicts instead of duplicating.
type StatusHistoryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	Status     int
	OccurredAt time.Time
}

// TableName specifies the database table name for order status history.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	address := aggregate.Address()
	addressDTO := AddressDTO{
		Street:     address.Street(),
		City:       address.City(),
		PostalCode: address.PostalCode(),
	}
	if coords := address.Coordinates(); coords != nil {
		lat, lng := coords.Lat, coords.Lng
		addressDTO.GeoLat = &lat
		addressDTO.GeoLng = &lng
	}

	orderID := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        orderID,
			ParticipantRef: item.ParticipantRef(),
			BibNumber:      item.BibNumber(),
			EventName:      item.EventName(),
		})
	}

	history := make([]StatusHistoryDTO, 0, len(aggregate.History()))
	for i, entry := range aggregate.History() {
		history = append(history, StatusHistoryDTO{
			OrderID:    orderID,
			Seq:        i + 1,
			Status:     int(entry.Status()),
			OccurredAt: entry.Timestamp(),
		})
	}

	return OrderDTO{
		ID:            orderID,
		CustomerID:    aggregate.CustomerID().Bytes(),
		CourierID:     courierID,
		Status:        int(aggregate.Status()),
		Address:       addressDTO,
		PickupCode:    aggregate.PickupCode().String(),
		DeliveryCode:  aggregate.DeliveryCode().String(),
		DistanceKm:    aggregate.DistanceKm(),
		DeliveryFee:   aggregate.DeliveryFee(),
		PaymentMethod: int(aggregate.PaymentMethod()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Version:       aggregate.Version(),
		Items:         items,
		History:       history,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including history using RestoreOrder,
// which re-validates every structural invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	var coords *kernel.GeoPoint
	if dto.Address.GeoLat != nil && dto.Address.GeoLng != nil {
		coords = &kernel.GeoPoint{Lat: *dto.Address.GeoLat, Lng: *dto.Address.GeoLng}
	}

	address, err := kernel.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.PostalCode, coords)
	if err != nil {
		return nil, err
	}

	pickupCode, err := kernel.NewSecurityCode(dto.PickupCode)
	if err != nil {
		return nil, err
	}

	deliveryCode, err := kernel.NewSecurityCode(dto.DeliveryCode)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ParticipantRef, itemDTO.BibNumber, itemDTO.EventName)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	historyDTOs := append([]StatusHistoryDTO(nil), dto.History...)
	sort.Slice(historyDTOs, func(i, j int) bool { return historyDTOs[i].Seq < historyDTOs[j].Seq })

	history := make([]order.HistoryEntry, 0, len(historyDTOs))
	for _, entryDTO := range historyDTOs {
		history = append(history, order.NewHistoryEntry(order.Status(entryDTO.Status), entryDTO.OccurredAt))
	}

	return order.RestoreOrder(
		id,
		customerID,
		items,
		address,
		order.Status(dto.Status),
		courierID,
		pickupCode,
		deliveryCode,
		dto.DistanceKm,
		dto.DeliveryFee,
		order.PaymentMethod(dto.PaymentMethod),
		order.PaymentStatus(dto.PaymentStatus),
		history,
		dto.Version,
	)
}
