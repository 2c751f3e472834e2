package queries

import (
	"context"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads role-filtered order summaries from the database.
// Customers get their own orders newest first, couriers get their open tasks
// (assigned, picked up, out for delivery), admins get everything.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the role-filtered list query.
// Returns auth.ErrForbidden for organizers, who have no order list.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	caller auth.Identity,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseSelect = `
		SELECT
			id,
			customer_id,
			courier_id,
			status,
			address_street,
			address_postal_code,
			delivery_fee,
			payment_status,
			created_at
		FROM orders
	`

	var tx *gorm.DB
	switch {
	case caller.IsAdmin():
		tx = h.db.WithContext(ctx).Raw(baseSelect + ` ORDER BY created_at DESC`)
	case caller.Role == auth.RoleCustomer:
		tx = h.db.WithContext(ctx).Raw(baseSelect+` WHERE customer_id = ? ORDER BY created_at DESC`,
			caller.ID.Bytes())
	case caller.IsCourier():
		tx = h.db.WithContext(ctx).Raw(baseSelect+` WHERE courier_id = ? AND status IN ? ORDER BY created_at DESC`,
			caller.ID.Bytes(),
			[]int{int(order.Assigned), int(order.PickedFromOrganizer), int(order.OutForDelivery)})
	default:
		return nil, auth.ErrForbidden
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp          ListOrdersQueryResponse
			id            uuid.UUID
			customerID    uuid.UUID
			courierID     uuid.NullUUID
			status        int
			paymentStatus int
			createdAt     time.Time
		)

		err = rows.Scan(
			&id,
			&customerID,
			&courierID,
			&status,
			&resp.Street,
			&resp.PostalCode,
			&resp.DeliveryFee,
			&paymentStatus,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			resp.CourierID = &cID
		}

		resp.Status = order.Status(status).String()
		resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
