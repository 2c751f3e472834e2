package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/auth"
	"bibdelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database.
// Performs the viewer access check after loading the row, so an order that
// exists but belongs to someone else surfaces as forbidden, not as not found.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle loads the order with its items and history.
// Returns errs.ErrObjectNotFound for unknown orders and auth.ErrForbidden
// when the caller is neither the owner, the assigned courier, nor an admin.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	caller auth.Identity,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadOrderRow(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = h.checkAccess(caller, resp); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.History, err = h.loadHistory(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrderRow(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			courier_id,
			status,
			address_street,
			address_city,
			address_postal_code,
			pickup_code,
			delivery_code,
			distance_km,
			delivery_fee,
			payment_method,
			payment_status,
			version,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		resp          GetOrderQueryResponse
		id            uuid.UUID
		customerID    uuid.UUID
		courierID     uuid.NullUUID
		status        int
		paymentMethod int
		paymentStatus int
		createdAt     time.Time
	)

	err := row.Scan(
		&id,
		&customerID,
		&courierID,
		&status,
		&resp.Street,
		&resp.City,
		&resp.PostalCode,
		&resp.PickupCode,
		&resp.DeliveryCode,
		&resp.DistanceKm,
		&resp.DeliveryFee,
		&paymentMethod,
		&paymentStatus,
		&resp.Version,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if courierID.Valid {
		cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if cErr != nil {
			return GetOrderQueryResponse{}, cErr
		}
		resp.CourierID = &cID
	}

	resp.Status = order.Status(status).String()
	resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
	resp.PaymentStatus = order.PaymentStatus(paymentStatus).String()
	resp.CreatedAt = createdAt
	return resp, nil
}

func (h GetOrderQueryHandler) checkAccess(caller auth.Identity, resp GetOrderQueryResponse) error {
	if caller.IsAdmin() {
		return nil
	}
	if caller.Role == auth.RoleCustomer && resp.CustomerID.IsEqual(caller.ID) {
		return nil
	}
	if caller.IsCourier() && resp.CourierID != nil && resp.CourierID.IsEqual(caller.ID) {
		return nil
	}
	return auth.ErrForbidden
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT participant_ref, bib_number, event_name
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		if err = rows.Scan(&item.ParticipantRef, &item.BibNumber, &item.EventName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadHistory(ctx context.Context, orderID kernel.UUID) ([]OrderHistoryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]OrderHistoryResponse, 0)
	for rows.Next() {
		var (
			status     int
			occurredAt time.Time
		)
		if err = rows.Scan(&status, &occurredAt); err != nil {
			return nil, err
		}
		history = append(history, OrderHistoryResponse{
			Status:    order.Status(status).String(),
			Timestamp: occurredAt,
		})
	}

	return history, rows.Err()
}
