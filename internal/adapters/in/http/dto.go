package http

import (
	"time"

	"bibdelivery/internal/core/application/usecases/queries"
	"bibdelivery/internal/core/domain/model/kernel"
	"bibdelivery/internal/core/domain/model/order"
)

// Error is the uniform JSON error envelope.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type geoPointPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressPayload struct {
	Street     string           `json:"street"`
	City       string           `json:"city,omitempty"`
	PostalCode string           `json:"postalCode"`
	Geo        *geoPointPayload `json:"geo,omitempty"`
}

func (p addressPayload) toDomain() (kernel.Address, error) {
	var coords *kernel.GeoPoint
	if p.Geo != nil {
		coords = &kernel.GeoPoint{Lat: p.Geo.Lat, Lng: p.Geo.Lng}
	}
	return kernel.NewAddress(p.Street, p.City, p.PostalCode, coords)
}

type itemPayload struct {
	ParticipantRef string `json:"participantRef"`
	BibNumber      string `json:"bibNumber,omitempty"`
	EventName      string `json:"eventName,omitempty"`
}

type createOrderRequest struct {
	Items           []itemPayload  `json:"items"`
	DeliveryAddress addressPayload `json:"deliveryAddress"`
	PaymentMethod   string         `json:"paymentMethod,omitempty"`
}

type manageOrderRequest struct {
	OrderID   string `json:"orderId"`
	CourierID string `json:"courierId"`
}

type orderActionRequest struct {
	Action string `json:"action"`
	Pin    string `json:"pin,omitempty"`
	Otp    string `json:"otp,omitempty"`
}

type estimateRequest struct {
	DeliveryAddress addressPayload `json:"deliveryAddress"`
}

type estimateResponse struct {
	DistanceKm  float64 `json:"distanceKm"`
	DeliveryFee int     `json:"deliveryFee"`
}

type historyEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type orderResponse struct {
	ID            string                 `json:"id"`
	CustomerID    string                 `json:"customerId"`
	CourierID     *string                `json:"courierId,omitempty"`
	Status        string                 `json:"status"`
	Address       addressPayload         `json:"deliveryAddress"`
	Items         []itemPayload          `json:"items"`
	PickupCode    string                 `json:"pickupCode,omitempty"`
	DeliveryCode  string                 `json:"deliveryCode,omitempty"`
	DistanceKm    float64                `json:"distanceKm"`
	DeliveryFee   int                    `json:"deliveryFee"`
	PaymentMethod string                 `json:"paymentMethod"`
	PaymentStatus string                 `json:"paymentStatus"`
	StatusHistory []historyEntryResponse `json:"statusHistory"`
	Version       int                    `json:"version"`
}

type orderSummaryResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CourierID     *string   `json:"courierId,omitempty"`
	Status        string    `json:"status"`
	Street        string    `json:"street"`
	PostalCode    string    `json:"postalCode"`
	DeliveryFee   int       `json:"deliveryFee"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// fromAggregate builds the response off a freshly mutated domain order.
// Used by command endpoints, which hold the aggregate after commit.
func fromAggregate(aggregate *order.Order) orderResponse {
	var courierID *string
	if id := aggregate.Courier(); id != nil {
		v := id.String()
		courierID = &v
	}

	address := aggregate.Address()
	addrPayload := addressPayload{
		Street:     address.Street(),
		City:       address.City(),
		PostalCode: address.PostalCode(),
	}
	if coords := address.Coordinates(); coords != nil {
		addrPayload.Geo = &geoPointPayload{Lat: coords.Lat, Lng: coords.Lng}
	}

	items := make([]itemPayload, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemPayload{
			ParticipantRef: item.ParticipantRef(),
			BibNumber:      item.BibNumber(),
			EventName:      item.EventName(),
		})
	}

	history := make([]historyEntryResponse, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, historyEntryResponse{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
		})
	}

	return orderResponse{
		ID:            aggregate.ID().String(),
		CustomerID:    aggregate.CustomerID().String(),
		CourierID:     courierID,
		Status:        aggregate.Status().String(),
		Address:       addrPayload,
		Items:         items,
		PickupCode:    aggregate.PickupCode().String(),
		DeliveryCode:  aggregate.DeliveryCode().String(),
		DistanceKm:    aggregate.DistanceKm(),
		DeliveryFee:   aggregate.DeliveryFee(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		StatusHistory: history,
		Version:       aggregate.Version(),
	}
}

// fromQueryResponse builds the response off the read model.
func fromQueryResponse(resp queries.GetOrderQueryResponse) orderResponse {
	var courierID *string
	if resp.CourierID != nil {
		v := resp.CourierID.String()
		courierID = &v
	}

	items := make([]itemPayload, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, itemPayload{
			ParticipantRef: item.ParticipantRef,
			BibNumber:      item.BibNumber,
			EventName:      item.EventName,
		})
	}

	history := make([]historyEntryResponse, 0, len(resp.History))
	for _, entry := range resp.History {
		history = append(history, historyEntryResponse{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
		})
	}

	return orderResponse{
		ID:            resp.ID.String(),
		CustomerID:    resp.CustomerID.String(),
		CourierID:     courierID,
		Status:        resp.Status,
		Address:       addressPayload{Street: resp.Street, City: resp.City, PostalCode: resp.PostalCode},
		Items:         items,
		PickupCode:    resp.PickupCode,
		DeliveryCode:  resp.DeliveryCode,
		DistanceKm:    resp.DistanceKm,
		DeliveryFee:   resp.DeliveryFee,
		PaymentMethod: resp.PaymentMethod,
		PaymentStatus: resp.PaymentStatus,
		StatusHistory: history,
		Version:       resp.Version,
	}
}

func fromSummary(resp queries.ListOrdersQueryResponse) orderSummaryResponse {
	var courierID *string
	if resp.CourierID != nil {
		v := resp.CourierID.String()
		courierID = &v
	}

	return orderSummaryResponse{
		ID:            resp.ID.String(),
		CustomerID:    resp.CustomerID.String(),
		CourierID:     courierID,
		Status:        resp.Status,
		Street:        resp.Street,
		PostalCode:    resp.PostalCode,
		DeliveryFee:   resp.DeliveryFee,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt,
	}
}
