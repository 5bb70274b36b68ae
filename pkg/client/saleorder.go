package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SaleOrderClient talks to the billing service that issues sale orders
// for confirmed bookings.
type SaleOrderClient struct {
	httpClient *HttpClient
}

func NewSaleOrderClient(baseURL string, timeout time.Duration) *SaleOrderClient {
	return &SaleOrderClient{
		httpClient: NewHttpClientWithTimeout(baseURL, timeout),
	}
}

type SaleOrderRequest struct {
	BookingID   string  `json:"booking_id"`
	PartnerID   string  `json:"partner_id"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency,omitempty"`
}

type SaleOrderResponse struct {
	OrderRef string `json:"order_ref"`
	Status   string `json:"status"`
}

// CreateOrder registers a sale order for the booking. Callers treat a
// failure here as fatal to the confirmation.
func (c *SaleOrderClient) CreateOrder(ctx context.Context, req SaleOrderRequest) (*SaleOrderResponse, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/orders", req)
	if err != nil {
		return nil, fmt.Errorf("sale order request failed: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sale order service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var order SaleOrderResponse
	if err := resp.DecodeJSON(&order); err != nil {
		return nil, fmt.Errorf("could not decode sale order response: %w", err)
	}
	return &order, nil
}

// CancelOrder voids the sale order attached to a cancelled booking.
// Missing orders are not an error.
func (c *SaleOrderClient) CancelOrder(ctx context.Context, orderRef string) error {
	resp, err := c.httpClient.DELETE(ctx, "/api/v1/orders/"+orderRef)
	if err != nil {
		return fmt.Errorf("sale order cancel failed: %w", err)
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("sale order service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}
	return nil
}
