package square

import "fmt"

// Money is an amount in minor currency units, passed through opaquely
// from the upstream API.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CatalogObject is a node in the upstream catalog tree. Only ITEM and
// ITEM_VARIATION objects are of interest to the gateway.
type CatalogObject struct {
	Type              string             `json:"type"`
	ID                string             `json:"id"`
	ItemData          *ItemData          `json:"item_data,omitempty"`
	ItemVariationData *ItemVariationData `json:"item_variation_data,omitempty"`
}

// ItemData holds the product-level fields of an ITEM object.
type ItemData struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	EcomImageURIs []string        `json:"ecom_image_uris,omitempty"`
	Variations    []CatalogObject `json:"variations,omitempty"`
}

// ItemVariationData holds the price-level fields of an ITEM_VARIATION object.
type ItemVariationData struct {
	Name       string `json:"name,omitempty"`
	PriceMoney *Money `json:"price_money,omitempty"`
}

// CreatePaymentRequest is the upstream payment-creation payload.
// IdempotencyKey must be fresh per attempt so client retries cannot
// double-charge.
type CreatePaymentRequest struct {
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"idempotency_key"`
	AmountMoney    Money  `json:"amount_money"`
	LocationID     string `json:"location_id,omitempty"`
	Note           string `json:"note,omitempty"`
}

// Payment is the upstream payment record.
type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountMoney Money  `json:"amount_money"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type listCatalogResponse struct {
	Objects []CatalogObject `json:"objects"`
	Cursor  string          `json:"cursor,omitempty"`
}

type retrieveCatalogResponse struct {
	Object *CatalogObject `json:"object"`
}

type createPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

// ErrorDetail is a single entry of the upstream error envelope.
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
}

type errorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

// APIError is a non-2xx upstream response with its parsed error list.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("square API error (status %d): %s: %s",
			e.StatusCode, e.Errors[0].Code, e.Errors[0].Detail)
	}
	return fmt.Sprintf("square API error (status %d)", e.StatusCode)
}
