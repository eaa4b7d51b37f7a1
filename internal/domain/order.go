package domain

import "time"

// Order statuses. Nothing transitions out of pending yet; reconciliation of
// orders whose payment-preference call failed is a manual process.
const OrderStatusPending = "pending"

// ReferralNone is stored when a checkout arrives without a referral code.
const ReferralNone = "none"

type LineItem struct {
	Name      string `json:"name" validate:"required" dynamodbav:"name"`
	Quantity  int    `json:"quantity" validate:"required,gt=0" dynamodbav:"quantity"`
	UnitPrice string `json:"price" validate:"required" dynamodbav:"unit_price"`
}

type Order struct {
	OrderID      string     `json:"id" dynamodbav:"order_id"`
	BuyerEmail   string     `json:"buyer_email" dynamodbav:"buyer_email"`
	Items        []LineItem `json:"items" dynamodbav:"items"`
	ReferralCode string     `json:"referral_code" dynamodbav:"referral_code"`
	Status       string     `json:"status" dynamodbav:"status"`
	PreferenceID string     `json:"payment_preference_id,omitempty" dynamodbav:"payment_preference_id"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
}

// CheckoutRequest carries the storefront's checkout payload. The buyer email
// and referral code keep the field names the frontend has always sent; the
// buyer is not required to hold a registered Account.
type CheckoutRequest struct {
	Items        []LineItem `json:"items" validate:"required,min=1,dive"`
	BuyerEmail   string     `json:"usuario" validate:"required"`
	ReferralCode string     `json:"codigoIndicacao"`
}
