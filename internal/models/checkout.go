package models

type CheckoutStep string

const (
	CheckoutStepCart       CheckoutStep = "cart"
	CheckoutStepShipping   CheckoutStep = "shipping"
	CheckoutStepPayment    CheckoutStep = "payment"
	CheckoutStepProcessing CheckoutStep = "processing"
	CheckoutStepCompleted  CheckoutStep = "completed"
)

type ShippingDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Confirmation is shown once payment completes. It is not stored anywhere.
type Confirmation struct {
	Reference string       `json:"reference"`
	Email     string       `json:"email"`
	Summary   OrderSummary `json:"summary"`
}

type CheckoutState struct {
	Step         CheckoutStep    `json:"step"`
	Shipping     ShippingDetails `json:"shipping"`
	Summary      OrderSummary    `json:"summary"`
	Confirmation *Confirmation   `json:"confirmation,omitempty"`
}
