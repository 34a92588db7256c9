package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money travels as plain JSON numbers on the kirovest wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineItem is one product line inside a draft. Items are appended and
// deleted, never edited in place.
type LineItem struct {
	ProductID *int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineValue decimal.Decimal
	Notes     string
}

// PaymentMeta carries the step-3 payment and credit fields exactly as the
// user entered them. Normalization to wire values happens at submission.
type PaymentMeta struct {
	Method          string
	Returns         string
	ReturnsValue    string
	CreditLimit     string
	UnderCollection string
	Available       string
	MonthlyCash     string
	MonthlyCredit   string
	SalesPermission string
}

// OrderDraft is the read-only snapshot of a builder, consumed by submission.
type OrderDraft struct {
	ID         string
	ClientID   int
	ClientName string
	Location   LocationSelection
	Items      []LineItem
	GrandTotal decimal.Decimal
	Payment    PaymentMeta
}

// OrderReceipt identifies a successfully created order.
type OrderReceipt struct {
	ID          int    `json:"id"`
	OrderNumber string `json:"order_number"`
}

// OrderSummary is one row of GET /orders.
type OrderSummary struct {
	ID            int             `json:"id"`
	Client        ClientRef       `json:"client"`
	Appointment   string          `json:"appointment"`
	Location      string          `json:"location"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	OrderStatus   string          `json:"order_status"`
	PaymentStatus string          `json:"payment_status"`
}

// OrderLine is one service row inside GET /orders/{id}.
type OrderLine struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    struct {
		Amount decimal.Decimal `json:"amount"`
	} `json:"price"`
	Image *struct {
		URL string `json:"url"`
	} `json:"image,omitempty"`
}

// OrderDetail is the full GET /orders/{id} payload.
type OrderDetail struct {
	ID            int             `json:"id"`
	Client        ClientRef       `json:"client"`
	Appointment   string          `json:"appointment"`
	Location      string          `json:"location"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	OrderStatus   string          `json:"order_status"`
	PaymentStatus string          `json:"payment_status"`
	Refund        string          `json:"refund"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	Services      []OrderLine     `json:"services"`
}
