package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// OrderService submits completed drafts and reads orders back.
type OrderService struct {
	api      *APIClient
	validate *validator.Validate
}

func NewOrderService(api *APIClient) *OrderService {
	return &OrderService{
		api:      api,
		validate: validator.New(),
	}
}

// ServiceLine is one product line of the POST /orders/make payload. Price is
// the line's current unit price, so user overrides travel as entered.
type ServiceLine struct {
	ServiceID int             `json:"service_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
}

// OrderRequest is the POST /orders/make payload.
type OrderRequest struct {
	ClientID            int                 `json:"client_id" validate:"required"`
	Location            string              `json:"location" validate:"required"`
	LocationCoordinates *models.Coordinates `json:"location_coordinates"`
	Appointment         string              `json:"appointment" validate:"required"`
	Services            []ServiceLine       `json:"services" validate:"required,min=1,dive"`
	GrandTotal          decimal.Decimal     `json:"grand_total"`
	PaymentMethod       string              `json:"payment_method" validate:"oneof=cash deferred"`
	Refund              string              `json:"refund" validate:"oneof=yes no"`
	RefundAmount        decimal.Decimal     `json:"refund_amount"`
	SalesPermit         string              `json:"sales_permit" validate:"oneof=yes no"`
}

// BuildOrderRequest maps a draft onto the wire payload, normalizing the
// picker values ("نقدي", "يوجد", "يصرح") to their canonical wire forms and
// stamping the appointment in Cairo time.
func BuildOrderRequest(draft models.OrderDraft) OrderRequest {
	services := make([]ServiceLine, 0, len(draft.Items))
	for _, item := range draft.Items {
		line := ServiceLine{
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		}
		if item.ProductID != nil {
			line.ServiceID = *item.ProductID
		}
		services = append(services, line)
	}

	refund := "no"
	refundAmount := decimal.Zero
	if returnsPresent(draft.Payment.Returns) {
		refund = "yes"
		if amount, err := decimal.NewFromString(draft.Payment.ReturnsValue); err == nil {
			refundAmount = amount
		}
	}

	return OrderRequest{
		ClientID:            draft.ClientID,
		Location:            draft.Location.DisplayText,
		LocationCoordinates: draft.Location.Coordinates,
		Appointment:         time.Now().In(cairoZone()).Format(time.RFC3339),
		Services:            services,
		GrandTotal:          draft.GrandTotal,
		PaymentMethod:       NormalizePaymentMethod(draft.Payment.Method),
		Refund:              refund,
		RefundAmount:        refundAmount,
		SalesPermit:         normalizeSalesPermit(draft.Payment.SalesPermission),
	}
}

// Submit serializes a completed draft and POSTs it. The guard runs before any
// network call; on any failure the caller's draft stays intact for retry.
func (s *OrderService) Submit(ctx context.Context, draft models.OrderDraft) (*models.OrderReceipt, error) {
	if draft.ClientID == 0 || draft.Location.DisplayText == "" || len(draft.Items) == 0 {
		return nil, utils.NewValidationError("missing required fields")
	}

	req := BuildOrderRequest(draft)
	if err := s.validate.Struct(req); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	env, err := s.api.post(ctx, "/orders/make", req, true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var receipt models.OrderReceipt
	if err := json.Unmarshal(env.Data, &receipt); err != nil {
		return nil, utils.NewProtocolError(err)
	}

	utils.InfoLogger.Infof("order %s created (id %d), total %s",
		receipt.OrderNumber, receipt.ID, utils.FormatPounds(draft.GrandTotal))
	return &receipt, nil
}

// UpdateStatus marks an order finished or cancelled.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, status string) error {
	if status != "finished" && status != "cancelled" {
		return utils.NewValidationError("invalid order status")
	}

	env, err := s.api.post(ctx, fmt.Sprintf("/orders/%d/update", orderID), map[string]string{
		"status": status,
	}, true)
	if err != nil {
		return err
	}
	if !env.Success {
		return businessError(env)
	}
	return nil
}

// List fetches orders filtered by status. On a failure envelope it degrades
// to an empty list alongside the error, so a listing screen can still render.
func (s *OrderService) List(ctx context.Context, status string) ([]models.OrderSummary, error) {
	env, err := s.api.get(ctx, "/orders?status="+status, true)
	if err != nil {
		return []models.OrderSummary{}, err
	}
	if !env.Success {
		return []models.OrderSummary{}, businessError(env)
	}

	var orders []models.OrderSummary
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return []models.OrderSummary{}, utils.NewProtocolError(err)
	}
	return orders, nil
}

// Get fetches one order's detail.
func (s *OrderService) Get(ctx context.Context, orderID int) (*models.OrderDetail, error) {
	env, err := s.api.get(ctx, fmt.Sprintf("/orders/%d", orderID), true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, businessError(env)
	}

	var detail models.OrderDetail
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		return nil, utils.NewProtocolError(err)
	}
	return &detail, nil
}

// NormalizePaymentMethod maps the picker value to the wire value. Anything
// that is not cash is deferred, exactly as the app always sent it.
func NormalizePaymentMethod(method string) string {
	if method == "نقدي" || method == "cash" {
		return "cash"
	}
	return "deferred"
}

func returnsPresent(returns string) bool {
	switch returns {
	case "يوجد", "present", "yes":
		return true
	}
	return false
}

func normalizeSalesPermit(permission string) string {
	switch permission {
	case "يصرح", "yes":
		return "yes"
	}
	return "no"
}

// cairoZone resolves Africa/Cairo, falling back to a fixed UTC+2 offset when
// the runtime has no tzdata.
func cairoZone() *time.Location {
	if loc, err := time.LoadLocation("Africa/Cairo"); err == nil {
		return loc
	}
	return time.FixedZone("EET", 2*60*60)
}
