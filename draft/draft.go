package draft

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirovest/sales-app/models"
	"github.com/kirovest/sales-app/utils"
)

// Step is the position in the four-step order form.
type Step int

const (
	StepClientAndLocation Step = iota + 1
	StepLineItems
	StepPaymentMeta
	StepPreview
)

func (s Step) String() string {
	switch s {
	case StepClientAndLocation:
		return "client_and_location"
	case StepLineItems:
		return "line_items"
	case StepPaymentMeta:
		return "payment_meta"
	case StepPreview:
		return "preview"
	}
	return "unknown"
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// PendingItem mirrors the line-item form inputs. Everything stays free text
// until AddLineItem parses it.
type PendingItem struct {
	ProductID *int
	Name      string
	Quantity  string
	UnitPrice string
	Notes     string
}

// Builder accumulates one order draft across the four steps. It is owned by
// a single screen instance for the duration of the flow; nothing else
// mutates it concurrently.
type Builder struct {
	id         string
	step       Step
	clientID   int
	clientName string
	location   models.LocationSelection
	catalog    []models.ProductCatalogEntry
	pending    PendingItem
	items      []models.LineItem
	grandTotal decimal.Decimal
	payment    models.PaymentMeta
	submitted  bool
}

func NewBuilder() *Builder {
	return &Builder{
		id:   uuid.NewString(),
		step: StepClientAndLocation,
	}
}

func (b *Builder) ID() string { return b.id }

func (b *Builder) Step() Step { return b.step }

func (b *Builder) Submitted() bool { return b.submitted }

// SetCatalog injects the product snapshot used by SelectProduct lookups.
func (b *Builder) SetCatalog(catalog []models.ProductCatalogEntry) {
	b.catalog = catalog
}

func (b *Builder) SelectClient(ref models.ClientRef) {
	b.clientID = ref.ID
	b.clientName = ref.Name
}

func (b *Builder) SetLocation(sel models.LocationSelection) {
	b.location = sel
}

func (b *Builder) Location() models.LocationSelection { return b.location }

// Next advances one step. Leaving step 1 requires a selected client and a
// non-empty location text; the other transitions are unguarded (an empty
// item list may proceed, submission catches it later). The preview step is
// the ceiling.
func (b *Builder) Next() error {
	switch b.step {
	case StepClientAndLocation:
		if b.clientID == 0 || b.location.DisplayText == "" {
			return utils.NewValidationError("missing required fields")
		}
		b.step = StepLineItems
	case StepLineItems:
		b.step = StepPaymentMeta
	case StepPaymentMeta:
		b.step = StepPreview
	}
	return nil
}

// Back steps backward without losing any accumulated data, clamping at 1.
func (b *Builder) Back() {
	if b.step > StepClientAndLocation {
		b.step--
	}
}

// SelectProduct primes the pending item with the catalog entry's name and
// price and clears the quantity. An unknown id is silently ignored, the
// form has always behaved that way.
func (b *Builder) SelectProduct(productID int) {
	for _, entry := range b.catalog {
		if entry.ID == productID {
			id := entry.ID
			b.pending.ProductID = &id
			b.pending.Name = entry.Name
			b.pending.UnitPrice = entry.UnitPrice.String()
			b.pending.Quantity = ""
			return
		}
	}
}

// SetQuantity keeps digits only; everything else is dropped silently.
func (b *Builder) SetQuantity(text string) {
	b.pending.Quantity = nonDigits.ReplaceAllString(text, "")
}

// SetUnitPrice overrides the catalog price for the pending item.
func (b *Builder) SetUnitPrice(text string) {
	b.pending.UnitPrice = strings.TrimSpace(text)
}

func (b *Builder) SetNotes(text string) {
	b.pending.Notes = text
}

func (b *Builder) Pending() PendingItem { return b.pending }

// AddLineItem parses the pending inputs, appends the line and grows the
// grand total. Name, quantity and price must all be present.
func (b *Builder) AddLineItem() error {
	if b.pending.Name == "" || b.pending.Quantity == "" || b.pending.UnitPrice == "" {
		return utils.NewValidationError("missing fields for item")
	}

	quantity, err := strconv.Atoi(b.pending.Quantity)
	if err != nil || quantity <= 0 {
		return utils.NewValidationError("invalid quantity")
	}
	unitPrice, err := decimal.NewFromString(b.pending.UnitPrice)
	if err != nil {
		return utils.NewValidationError("invalid price")
	}

	lineValue := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	b.items = append(b.items, models.LineItem{
		ProductID: b.pending.ProductID,
		Name:      b.pending.Name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineValue: lineValue,
		Notes:     b.pending.Notes,
	})
	b.grandTotal = b.grandTotal.Add(lineValue)
	b.pending = PendingItem{}
	return nil
}

// DeleteLineItem removes one line and shrinks the grand total by its value.
// An out-of-range index reports an IndexError and changes nothing.
func (b *Builder) DeleteLineItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return &utils.IndexError{Index: index, Length: len(b.items)}
	}

	removed := b.items[index]
	b.items = append(b.items[:index], b.items[index+1:]...)
	b.grandTotal = b.grandTotal.Sub(removed.LineValue)
	return nil
}

func (b *Builder) Items() []models.LineItem {
	items := make([]models.LineItem, len(b.items))
	copy(items, b.items)
	return items
}

func (b *Builder) GrandTotal() decimal.Decimal { return b.grandTotal }

func (b *Builder) SetPayment(meta models.PaymentMeta) {
	b.payment = meta
}

func (b *Builder) Payment() models.PaymentMeta { return b.payment }

// ValidateForSubmit is the submit guard: fired from the payment step, with a
// client, a location text and at least one item. Failing it must never issue
// a network request.
func (b *Builder) ValidateForSubmit() error {
	if b.submitted {
		return utils.NewValidationError("order already submitted")
	}
	if b.step != StepPaymentMeta {
		return utils.NewValidationError("submit is only available from the payment step")
	}
	if b.clientID == 0 || b.location.DisplayText == "" || len(b.items) == 0 {
		return utils.NewValidationError("missing required fields")
	}
	return nil
}

// Draft snapshots the builder for submission.
func (b *Builder) Draft() models.OrderDraft {
	return models.OrderDraft{
		ID:         b.id,
		ClientID:   b.clientID,
		ClientName: b.clientName,
		Location:   b.location,
		Items:      b.Items(),
		GrandTotal: b.grandTotal,
		Payment:    b.payment,
	}
}

// MarkSubmitted moves the builder into its terminal state; the draft is
// consumed and a second submission is refused.
func (b *Builder) MarkSubmitted() {
	b.submitted = true
}

// ConfirmBackToHome is the preview screen's confirmation. It submits
// nothing and discards the draft like any navigation away.
func (b *Builder) ConfirmBackToHome() error {
	if b.step != StepPreview {
		return utils.NewValidationError("confirmation is only available from the preview step")
	}
	b.reset()
	return nil
}

func (b *Builder) reset() {
	catalog := b.catalog
	*b = Builder{
		id:      uuid.NewString(),
		step:    StepClientAndLocation,
		catalog: catalog,
	}
}
