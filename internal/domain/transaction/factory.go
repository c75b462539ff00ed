package transaction

import (
	"clubcore/internal/domain/catalog"
	"clubcore/internal/pkg/clock"

	"github.com/google/uuid"
)

// ItemSpec is the client-declared intent for one line item. Declared
// prices are re-verified against the catalog before anything persists.
type ItemSpec struct {
	ResourceID        uuid.UUID
	DeclaredUnitPrice int64
	Quantity          int32
}

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateTransaction validates the declared intent against live catalog
// state and produces the snapshot the rest of the payment flow operates
// on. All precondition failures happen here, before any persistence.
//
// A zero total short-circuits straight to completed: no gateway round-trip
// is needed. The availability check is advisory only; the ledger enforces
// no lower bound on concurrent decrements.
func (f *Factory) CreateTransaction(
	kind Kind,
	payer Payer,
	specs []ItemSpec,
	resources map[uuid.UUID]*catalog.Resource,
	declaredTotal int64,
) (*Transaction, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if payer.userID == nil && payer.guest == nil {
		return nil, ErrMissingPayer
	}
	if payer.userID != nil && payer.guest != nil {
		return nil, ErrAmbiguousPayer
	}
	if len(specs) == 0 {
		return nil, ErrNoLineItems
	}

	now := f.Clock.Now()
	lineItems := make([]LineItem, 0, len(specs))
	requested := make(map[uuid.UUID]int32, len(specs))
	var total int64

	for _, spec := range specs {
		if spec.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		res, ok := resources[spec.ResourceID]
		if !ok {
			return nil, ErrUnknownResource
		}
		if !kindsMatch(kind, res.Kind()) {
			return nil, ErrKindMismatch
		}

		currentPrice := res.CurrentPrice(now)
		if spec.DeclaredUnitPrice != currentPrice {
			return nil, ErrPriceMismatch
		}

		// Availability is checked against the running total per resource,
		// so repeated line items for the same resource are summed.
		requested[spec.ResourceID] += spec.Quantity
		if !res.HasAvailable(requested[spec.ResourceID]) {
			return nil, ErrInsufficientStock
		}

		item := LineItem{
			ResourceID: res.ID(),
			Name:       res.Name(),
			UnitPrice:  currentPrice,
			Quantity:   spec.Quantity,
		}
		lineItems = append(lineItems, item)
		total += item.Subtotal()
	}

	if total != declaredTotal {
		return nil, ErrTotalMismatch
	}

	status := StatusPendingPayment
	if total == 0 {
		status = StatusCompleted
	}

	return &Transaction{
		id:          uuid.New(),
		kind:        kind,
		status:      status,
		payer:       payer,
		lineItems:   lineItems,
		totalAmount: total,
	}, nil
}

func kindsMatch(txKind Kind, resKind catalog.Kind) bool {
	switch txKind {
	case KindRegistration:
		return resKind == catalog.KindEvent
	case KindOrder:
		return resKind == catalog.KindProduct
	default:
		return false
	}
}
