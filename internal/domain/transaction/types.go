package transaction

type Kind string

const (
	KindOrder        Kind = "order"
	KindRegistration Kind = "registration"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindOrder, KindRegistration:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusCompleted      Status = "completed"
	StatusFailed         Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

// IsSettled reports whether the status is terminal. A settled transaction
// never transitions again.
func (s Status) IsSettled() bool {
	return s == StatusCompleted || s == StatusFailed
}

// SettlementOutcome classifies the gateway's callback vocabulary into the
// three cases the dispatcher acts on.
type SettlementOutcome int

const (
	// OutcomeUnknown covers intermediate or unrecognized gateway statuses;
	// no transition is applied.
	OutcomeUnknown SettlementOutcome = iota
	OutcomeApprove
	OutcomeFail
)

// Gateway callback status vocabulary.
const (
	GatewayStatusApproved = "APPROVED"
	GatewayStatusDeclined = "DECLINED"
	GatewayStatusError    = "ERROR"
	GatewayStatusVoided   = "VOIDED"
)

func OutcomeForGatewayStatus(status string) SettlementOutcome {
	switch status {
	case GatewayStatusApproved:
		return OutcomeApprove
	case GatewayStatusDeclined, GatewayStatusError, GatewayStatusVoided:
		return OutcomeFail
	default:
		return OutcomeUnknown
	}
}
