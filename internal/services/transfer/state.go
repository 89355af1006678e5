package transfer

// VerificationStatus enumerates the recipient verification states.
type VerificationStatus int

const (
	StatusIdle VerificationStatus = iota
	StatusChecking
	StatusVerified
	StatusRejected
)

func (s VerificationStatus) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusChecking:
		return "CHECKING"
	case StatusVerified:
		return "VERIFIED"
	case StatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Beneficiary identifies a verified transfer recipient.
type Beneficiary struct {
	FullName      string `json:"full_name"`
	Username      string `json:"username"`
	AccountNumber string `json:"account_number"`
}

// VerificationState is a tagged variant: beneficiary data exists only in
// the verified state, a rejection reason only in the rejected state.
// Constructors are the only way to build one, so combinations like
// "verified with no beneficiary" cannot occur.
type VerificationState struct {
	status      VerificationStatus
	beneficiary *Beneficiary
	reason      string
}

func Idle() VerificationState {
	return VerificationState{status: StatusIdle}
}

func Checking() VerificationState {
	return VerificationState{status: StatusChecking}
}

func Verified(b Beneficiary) VerificationState {
	return VerificationState{status: StatusVerified, beneficiary: &b}
}

func Rejected(reason string) VerificationState {
	return VerificationState{status: StatusRejected, reason: reason}
}

func (v VerificationState) Status() VerificationStatus { return v.status }

// Beneficiary returns the verified recipient, if any.
func (v VerificationState) Beneficiary() (Beneficiary, bool) {
	if v.status != StatusVerified || v.beneficiary == nil {
		return Beneficiary{}, false
	}
	return *v.beneficiary, true
}

// Reason returns the rejection reason, if any.
func (v VerificationState) Reason() string { return v.reason }
