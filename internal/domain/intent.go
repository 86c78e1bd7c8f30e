package domain

// IntentType classifies what the user wants to do in line mode.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentChoose             // pick an option by 1-based number
	IntentNext
	IntentBack
	IntentReset // start over / try another issue
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentChoose:
		return "choose"
	case IntentNext:
		return "next"
	case IntentBack:
		return "back"
	case IntentReset:
		return "reset"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type   IntentType
	Choice int    // 1-based option number for IntentChoose
	Raw    string // trimmed input
}
