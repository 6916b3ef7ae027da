package guard

// Default texts of the fallback view
const (
	DefaultFallbackMessage = "Oops, there is an error!"
	DefaultRetryLabel      = "Try again?"
)

// Fallback is the plain fallback view: a generic message and one retry
// control. It never shows fault details.
type Fallback struct {
	Message    string
	RetryLabel string
}

// DefaultFallback returns the fallback with the default texts
func DefaultFallback() Fallback {
	return Fallback{
		Message:    DefaultFallbackMessage,
		RetryLabel: DefaultRetryLabel,
	}
}

// View renders the message followed by the retry control
func (f Fallback) View() string {
	return f.Message + "\n\n" + RetryControl(f.RetryLabel)
}

// RetryControl renders the label of the retry action as a button
func RetryControl(label string) string {
	return "[ " + label + " ]"
}
