package valueobject

// Severity classifies how urgent a subscription's remaining window is.
// It drives the tone of the remaining-time indicator shown to schools.
type Severity string

const (
	SeverityNeutral  Severity = "neutral"
	SeverityHealthy  Severity = "healthy"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}
