package diag

// Severity of a diagnostic. Only SevError fails a file.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...][2]string{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s][0]
	}
	return "UNKNOWN"
}

// Label: метка в нижнем регистре для коротких отчётов и checkstyle.
// Неизвестные уровни считаются info.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s][1]
	}
	return severityNames[SevInfo][1]
}
