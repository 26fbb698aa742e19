package domain

import (
	"fmt"
	"strings"
)

const noClearDiagnosis = "No clear diagnosis could be determined from the description."

// ProbableCause is one ranked hit from the diagnostics backend.
type ProbableCause struct {
	Failure    string   `json:"failure"`
	Causes     []string `json:"causes"`
	Confidence float64  `json:"confidence"`
}

// FormatDiagnosisReply renders the best (first) result as chat text.
func FormatDiagnosisReply(results []ProbableCause) string {
	if len(results) == 0 {
		return noClearDiagnosis
	}

	best := results[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Possible issue detected: %s\n\n", strings.ReplaceAll(best.Failure, "_", " "))
	b.WriteString("Likely causes:\n")
	for i, cause := range best.Causes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + cause)
	}
	fmt.Fprintf(&b, "\n\nConfidence: %.1f%%", best.Confidence*100)

	return b.String()
}
