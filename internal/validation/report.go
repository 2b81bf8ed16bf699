// internal/validation/report.go
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Report is the full validation verdict for one bundle.
type Report struct {
	BundleVersion string        `json:"bundleVersion"`
	Checks        []CheckResult `json:"checks"`
	Passed        bool          `json:"passed"`
	GeneratedAt   time.Time     `json:"generatedAt"`
}

// Markdown renders the report as a markdown table.
func (r *Report) Markdown() string {
	var sb strings.Builder

	status := "PASSED"
	if !r.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(&sb, "# Calibration Validation Report\n\n")
	fmt.Fprintf(&sb, "Bundle: `%s`  \nResult: **%s**\n\n", r.BundleVersion, status)
	sb.WriteString("| Check | Result | Diagnostics |\n")
	sb.WriteString("|-------|--------|-------------|\n")

	for _, c := range r.Checks {
		result := "pass"
		if !c.Passed {
			result = "FAIL"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", c.Name, result, formatMetrics(c.Metrics))
	}

	return sb.String()
}

func formatMetrics(m map[string]float64) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.4g", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
