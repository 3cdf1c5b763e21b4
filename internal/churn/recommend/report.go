// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package recommend

import (
	"fmt"
	"strings"

	"github.com/churnscope/churnscope/internal/churn"
)

// FormatReport renders a recommendation as a plain-text report suitable
// for logs, email bodies, or console output.
func FormatReport(rec *churn.Recommendation) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	sep := strings.Repeat("-", 60)

	b.WriteString(rule + "\n")
	b.WriteString("ACTION RECOMMENDATION REPORT\n")
	b.WriteString(rule + "\n")

	fmt.Fprintf(&b, "\n%s\n", rec.Summary)
	fmt.Fprintf(&b, "\nRisk Level: %s\n", rec.RiskTier)
	fmt.Fprintf(&b, "Urgency: %s\n", rec.Urgency)
	fmt.Fprintf(&b, "Churn Probability: %.1f%%\n", rec.ChurnProbability*100)

	fmt.Fprintf(&b, "\n%s\n", sep)
	b.WriteString("PRIMARY ACTION:\n")
	fmt.Fprintf(&b, "  >> %s\n", rec.PrimaryAction)

	fmt.Fprintf(&b, "\n%s\n", sep)
	b.WriteString("RECOMMENDED ACTIONS:\n")
	for i, action := range rec.RankedActions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
	}

	if len(rec.FactorInsights) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sep)
		b.WriteString("FACTOR-SPECIFIC INSIGHTS:\n")
		for _, in := range rec.FactorInsights {
			marker := ""
			if in.IsTopFactor {
				marker = " [TOP FACTOR]"
			}
			fmt.Fprintf(&b, "\n  %s%s\n", strings.ToUpper(in.Feature), marker)
			fmt.Fprintf(&b, "    Reason: %s\n", in.Reason)
			fmt.Fprintf(&b, "    Action: %s\n", in.Action)
		}
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}
