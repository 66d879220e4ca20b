package services

import (
	"strings"

	"github.com/yukikurage/ocean-hazard-api/internal/models"
)

// PriorityRule maps a keyword set to a priority tier.
type PriorityRule struct {
	Keywords []string
	Priority models.ReportPriority
}

// PriorityRules is evaluated top to bottom and the first rule with a
// matching keyword wins. Order matters: "critical warning" is critical.
var PriorityRules = []PriorityRule{
	{Keywords: []string{"emergency", "dangerous", "critical"}, Priority: models.PriorityCritical},
	{Keywords: []string{"severe", "warning"}, Priority: models.PriorityHigh},
	{Keywords: []string{"moderate", "caution"}, Priority: models.PriorityMedium},
}

// DefaultPriority applies when no rule matches.
const DefaultPriority = models.PriorityLow

// ClassifyPriority infers a priority from free-text description using
// case-insensitive substring matching against PriorityRules.
func ClassifyPriority(description string) models.ReportPriority {
	return classifyWith(PriorityRules, description)
}

func classifyWith(rules []PriorityRule, description string) models.ReportPriority {
	lower := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Priority
			}
		}
	}
	return DefaultPriority
}
