package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// BudgetCurrency is the currency every estimate is quoted in.
const BudgetCurrency = "KES"

const ProposalStatusNew = "new"

// Option is a labelled choice from the budget calculator (project type or feature).
type Option struct {
	Label string `json:"label"`
	Key   string `json:"key,omitempty"`
}

// UnmarshalJSON accepts either a bare label ("Blog") or an object with a label.
func (o *Option) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*o = Option{Label: label}
		return nil
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Option(p)
	return nil
}

// Budget is an estimated price range.
type Budget struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range renders the budget as "{min} - {max} KES".
func (b Budget) Range() string {
	return formatAmount(b.Min) + " - " + formatAmount(b.Max) + " " + BudgetCurrency
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Proposal is a project estimate request. SelectedFeatures keeps the order the
// caller submitted.
type Proposal struct {
	ID               string    `json:"id"`
	ClientEmail      string    `json:"client_email"`
	ProjectType      Option    `json:"project_type"`
	SelectedFeatures []Option  `json:"selected_features"`
	EstimatedBudget  Budget    `json:"estimated_budget"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// FeatureLabels returns the feature labels in submitted order.
func (p *Proposal) FeatureLabels() []string {
	labels := make([]string, 0, len(p.SelectedFeatures))
	for _, f := range p.SelectedFeatures {
		labels = append(labels, f.Label)
	}
	return labels
}
