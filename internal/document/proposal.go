package document

import (
	"time"

	"github.com/kikoi/portfolio-backend/internal/model"
)

const estimateDisclaimer = "This is a preliminary estimate based on the features selected. " +
	"A formal, detailed proposal with a fixed price will be provided after a complimentary " +
	"30-minute consultation. Prices are valid for 30 days."

// ProposalRenderer turns a Proposal into its PDF estimate.
type ProposalRenderer struct {
	author string
	now    func() time.Time
}

func NewProposalRenderer(author string) *ProposalRenderer {
	return &ProposalRenderer{author: author, now: time.Now}
}

// Layout returns the unfinished builder for p. Features appear in submitted
// order and the feature section is omitted when none were selected.
func (r *ProposalRenderer) Layout(p *model.Proposal) *Builder {
	now := r.now()
	b := NewBuilder("Project Budget Estimate", r.author, now).
		Title("Project Budget Estimate").
		Line("Prepared for: " + p.ClientEmail).
		Line("Date: " + now.Format("January 2, 2006")).
		Divider().
		Heading("Project Summary").
		Line("Project Type: " + p.ProjectType.Label)

	if features := p.FeatureLabels(); len(features) > 0 {
		b.Label("Selected Core Features:").Bullets(features)
	}

	return b.Heading("Financial Estimate").
		Label("Estimated Budget Range:").
		Highlight(p.EstimatedBudget.Range()).
		Footnote(estimateDisclaimer)
}

// Render produces the finished PDF for p.
func (r *ProposalRenderer) Render(p *model.Proposal) ([]byte, error) {
	return r.Layout(p).Finish()
}
