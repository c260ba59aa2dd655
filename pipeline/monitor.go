package pipeline

import (
	"github.com/equilex/equilex/aggregate"
	"github.com/equilex/equilex/core"
)

// RunMonitor provides hooks to observe a document processing run.
// Implement this interface to track intermediate stages and counts.
type RunMonitor interface {
	Start(doc *core.Document)
	AfterSegmentation(pages, sentences int)
	AfterPageMatched(page, sentences, evidencesAdded int)
	AfterAggregation(result *aggregate.Result)
	Finish(summary *core.RunSummary)
}

// noopMonitor is a no-op implementation of RunMonitor
type noopMonitor struct{}

var _ RunMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Document)                 {}
func (n *noopMonitor) AfterSegmentation(_, _ int)             {}
func (n *noopMonitor) AfterPageMatched(_, _, _ int)           {}
func (n *noopMonitor) AfterAggregation(_ *aggregate.Result)   {}
func (n *noopMonitor) Finish(_ *core.RunSummary)              {}
