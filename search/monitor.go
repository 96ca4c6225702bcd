package search

import "github.com/poiesic/prodir/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterRanking(results []*core.SearchResult)
	AfterDiscovery(companies []*core.Company)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterRanking(_ []*core.SearchResult) {}
func (n *noopMonitor) AfterDiscovery(_ []*core.Company)    {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)       {}
