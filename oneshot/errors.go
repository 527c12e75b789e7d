package oneshot

import (
	"fmt"

	"github.com/coregx/rtverify/stepgame"
)

// ConfigError reports an unknown generator or search-strategy name, surfaced
// immediately to the caller rather than discovered
// mid-search.
type ConfigError struct {
	Option string
	Value  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("oneshot: unknown %s %q", e.Option, e.Value)
}

// ParseStrategyName resolves a generator-implementation name from the CLI
// surface: one of buffered-bfs, simple-dfs, cached-dfs.
func ParseStrategyName(name string) (stepgame.Strategy, error) {
	switch name {
	case "buffered-bfs":
		return stepgame.BufferedBFS, nil
	case "simple-dfs":
		return stepgame.SimpleDFS, nil
	case "cached-dfs":
		return stepgame.CachedDFS, nil
	default:
		return 0, &ConfigError{Option: "generator", Value: name}
	}
}

// ParseOrderName resolves a search-strategy name from the CLI surface: one of
// dfs, bfs, min-disprove. min-disprove is handled by the caller via
// WithRestrictedAlphabet, not by Order itself.
func ParseOrderName(name string) (Order, error) {
	switch name {
	case "dfs", "min-disprove":
		return DFS, nil
	case "bfs":
		return BFS, nil
	default:
		return 0, &ConfigError{Option: "strategy", Value: name}
	}
}

// invariantf panics with a formatted message. Used for assertion-grade
// internal invariant violations that indicate a bug rather than a reachable
// runtime condition.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("oneshot: invariant violated: "+format, args...))
}
