package bench

import (
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/projectdiscovery/gologger"
)

// suspiciousLetterPatterns are substrings that show up in typo'd "letter"
// regex fields across the benchmark corpus: doubled quantifiers that compile
// successfully but never match anything the author intended. This list is
// deliberately narrow — "(?", "[[", "]]" were dropped because they also
// appear in well-formed, engine-supported syntax (non-capturing groups
// "(?:...)", inline flags "(?i)", named groups "(?P<name>...)", and POSIX
// classes like "[[:alpha:]]") and would reject valid letter fields before
// compilation ever ran.
var suspiciousLetterPatterns = [][]byte{
	[]byte(".*.*"),
	[]byte("**"),
	[]byte("++"),
}

// lintBenchmark pre-scans every "letter" field in b with a single
// Aho-Corasick automaton built from suspiciousLetterPatterns, reporting the
// first hit as a SuspiciousPattern InputError.
func lintBenchmark(path string, b *Benchmark) error {
	builder := ahocorasick.NewBuilder()
	for _, p := range suspiciousLetterPatterns {
		builder.AddPattern(p)
	}
	auto, err := builder.Build()
	if err != nil {
		gologger.Warning().Msgf("bench: could not build letter-field linter, skipping: %v", err)
		return nil
	}

	for _, t := range allTransitionSpecs(b) {
		if auto.IsMatch([]byte(t.Letter)) {
			return &InputError{
				Kind:    SuspiciousPattern,
				Path:    path,
				Message: fmt.Sprintf("letter %q looks malformed (origin %s -> %s)", t.Letter, t.Origin, t.Target),
			}
		}
	}
	return nil
}

func allTransitionSpecs(b *Benchmark) []TransitionSpec {
	out := append([]TransitionSpec(nil), b.Initial.Transitions...)
	out = append(out, b.Transducer.Transitions...)
	for _, prop := range b.Properties {
		out = append(out, prop.Transitions...)
	}
	return out
}
