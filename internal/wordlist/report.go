package wordlist

import (
	"encoding/json"
	"fmt"

	"github.com/lexkit/wordvet/pkg/atomicfile"
)

// WriteInvalidReport writes the ordered list of rejected words as a
// JSON array, atomically. An empty slice produces an empty array, not
// null.
func WriteInvalidReport(path string, words []string) error {
	if words == nil {
		words = []string{}
	}
	b, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("encode invalid report: %w", err)
	}
	if err := atomicfile.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write invalid report: %w", err)
	}
	return nil
}
