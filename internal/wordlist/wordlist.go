// Package wordlist reads and rewrites the canonical word-list source
// file: a JS/TS module whose exported array literal holds the quoted
// candidate words. Only the array block and an optional word-count
// comment are touched; everything else in the file is preserved
// byte-for-byte.
package wordlist

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/lexkit/wordvet/internal/domain"
	"github.com/lexkit/wordvet/pkg/atomicfile"
)

var (
	// blockPattern locates the exported word-array block. The first
	// submatch is the body between the brackets.
	blockPattern = regexp.MustCompile(`(?s)export\s+const\s+WORDS\s*=\s*\[(.*?)\]`)

	entryPattern = regexp.MustCompile(`"([^"]*)"`)
	totalPattern = regexp.MustCompile(`// Total: \d+ words`)
)

// Source is a loaded word-list file. The raw bytes are retained so the
// rewrite can splice a new block into otherwise untouched content.
type Source struct {
	path  string
	raw   []byte
	words []string

	// Byte range of the array body (inside the brackets) within raw.
	bodyStart, bodyEnd int
}

// Load reads the file at path and extracts the word-array block.
func Load(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	loc := blockPattern.FindSubmatchIndex(raw)
	if loc == nil {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNoWordBlock)
	}

	body := raw[loc[2]:loc[3]]
	var words []string
	for _, m := range entryPattern.FindAllSubmatch(body, -1) {
		words = append(words, string(m[1]))
	}

	return &Source{
		path:      path,
		raw:       raw,
		words:     words,
		bodyStart: loc[2],
		bodyEnd:   loc[3],
	}, nil
}

// Path returns the file the source was loaded from.
func (s *Source) Path() string { return s.path }

// Words returns the extracted entries in file order.
func (s *Source) Words() []string { return s.words }

// EnsureBackup copies the original file to backupPath unless a backup
// already exists. The backup is never overwritten afterwards.
func (s *Source) EnsureBackup(backupPath string) (created bool, err error) {
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup: %w", err)
	}
	if err := os.WriteFile(backupPath, s.raw, 0o644); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Render produces the file content with the array block replaced by the
// given words (lower-cased, quoted, one per line) and the word-count
// comment updated when present.
func (s *Source) Render(words []string) []byte {
	var body strings.Builder
	body.WriteString("\n")
	for _, w := range words {
		body.WriteString("  \"")
		body.WriteString(domain.Normalize(w))
		body.WriteString("\",\n")
	}

	var out []byte
	out = append(out, s.raw[:s.bodyStart]...)
	out = append(out, body.String()...)
	out = append(out, s.raw[s.bodyEnd:]...)

	return totalPattern.ReplaceAll(out,
		[]byte(fmt.Sprintf("// Total: %d words", len(words))))
}

// RewriteValid atomically replaces the source file, keeping only the
// given words in its array block.
func (s *Source) RewriteValid(words []string) error {
	if err := atomicfile.WriteFile(s.path, s.Render(words), 0o644); err != nil {
		return fmt.Errorf("rewrite word list: %w", err)
	}
	return nil
}
