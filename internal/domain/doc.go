// Package domain contains the core value types of the word validation
// pipeline: candidate words, per-word verdicts, and per-tier lookup
// outcomes. It has no dependencies on HTTP, the file system, or logging.
package domain
