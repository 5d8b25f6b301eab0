// SPDX-License-Identifier: MPL-2.0

package argtok

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"scriptcore/pkg/script"
)

// settings collects the functional options for Parse.
type settings struct {
	globRoot    string
	hasGlobRoot bool
	globEnabled bool
}

// Option configures Parse.
type Option func(*settings)

// WithGlobRoot enables glob expansion of unquoted tokens containing shell
// metacharacters, resolving them against root. Without this option, globs
// are passed through verbatim.
func WithGlobRoot(root string) Option {
	return func(s *settings) {
		s.globRoot = root
		s.hasGlobRoot = true
	}
}

// WithGlobs toggles glob expansion without changing the resolution root.
// Globs are off by default on Windows even when a root is supplied;
// pass WithGlobs(true) to force it.
func WithGlobs(enabled bool) Option {
	return func(s *settings) { s.globEnabled = enabled }
}

// Parse splits cmdline into an executable name and its argument tokens
// using POSIX shell quoting and escaping rules: double- and single-quoted
// spans are preserved literally, backslash escapes outside single quotes
// are honored, and — when a glob root is configured — unquoted tokens
// containing *, ?, or [ are expanded against that root.
//
// cmdline must be a single simple command; pipes, redirections, and
// control operators are rejected as invalid input, since Parse exists to
// tokenize one Script's argv, not to interpret a shell script.
func Parse(cmdline string, opts ...Option) (exe string, args []string, err error) {
	cfg := settings{globEnabled: runtime.GOOS != "windows"}
	for _, opt := range opts {
		opt(&cfg)
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	file, err := parser.Parse(strings.NewReader(cmdline), "")
	if err != nil {
		return "", nil, &script.InvalidInputError{Reason: fmt.Sprintf("argtok: %v", err)}
	}

	call, err := soleCall(file)
	if err != nil {
		return "", nil, err
	}
	if len(call.Args) == 0 {
		return "", nil, &script.InvalidInputError{Reason: "argtok: empty command"}
	}

	tokens := make([]string, 0, len(call.Args))
	for _, word := range call.Args {
		literal, quoted, lerr := literalWord(word)
		if lerr != nil {
			return "", nil, &script.InvalidInputError{Reason: fmt.Sprintf("argtok: %v", lerr)}
		}
		if !quoted && cfg.hasGlobRoot && cfg.globEnabled && hasGlobMeta(literal) {
			matches, gerr := expandGlob(cfg.globRoot, literal)
			if gerr != nil {
				return "", nil, &script.InvalidInputError{Reason: fmt.Sprintf("argtok: %v", gerr)}
			}
			if len(matches) > 0 {
				tokens = append(tokens, matches...)
				continue
			}
		}
		tokens = append(tokens, literal)
	}

	return tokens[0], tokens[1:], nil
}

// soleCall extracts the single simple-command call expression cmdline must
// reduce to, rejecting anything with more than one statement, pipes,
// subshells, or other shell structure Parse is not meant to interpret.
func soleCall(file *syntax.File) (*syntax.CallExpr, error) {
	if len(file.Stmts) != 1 {
		return nil, &script.InvalidInputError{Reason: "argtok: expected exactly one command"}
	}
	stmt := file.Stmts[0]
	if stmt.Negated || stmt.Background || stmt.Coprocess {
		return nil, &script.InvalidInputError{Reason: "argtok: unsupported statement modifier"}
	}
	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok {
		return nil, &script.InvalidInputError{Reason: "argtok: unsupported command structure"}
	}
	if len(call.Assigns) != 0 {
		return nil, &script.InvalidInputError{Reason: "argtok: inline assignments are unsupported"}
	}
	return call, nil
}

// literalWord reduces a *syntax.Word to its literal text via
// mvdan.cc/sh/v3/expand, with no parameter, arithmetic, or command
// substitution — Parse tokenizes quoting and escaping only. quoted
// reports whether the entire word was wrapped in single or double
// quotes, which suppresses glob expansion for that token.
func literalWord(word *syntax.Word) (string, bool, error) {
	cfg := &expand.Config{Env: expand.ListEnviron()}
	literal, err := expand.Literal(cfg, word)
	if err != nil {
		return "", false, err
	}
	return literal, isFullyQuoted(word), nil
}

// isFullyQuoted reports whether word consists of a single quoted part
// (DblQuoted or SglQuoted), meaning its literal text should never be
// re-interpreted as a glob pattern.
func isFullyQuoted(word *syntax.Word) bool {
	if len(word.Parts) != 1 {
		return false
	}
	switch word.Parts[0].(type) {
	case *syntax.DblQuoted, *syntax.SglQuoted:
		return true
	default:
		return false
	}
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// expandGlob resolves pattern against root, returning its matches sorted
// by filepath.Glob's natural lexical order. An unmatched glob is left for
// the caller to pass through literally, matching common shell "nullglob
// off" behavior.
func expandGlob(root, pattern string) ([]string, error) {
	joined := pattern
	if root != "" && !filepath.IsAbs(pattern) {
		joined = filepath.Join(root, pattern)
	}
	matches, err := filepath.Glob(joined)
	if err != nil {
		return nil, err
	}
	if root == "" || len(matches) == 0 {
		return matches, nil
	}
	rel := make([]string, len(matches))
	for i, m := range matches {
		r, rerr := filepath.Rel(root, m)
		if rerr != nil {
			rel[i] = m
			continue
		}
		rel[i] = r
	}
	return rel, nil
}
