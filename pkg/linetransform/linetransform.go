// SPDX-License-Identifier: MPL-2.0

package linetransform

import (
	"context"
	"regexp"

	"scriptcore/pkg/script"
	"scriptcore/pkg/transform"
)

// Grep builds a Script that keeps only input lines matching pattern, the
// line-transformer analog of the POSIX tool of the same name.
func Grep(ctx context.Context, name string, pattern *regexp.Regexp) *script.Script {
	return transform.NewLineMap(ctx, name, func(line string) (string, bool) {
		return line, pattern.MatchString(line)
	})
}

// GrepInvert is Grep's -v complement: it keeps only lines that do not
// match pattern.
func GrepInvert(ctx context.Context, name string, pattern *regexp.Regexp) *script.Script {
	return transform.NewLineMap(ctx, name, func(line string) (string, bool) {
		return line, !pattern.MatchString(line)
	})
}

// Replace builds a Script that rewrites every match of pattern in each
// line with replacement, using regexp.Regexp's own $-group substitution
// syntax, the line-transformer analog of sed.
func Replace(ctx context.Context, name string, pattern *regexp.Regexp, replacement string) *script.Script {
	return transform.NewLineMap(ctx, name, func(line string) (string, bool) {
		return pattern.ReplaceAllString(line, replacement), true
	})
}
