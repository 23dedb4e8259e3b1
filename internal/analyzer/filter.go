package analyzer

import (
	"strings"
)

// Filter applies filtering options to the analysis result.
func Filter(result *Result, opts AnalyzeOptions) *Result {
	filtered := &Result{Project: result.Project, Scanned: result.Scanned}

	for _, d := range result.Declarations {
		// Filter internal API surface
		if !opts.IncludeInternal && isInternal(d) {
			continue
		}

		// Filter by path prefix
		if opts.Filter != "" && !hasPathPrefix(d.Path, opts.Filter) {
			continue
		}

		// Prune declarations left without findings
		if len(d.Findings) == 0 {
			continue
		}

		filtered.Declarations = append(filtered.Declarations, d)
	}

	return filtered
}

// isInternal reports whether the declaration or any of its parents is
// tagged internal or named with a leading underscore.
func isInternal(d DeclarationResult) bool {
	if d.Internal {
		return true
	}
	for _, part := range strings.Split(d.Path, ".") {
		if strings.HasPrefix(part, "_") {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole path segments: "chrome.tab" does not select
// "chrome.tabs.query", while "chrome.tabs" does.
func hasPathPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, ".")
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+".")
}
