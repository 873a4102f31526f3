// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strconv"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-wiki2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-wiki2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for unknown page or highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidUTF8 returns hints for inputs that are not UTF-8 text.
func ForInvalidUTF8() string {
	return format("convert the file to UTF-8 first, e.g. iconv -f CP949 -t UTF-8")
}

// ForInputTooLarge returns hints for inputs over the size limit.
func ForInputTooLarge(limit int) string {
	return format("split the document or raise the limit (current: " + humanSize(limit) + ")")
}

// ForTemplates returns hints for a template source that cannot be loaded.
func ForTemplates() string {
	return formatHints([]string{
		"pass a directory of .wiki files or a YAML name: body map",
		"YAML keys must be template names without the 틀: prefix",
	})
}

func humanSize(n int) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
	)
	switch {
	case n >= mib && n%mib == 0:
		return strconv.Itoa(n/mib) + " MiB"
	case n >= kib && n%kib == 0:
		return strconv.Itoa(n/kib) + " KiB"
	default:
		return strconv.Itoa(n) + " bytes"
	}
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
