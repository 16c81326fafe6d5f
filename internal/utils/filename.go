package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

const maxFilenameLength = 200

// SanitizeFilename turns an environment name into a portable file name stem.
// Characters that are invalid on common filesystems are dropped and
// whitespace is collapsed. An empty result becomes "environment".
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	// Leading dots would hide the file
	filename = strings.TrimLeft(filename, ".")

	// Leave room for the extension
	if len(filename) > maxFilenameLength {
		filename = strings.TrimSpace(truncateRunes(filename, maxFilenameLength))
	}

	if filename == "" {
		filename = "environment"
	}

	return filename
}

// ExportFilename returns the default file name for an export of the named
// environment. OpenAPI exports get a distinct suffix so both formats can sit
// side by side.
func ExportFilename(envName string, openAPI bool) string {
	stem := SanitizeFilename(envName)
	if openAPI {
		return stem + ".openapi.json"
	}
	return stem + ".json"
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
