package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName prepares an uploaded filename for blob storage. Runs of
// whitespace collapse to a single dash and filesystem-unsafe characters are
// replaced or removed. Returns "file" for input that sanitizes to nothing.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}
	name = strings.Join(strings.Fields(name), "-")
	name = strings.Trim(fileNameReplacer.Replace(name), "-.")
	if name == "" {
		return "file"
	}
	return name
}
