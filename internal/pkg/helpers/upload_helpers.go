package helpers

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._ ()-]`)

// SanitizeFilename reduces an uploaded filename to a safe base name: path
// components are stripped and characters outside a conservative set replaced.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, ". ")
	if base == "" {
		base = "file"
	}
	return base
}

// DeriveUploadTitle applies the upload title policy. With a single file and a
// prefix, the title becomes the prefix plus the original extension; with
// several files and a prefix, each keeps its filename behind the prefix;
// without a prefix the original filename is used verbatim.
func DeriveUploadTitle(prefix, filename string, batchSize int) string {
	if prefix == "" {
		return filename
	}
	if batchSize == 1 {
		return prefix + filepath.Ext(filename)
	}
	return fmt.Sprintf("%s - %s", prefix, filename)
}
