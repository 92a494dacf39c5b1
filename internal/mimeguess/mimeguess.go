// Package mimeguess provides a deliberately tiny extension-to-mime-type
// table. It is a convenience for file import when no explicit mime type is
// supplied, not a content-sniffing scanner.
package mimeguess

import (
	"path/filepath"
	"strings"
)

var byExtension = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".txt":  "text/plain",
	".json": "application/json",
	".zip":  "application/zip",
}

const fallback = "application/octet-stream"

// FromFilename guesses a mime type from name's extension, defaulting to
// application/octet-stream when the extension is unknown or absent.
func FromFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))

	if mt, ok := byExtension[ext]; ok {
		return mt
	}

	return fallback
}
