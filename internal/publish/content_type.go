package publish

import "path/filepath"

// contentTypes maps file extensions to the Content-Type sent with the upload.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".txt":  "text/plain",
}

// ContentType returns the content type for name, or "" when the extension is
// not in the table and S3 should apply its default.
func ContentType(name string) string {
	return contentTypes[filepath.Ext(name)]
}

// SupportedExtensions returns the extensions with an explicit content type.
func SupportedExtensions() map[string]string {
	out := make(map[string]string, len(contentTypes))
	for ext, ct := range contentTypes {
		out[ext] = ct
	}
	return out
}
