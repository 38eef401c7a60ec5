package graph

import (
	"path/filepath"
	"strings"
)

// mimeTypes maps lowercase file extensions (without the dot) to MIME types.
// Unknown extensions get no mimeType attribute rather than a guess.
var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"mp4":  "video/mp4",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"wmv":  "video/x-ms-wmv",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"html": "text/html",
	"htm":  "text/html",
	"xml":  "application/xml",
	"json": "application/json",
}

// extensionOf returns the file name's extension without the leading dot,
// or "" when the name has none.
func extensionOf(fileName string) string {
	ext := filepath.Ext(fileName)
	return strings.TrimPrefix(ext, ".")
}

// mimeTypeFor looks up the MIME type for a file name's extension.
func mimeTypeFor(fileName string) (string, bool) {
	mt, ok := mimeTypes[strings.ToLower(extensionOf(fileName))]
	return mt, ok
}
