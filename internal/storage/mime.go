package storage

import (
	"path/filepath"
	"strings"
)

const MaxFileSize int64 = 50 * 1024 * 1024

// AllowedMimeTypes is the upload allow-list, in the order it is reported to clients.
var AllowedMimeTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"video/x-msvideo",
	"video/webm",
	"video/x-ms-wmv",
}

var mimeExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/mpeg":      ".mpeg",
	"video/quicktime": ".mov",
	"video/x-msvideo": ".avi",
	"video/webm":      ".webm",
	"video/x-ms-wmv":  ".wmv",
}

var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
}

// MimeExtension maps a declared MIME type to a file extension; unknown types get ".jpg".
func MimeExtension(mimeType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return ".jpg"
}

func ContentTypeForFile(name string) string {
	if ct, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func MediaKind(mimeType string) string {
	if strings.HasPrefix(strings.ToLower(mimeType), "video/") {
		return "video"
	}
	return "image"
}

func isAllowed(mimeType string) bool {
	_, ok := mimeExtensions[strings.ToLower(mimeType)]
	return ok
}
