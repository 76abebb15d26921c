package storage

import (
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fileTokenLength is the length of the random part of generated file names
const fileTokenLength = 13

// GenerateFileName generates a new object name with the provided extension.
// The name is a 13 character random token followed by the upload time in unix milliseconds.
func GenerateFileName(extension string, now time.Time) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:fileTokenLength]
	name := fmt.Sprintf("%s_%d", token, now.UnixMilli())

	// Ensure extension starts with a dot if it doesn't already
	if extension != "" && extension[0] != '.' {
		return name + "." + extension
	}
	return name + extension
}

// contentTypeExtensions maps the content types accepted for materials to file extensions
var contentTypeExtensions = map[string]string{
	"application/pdf":    ".pdf",
	"image/jpeg":         ".jpg",
	"image/png":          ".png",
	"image/gif":          ".gif",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.ms-powerpoint":                                             ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"text/plain": ".txt",
}

// InferExtensionFromContentType infers the extension from the content type.
// Returns an empty string if the extension cannot be inferred.
func InferExtensionFromContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return contentTypeExtensions[mediaType]
}

// FileExtension returns the extension of the original file name,
// falling back to the one implied by the content type
func FileExtension(fileName, contentType string) string {
	if ext := filepath.Ext(fileName); ext != "" && ext != "." {
		return strings.ToLower(ext)
	}
	return InferExtensionFromContentType(contentType)
}

// ObjectPath builds the storage path of a file owned by the user
func ObjectPath(userID, fileName string) string {
	return userID + "/" + fileName
}

// ObjectPathFromURL derives the storage path of a material from its public URL
// by taking the final path segment and prefixing it with the owner id
func ObjectPathFromURL(userID, fileURL string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("owner id is empty")
	}

	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse file url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("file url %q is not absolute", fileURL)
	}

	fileName := path.Base(parsed.Path)
	if fileName == "" || fileName == "/" || fileName == "." {
		return "", fmt.Errorf("file url %q has no file name", fileURL)
	}

	return ObjectPath(userID, fileName), nil
}
