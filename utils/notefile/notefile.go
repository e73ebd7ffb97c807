package notefile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxFileSize is the upper bound for an uploaded note (10 MiB)
const MaxFileSize int64 = 10 * 1024 * 1024

// AllowedTypes is the MIME allow-list for uploaded notes
var AllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"text/plain",
}

var (
	ErrNotDataURI   = errors.New("file data is not a base64 data URI")
	ErrEmptyPayload = errors.New("file data has no payload")
)

// IsAllowedType reports whether fileType is on the allow-list
func IsAllowedType(fileType string) bool {
	for _, t := range AllowedTypes {
		if t == fileType {
			return true
		}
	}
	return false
}

// IsAllowedSize reports whether size is within MaxFileSize
func IsAllowedSize(size int64) bool {
	return size <= MaxFileSize
}

// EncodeDataURI renders content as a self-describing data URI,
// e.g. "data:text/plain;base64,aGVsbG8="
func EncodeDataURI(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// DecodeDataURI splits a base64 data URI into its MIME type and decoded bytes
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, ErrNotDataURI
	}

	header, payload, found := strings.Cut(uri[len("data:"):], ",")
	if !found {
		return "", nil, ErrNotDataURI
	}
	if !strings.HasSuffix(header, ";base64") {
		return "", nil, ErrNotDataURI
	}
	if payload == "" {
		return "", nil, ErrEmptyPayload
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode file data: %w", err)
	}

	return strings.TrimSuffix(header, ";base64"), content, nil
}

// NameWithoutExtension strips the last extension from fileName
func NameWithoutExtension(fileName string) string {
	lastDot := strings.LastIndex(fileName, ".")
	if lastDot == -1 {
		return fileName
	}
	return fileName[:lastDot]
}

// FormatFileSize renders a byte count for display ("0 Bytes", "1.5 KB", "10 MB")
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizes[i]
}

// Badge returns the short label shown next to a file of the given MIME type
func Badge(fileType string) string {
	switch {
	case strings.Contains(fileType, "pdf"):
		return "PDF"
	case strings.Contains(fileType, "word"):
		return "DOC"
	case strings.Contains(fileType, "presentation"):
		return "PPT"
	case strings.Contains(fileType, "text"):
		return "TXT"
	default:
		return "FILE"
	}
}
