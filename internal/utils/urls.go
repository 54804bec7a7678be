package utils

import "strings"

// JoinURL joins base and path with exactly one slash between them.
// Absolute http(s) paths are returned unchanged.
func JoinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// MediaURL prefixes a backend relative media path with the media base.
// Empty paths stay empty so no half-built URL reaches the caller.
func MediaURL(mediaBase, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return mediaBase + path
}
