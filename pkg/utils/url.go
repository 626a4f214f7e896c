package utils

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// FileNameFromURL returns the last segment of the url path. Query and
// fragment are ignored. It returns "" when the path is empty or ends in "/".
func FileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return cleanName(u.Path)
}

// FileNameFromDisposition extracts the filename parameter of a
// Content-Disposition header. filename* wins over filename, mime already
// decodes the RFC 2231 form into "filename".
func FileNameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return cleanName(strings.ReplaceAll(params["filename"], "\\", "/"))
}

func cleanName(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	name := path.Base(p)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
