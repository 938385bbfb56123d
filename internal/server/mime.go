package server

import (
	"mime"
	"path"
	"strings"
)

// ContentTypes maps a lower-case file suffix (".js") to the Content-Type
// forced for it. Suffixes missing from the table go through the standard
// MIME lookup.
type ContentTypes map[string]string

// Some MIME databases report text/javascript or application/x-javascript for
// scripts; the browser runtime wants exactly this.
var defaultContentTypes = ContentTypes{".js": "application/javascript"}

// DefaultContentTypes returns a fresh copy of the built-in override table.
func DefaultContentTypes() ContentTypes {
	return defaultContentTypes.With(nil)
}

// With returns a copy of t extended by extra. Keys in extra may be given
// with or without the leading dot and in any case.
func (t ContentTypes) With(extra map[string]string) ContentTypes {
	out := make(ContentTypes, len(t)+len(extra))
	for ext, typ := range t {
		out.set(ext, typ)
	}
	for ext, typ := range extra {
		out.set(ext, typ)
	}
	return out
}

func (t ContentTypes) set(ext, typ string) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." || typ == "" {
		return
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	t[ext] = typ
}

// Lookup returns the Content-Type for name, or "" when neither the table nor
// the MIME database knows the suffix.
func (t ContentTypes) Lookup(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return ""
	}
	if typ, ok := t[ext]; ok {
		return typ
	}
	return mime.TypeByExtension(ext)
}

// InferContentType resolves name against the built-in override table.
func InferContentType(name string) string {
	return defaultContentTypes.Lookup(name)
}
