// Package types provides the data model shared by the ATS scoring packages.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// PreambleSection names the bucket for text that precedes the first recognized header.
const PreambleSection = "preamble"

// Section is a named contiguous region of a document.
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Sections is an ordered section map. Order is first appearance in the source.
type Sections []Section

// Get returns the content of the named section.
func (s Sections) Get(name string) (string, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec.Content, true
		}
	}
	return "", false
}

// Has reports whether the named section exists.
func (s Sections) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// HasAny reports whether any of the names exists.
func (s Sections) HasAny(names ...string) bool {
	for _, name := range names {
		if s.Has(name) {
			return true
		}
	}
	return false
}

// First returns the content of the first alias present, scanning aliases in order.
func (s Sections) First(aliases ...string) (string, bool) {
	for _, alias := range aliases {
		if content, ok := s.Get(alias); ok {
			return content, true
		}
	}
	return "", false
}

// Names lists section names in order.
func (s Sections) Names() []string {
	names := make([]string, len(s))
	for i, sec := range s {
		names[i] = sec.Name
	}
	return names
}

// Locate returns the first section whose lowercased content contains text, or "general".
func (s Sections) Locate(text string) string {
	needle := strings.ToLower(text)
	for _, sec := range s {
		if strings.Contains(strings.ToLower(sec.Content), needle) {
			return sec.Name
		}
	}
	return "general"
}

// Concat joins the contents of the named sections that exist, separated by a newline.
func (s Sections) Concat(names ...string) string {
	var parts []string
	for _, name := range names {
		if content, ok := s.Get(name); ok {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, "\n")
}
