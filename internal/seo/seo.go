// Package seo resolves per-page title, description and favicon.
package seo

import "strings"

// DefaultIcon is used when neither the page nor the site sets an icon.
const DefaultIcon = "/favicon.ico"

type Meta struct {
	Title       string
	Description string
	Icon        string
}

// Resolve fills empty fields of m from defaults.
func Resolve(m, defaults Meta) Meta {
	if strings.TrimSpace(m.Title) == "" {
		m.Title = defaults.Title
	}
	if strings.TrimSpace(m.Description) == "" {
		m.Description = defaults.Description
	}
	if m.Icon == "" {
		m.Icon = defaults.Icon
	}
	if m.Icon == "" {
		m.Icon = DefaultIcon
	}
	return m
}

// PageTitle formats "Page | Site". Either side may be empty.
func PageTitle(page, site string) string {
	switch {
	case page == "":
		return site
	case site == "":
		return page
	}
	return page + " | " + site
}
