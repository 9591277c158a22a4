package models

import (
	"regexp"
	"strings"
)

type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var whitespace = regexp.MustCompile(`\s+`)

// ServiceSlug derives a service id from its display name.
func ServiceSlug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "")
}

// DefaultServices is the catalogue a fresh installation starts with.
func DefaultServices() []Service {
	return []Service{
		{ID: "netflix", Name: "Netflix"},
		{ID: "disneyplus", Name: "Disney+"},
		{ID: "amazonprime", Name: "Amazon Prime Video"},
		{ID: "max", Name: "Max"},
		{ID: "crunchyroll", Name: "Crunchyroll"},
		{ID: "spotify", Name: "Spotify"},
		{ID: "youtubepremium", Name: "YouTube Premium"},
		{ID: "appletvplus", Name: "Apple TV+"},
		{ID: "paramountplus", Name: "Paramount+"},
		{ID: "starplus", Name: "Star+"},
		{ID: "tidal", Name: "Tidal"},
	}
}
