package services

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"realty/models"
)

// normalizeInput strips diacritics and lowercases for matching.
func normalizeInput(input string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
}

func createStreetMatcher(streets []string) *closestmatch.ClosestMatch {
	return closestmatch.New(streets, []int{2, 3})
}

// similarity is 1 - normalized levenshtein distance.
func similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(distance)/maxLen
}

// SearchByStreet ranks the cached records against a free-text street
// query. Typos are tolerated through bag-of-letters matching plus a
// levenshtein similarity floor.
func (s *CatalogService) SearchByStreet(query string) []models.REObject {
	normalizedQuery := normalizeInput(query)
	if normalizedQuery == "" {
		return nil
	}

	objects := s.Objects()
	if len(objects) == 0 {
		return nil
	}

	streets := make([]string, 0, len(objects))
	seen := make(map[string]bool)
	for _, object := range objects {
		street := normalizeInput(object.Street)
		if !seen[street] {
			seen[street] = true
			streets = append(streets, street)
		}
	}

	matcher := createStreetMatcher(streets)
	closest := matcher.Closest(normalizedQuery)

	var matches []models.REObject
	for _, object := range objects {
		street := normalizeInput(object.Street)
		if street == closest || similarity(normalizedQuery, street) >= 0.6 ||
			strings.Contains(street, normalizedQuery) {
			matches = append(matches, object)
		}
	}
	return matches
}
