package store

import (
	"path/filepath"
	"strings"
)

// matchesQuery performs fuzzy matching on a file name. query must already
// be lower case.
func matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	fileName := strings.ToLower(filename)

	// Exact substring match
	if strings.Contains(fileName, query) {
		return true
	}

	// Word-based matching: every query word must appear in some name word
	words := splitIntoWords(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	queryWords := splitIntoWords(query)
	if len(queryWords) == 0 {
		return false
	}

	for _, queryWord := range queryWords {
		found := false
		for _, word := range words {
			if strings.Contains(word, queryWord) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// splitIntoWords splits a string into lower-case words using common separators
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case ' ', '_', '-', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}
