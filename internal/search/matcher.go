package search

import (
	"errors"
	"strings"
)

// ErrNoMatches is returned when no line of the content contains the query.
// An empty result is never returned as a success.
var ErrNoMatches = errors.New("no result found for query")

// Search returns every line of content that contains query as an exact substring.
// The returned lines are substrings of content and share its memory.
func Search(query, content string) ([]string, error) {
	var results []string
	forEachLine(content, func(line string) {
		if strings.Contains(line, query) {
			results = append(results, line)
		}
	})
	return finish(results)
}

// SearchCaseInsensitive is like Search but compares lowercase forms of the query and each line.
func SearchCaseInsensitive(query, content string) ([]string, error) {
	var results []string
	q := strings.ToLower(query)
	forEachLine(content, func(line string) {
		if strings.Contains(strings.ToLower(line), q) {
			results = append(results, line)
		}
	})
	return finish(results)
}

// Match dispatches to Search or SearchCaseInsensitive.
func Match(query, content string, caseSensitive bool) ([]string, error) {
	if caseSensitive {
		return Search(query, content)
	}
	return SearchCaseInsensitive(query, content)
}

// Lines splits content into lines terminated by "\n" or "\r\n". A final line terminator
// does not produce an empty last line.
func Lines(content string) []string {
	var lines []string
	forEachLine(content, func(line string) {
		lines = append(lines, line)
	})
	return lines
}

func forEachLine(content string, fn func(string)) {
	for len(content) > 0 {
		idx := strings.IndexByte(content, '\n')
		if idx == -1 {
			fn(content)
			return
		}
		fn(strings.TrimSuffix(content[:idx], "\r"))
		content = content[idx+1:]
	}
}

func finish(results []string) ([]string, error) {
	if len(results) == 0 {
		return nil, ErrNoMatches
	}
	return results, nil
}
