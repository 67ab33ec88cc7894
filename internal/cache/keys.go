package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "quizext"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// StudentPageKey addresses one search page of a course roster. The query is
// lower-cased so "Smith" and "smith" share an entry.
func StudentPageKey(courseID, query string, page int) string {
	return GenerateCacheKey("roster", "page", courseID, strings.ToLower(strings.TrimSpace(query)), strconv.Itoa(page))
}

// AdvisoryKey addresses the missing-quizzes flag of a course.
func AdvisoryKey(courseID string) string {
	return GenerateCacheKey("advisory", "missing", courseID)
}

// ReportKey addresses the last result report of a session.
func ReportKey(sessionID string) string {
	return GenerateCacheKey("session", "report", sessionID)
}
