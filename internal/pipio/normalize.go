package pipio

import (
	"strconv"
	"strings"
)

// Document is an untyped response payload from the Pipio API. The schema is
// not guaranteed, so extraction probes candidate field names instead of
// decoding into a struct.
type Document = map[string]any

// Candidate field names probed during extraction. These are data, not logic:
// when the provider renames a field, extend the list.
var (
	jobIDFields     = []string{"jobId", "id", "videoId", "taskId"}
	jobIDContainers = []string{"data", "result"}
	urlFields       = []string{"url", "videoUrl", "downloadUrl", "mp4Url"}
	urlContainers   = []string{"data", "result", "output"}
	statusFields    = []string{"status", "state", "jobStatus"}
)

// ExtractJobID locates a job identifier in a generation response. Top-level
// candidates win over nested ones; nesting is probed one level deep only.
// An empty string means no candidate matched, which is a normal outcome.
func ExtractJobID(doc Document) string {
	if id := jobIDFrom(doc); id != "" {
		return id
	}
	for _, container := range jobIDContainers {
		if nested, ok := doc[container].(map[string]any); ok {
			if id := jobIDFrom(nested); id != "" {
				return id
			}
		}
	}
	return ""
}

func jobIDFrom(doc Document) string {
	for _, key := range jobIDFields {
		val, ok := doc[key]
		if !ok {
			continue
		}
		if id := coerceID(val); id != "" {
			return id
		}
	}
	return ""
}

// coerceID accepts string and integer identifiers; everything else is
// ignored so that e.g. an "id" object does not shadow a usable candidate.
func coerceID(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// JSON numbers decode as float64; only integral values qualify.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}

// ExtractResultURL locates a playable result URL. A candidate is accepted
// only when its value is a string with an http(s) prefix; top level is
// prioritized over nested containers.
func ExtractResultURL(doc Document) string {
	if u := urlFrom(doc); u != "" {
		return u
	}
	for _, container := range urlContainers {
		if nested, ok := doc[container].(map[string]any); ok {
			if u := urlFrom(nested); u != "" {
				return u
			}
		}
	}
	return ""
}

func urlFrom(doc Document) string {
	for _, key := range urlFields {
		if val, ok := doc[key].(string); ok && strings.HasPrefix(val, "http") {
			return val
		}
	}
	return ""
}

// ExtractStatus returns the lower-cased value of the first status-bearing
// field that holds a non-empty scalar, or "" when none is present. Numeric
// and boolean statuses are rendered as text so a provider reporting
// {"status": 3} still yields a comparable value.
func ExtractStatus(doc Document) string {
	for _, key := range statusFields {
		val, ok := doc[key]
		if !ok {
			continue
		}
		if s := coerceStatus(val); s != "" {
			return strings.ToLower(s)
		}
	}
	return ""
}

func coerceStatus(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}
