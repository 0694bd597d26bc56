// Package fields extracts typed values out of loosely-structured vendor
// records. The same record can carry a value under a flat key, under a
// nested "fields" object, or inside an array of typed field entries
// depending on which system produced it, so every lookup tries the three
// conventions in order and the first hit wins.
package fields

import (
	"sort"
	"strings"
)

// Resolve looks up a value in a raw record by trying each candidate key,
// case-insensitively, against the three vendor layout conventions:
//
//  1. top-level keys of the record
//  2. keys of a nested "fields" object
//  3. entries of a "fields" array shaped like {name|key|label, value|displayValue}
//
// Returns false when no candidate matches anywhere.
func Resolve(record map[string]any, keys ...string) (any, bool) {
	if record == nil {
		return nil, false
	}

	if v, ok := lookupFold(record, keys); ok {
		return v, true
	}

	switch nested := record["fields"].(type) {
	case map[string]any:
		if v, ok := lookupFold(nested, keys); ok {
			return v, true
		}
	case []any:
		for _, item := range nested {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if !entryMatches(entry, keys) {
				continue
			}
			if v, ok := entry["value"]; ok {
				return v, true
			}
			if v, ok := entry["displayValue"]; ok {
				return v, true
			}
			return entry, true
		}
	}

	return nil, false
}

// ResolveString resolves a key to a plain string. Object values unwrap via
// name, then displayName, then value, matching the Jira convention of
// {name} for statuses and {displayName} for people. Missing or
// non-string-like values degrade to "".
func ResolveString(record map[string]any, keys ...string) string {
	raw, ok := Resolve(record, keys...)
	if !ok {
		return ""
	}
	return Stringify(raw)
}

// ResolveDate resolves a key to a date string (the portion before any "T").
// Object values unwrap via dateTime then date (the Graph calendar shape).
// Anything unparseable degrades to "" rather than failing normalization.
func ResolveDate(record map[string]any, keys ...string) string {
	raw, ok := Resolve(record, keys...)
	if !ok {
		return ""
	}

	switch v := raw.(type) {
	case string:
		return datePortion(v)
	case map[string]any:
		if s, ok := v["dateTime"].(string); ok {
			return datePortion(s)
		}
		if s, ok := v["date"].(string); ok {
			return datePortion(s)
		}
	}
	return ""
}

// Stringify unwraps a raw value into a display string
func Stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"name", "displayName", "value"} {
			if s, ok := v[key].(string); ok {
				return s
			}
		}
	}
	return ""
}

func datePortion(s string) string {
	if i := strings.Index(s, "T"); i >= 0 {
		return s[:i]
	}
	return s
}

// lookupFold finds the first candidate key present in m, comparing
// case-insensitively against m's keys. Candidate order decides precedence;
// the fold pass scans sorted keys so fold-equal duplicates resolve the
// same way on every call.
func lookupFold(m map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v, true
		}
		mapKeys := make([]string, 0, len(m))
		for k := range m {
			mapKeys = append(mapKeys, k)
		}
		sort.Strings(mapKeys)
		for _, k := range mapKeys {
			if strings.EqualFold(k, key) {
				return m[k], true
			}
		}
	}
	return nil, false
}

// entryMatches reports whether an array field entry's name/key/label
// matches any candidate key
func entryMatches(entry map[string]any, keys []string) bool {
	for _, nameKey := range []string{"name", "key", "label"} {
		name, ok := entry[nameKey].(string)
		if !ok {
			continue
		}
		for _, key := range keys {
			if strings.EqualFold(name, key) {
				return true
			}
		}
	}
	return false
}
