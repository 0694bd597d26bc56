package fields

import (
	"sort"
	"strconv"
)

// FindSLAObject scans a record for an SLA-shaped sub-object. The field key
// holding it is a per-deployment custom-field ID, so the scan walks every
// value under the record's "fields" (descending one level into arrays)
// looking for either recognized shape:
//
//   - ongoingCycle{breached|remainingTime}
//   - remainingTime{millis}
//
// The scan visits map keys in sorted order so repeated calls on the same
// record always return the same object.
func FindSLAObject(record map[string]any) (map[string]any, bool) {
	if record == nil {
		return nil, false
	}

	switch nested := record["fields"].(type) {
	case map[string]any:
		keys := make([]string, 0, len(nested))
		for k := range nested {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if obj, ok := slaShaped(nested[k]); ok {
				return obj, true
			}
		}
	case []any:
		for _, item := range nested {
			if obj, ok := slaShaped(item); ok {
				return obj, true
			}
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if obj, ok := slaShaped(entry["value"]); ok {
				return obj, true
			}
		}
	}

	return nil, false
}

// RemainingMillis extracts the SLA remaining time in milliseconds. A field
// directly named "remainingTime"/"Remaining Time" wins over the located SLA
// object's remainingTime.millis. Numeric strings coerce; anything else
// reports false.
func RemainingMillis(record map[string]any) (int64, bool) {
	if raw, ok := Resolve(record, "remainingTime", "Remaining Time"); ok {
		if ms, ok := millisOf(raw); ok {
			return ms, true
		}
	}

	sla, ok := FindSLAObject(record)
	if !ok {
		return 0, false
	}
	if cycle, ok := sla["ongoingCycle"].(map[string]any); ok {
		if ms, ok := millisOf(cycle["remainingTime"]); ok {
			return ms, true
		}
	}
	return millisOf(sla["remainingTime"])
}

// Breached reports whether the record's SLA is breached. An explicit
// ongoingCycle.breached boolean wins; otherwise negative remaining time
// means breached. No SLA data at all means not breached.
func Breached(record map[string]any) bool {
	if sla, ok := FindSLAObject(record); ok {
		if cycle, ok := sla["ongoingCycle"].(map[string]any); ok {
			if breached, ok := cycle["breached"].(bool); ok {
				return breached
			}
		}
	}

	ms, ok := RemainingMillis(record)
	return ok && ms < 0
}

// slaShaped reports whether v matches one of the two recognized SLA shapes
func slaShaped(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	if cycle, ok := obj["ongoingCycle"].(map[string]any); ok {
		if _, hasBreached := cycle["breached"]; hasBreached {
			return obj, true
		}
		if _, hasRemaining := cycle["remainingTime"]; hasRemaining {
			return obj, true
		}
	}

	if remaining, ok := obj["remainingTime"].(map[string]any); ok {
		if _, hasMillis := remaining["millis"]; hasMillis {
			return obj, true
		}
	}

	return nil, false
}

// millisOf coerces a raw remaining-time value to milliseconds. Accepts a
// bare number, a numeric string, or a {millis} wrapper.
func millisOf(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	case map[string]any:
		if inner, ok := v["millis"]; ok {
			return millisOf(inner)
		}
		return 0, false
	default:
		return 0, false
	}
}
