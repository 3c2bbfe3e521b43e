package utils

import (
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or a single
// comma-delimited string in request bodies. Clients send profile fields
// like skills both ways; this normalizes them at the boundary before they
// reach domain logic.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = strings.Split(single, ",")
	return nil
}

// Normalize returns a copy with entries trimmed, empty entries dropped and
// duplicates removed, preserving first-seen order.
func (s StringList) Normalize() []string {
	seen := make(map[string]struct{}, len(s))
	result := make([]string, 0, len(s))
	for _, entry := range s {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		result = append(result, entry)
	}
	return result
}
