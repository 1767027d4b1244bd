package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

var fieldSynonyms = map[string]string{
	"nid":                   "national_id",
	"id":                    "national_id",
	"national_id_number":    "national_id",
	"identification_number": "national_id",
	"requested_action":      "action",
	"action_name":           "action",
}

// NormalizeInferenceJSON makes backend output decodable as an Inference:
//   - strips markdown code fences around the object
//   - renames known synonyms to national_id / action
//   - coerces a numeric national_id to its digit string
//   - turns "", "null" and "none" into null
//   - adds missing keys as null
func NormalizeInferenceJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var m map[string]any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var changed []string
	for from, to := range fieldSynonyms {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
				changed = append(changed, from+"->"+to)
			}
			delete(m, from)
		}
	}

	for _, k := range []string{"national_id", "action"} {
		switch t := m[k].(type) {
		case nil:
			m[k] = nil
		case json.Number:
			if _, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
				m[k] = t.String()
				changed = append(changed, k+"(number)")
			} else {
				m[k] = nil
				changed = append(changed, k+"(type)")
			}
		case string:
			// padding is left for ValidateInference to reject
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "", "null", "none":
				m[k] = nil
				changed = append(changed, k+"(empty)")
			}
		default:
			m[k] = nil
			changed = append(changed, k+"(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, changed, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(changed) > 0 {
		logger.Warn("llm.infer.normalize_sanitize", "changed", changed)
	}
	return out, changed, nil
}
