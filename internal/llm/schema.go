package llm

// BuildInferenceJSONSchema returns the JSON-Schema used to validate backend output
// before it is decoded. Values are checked for shape only; membership and digit
// rules are applied afterwards by ValidateInference.
func BuildInferenceJSONSchema() map[string]any {
	nullableString := map[string]any{"type": []string{"string", "null"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"national_id": nullableString,
			"action":      nullableString,
		},
		"required": []string{"national_id", "action"},
	}
}
