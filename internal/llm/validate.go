package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/common"
)

var reNationalID = regexp.MustCompile(`^\d{10,12}$`)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateInference applies the two independent acceptance rules to a backend
// result: national_id must be 10-12 digits and action must be a registered name.
// Values are matched as given, so padded values are rejected. Rejected values
// become nil; the status is left untouched. The second return lists the
// rejected fields.
func ValidateInference(in Inference) (Inference, []string) {
	out := in
	var rejected []string

	if in.NationalID != nil {
		nid := *in.NationalID
		v := common.NewValidator().Field("national_id", nid, common.Matches(reNationalID, "10-12 digits"))
		if v.HasErrors() {
			out.NationalID = nil
			rejected = append(rejected, "national_id")
		} else {
			out.NationalID = &nid
		}
	}

	if in.Action != nil {
		action := *in.Action
		v := common.NewValidator().Field("action", action, common.OneOf(constants.ActionNames()...))
		if v.HasErrors() {
			out.Action = nil
			rejected = append(rejected, "action")
		} else {
			out.Action = &action
		}
	}
	return out, rejected
}
