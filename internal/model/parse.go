package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseError describes a structural non-conformance in frame input. It is
// distinct from a semantic rule violation: a frame that fails to parse never
// reaches the rule engine.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ParseFrame decodes loosely-typed external JSON into a canonical frame.
// Unknown fields are rejected so typos in field names surface immediately
// instead of silently dropping data. A missing characteristic is accepted
// here (the rule engine reports it); an unrecognized characteristic string
// is normalized to "other" for the same reason. A missing source unit
// defaults to millimeters, which is stated in the product documentation
// rather than inferred per frame.
func ParseFrame(data []byte) (*FeatureControlFrame, error) {
	var frame FeatureControlFrame
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&frame); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("malformed frame JSON: %v", err)}
	}
	if frame.Characteristic != "" && !frame.Characteristic.IsKnown() {
		frame.Characteristic = CharacteristicOther
	}
	if frame.SourceUnit == "" {
		frame.SourceUnit = UnitMM
	}
	if err := frame.checkStructure(); err != nil {
		return nil, err
	}
	return &frame, nil
}

// IsValid reports whether data parses into a structurally valid frame.
func IsValid(data []byte) bool {
	_, err := ParseFrame(data)
	return err == nil
}

// Serialize renders the frame back to its canonical JSON form. A serialized
// frame parses back to an identical frame.
func Serialize(f *FeatureControlFrame) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize frame: %w", err)
	}
	return data, nil
}
