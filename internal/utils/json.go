package utils

import (
	"encoding/json"
	"fmt"
)

// SerializeToJSON marshals a value for publishing or printing.
func SerializeToJSON(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize value: %w", err)
	}
	return data, nil
}

// DeserializeFromJSON unmarshals payload into target.
func DeserializeFromJSON(payload []byte, target interface{}) error {
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to deserialize payload: %w", err)
	}
	return nil
}
