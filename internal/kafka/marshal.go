package kafka

import (
	"encoding/json"
	"fmt"
)

// MustMarshal is for values we construct ourselves; a marshal failure
// there is a programming error.
func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal %T: %v", v, err))
	}
	return b
}

// UnwrapPayload decodes an envelope payload into its concrete event type.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
