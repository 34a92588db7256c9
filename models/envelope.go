package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Envelope is the wire wrapper every kirovest endpoint responds with.
// Data stays raw until the caller knows what shape to expect.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FlattenDetails collects per-field validation messages out of a failure
// envelope's data object into one flat list. Keys are sorted so the
// concatenated message is stable.
func (e *Envelope) FlattenDetails() []string {
	if len(e.Data) == 0 {
		return nil
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(e.Data, &fields); err != nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var details []string
	for _, k := range keys {
		switch v := fields[k].(type) {
		case []interface{}:
			for _, item := range v {
				details = append(details, fmt.Sprint(item))
			}
		default:
			details = append(details, fmt.Sprint(v))
		}
	}
	return details
}
