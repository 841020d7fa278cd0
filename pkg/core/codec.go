package core

import "encoding/json"

// MarshalCollection encodes the collection in the slot format.
// A nil collection is written as an empty array.
func MarshalCollection(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(notes)
}

// UnmarshalCollection decodes a slot payload. Callers treat the error as
// "nothing stored" rather than surfacing it.
func UnmarshalCollection(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}
