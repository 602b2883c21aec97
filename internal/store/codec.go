package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("store closed")

// EncodeValue serializes a raw value for byte-oriented backends.
func EncodeValue(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return data, nil
}

// DecodeValue reverses EncodeValue. Numbers come back as float64.
func DecodeValue(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return v, nil
}
