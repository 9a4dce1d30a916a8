package model

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidCursor = errors.New("invalid cursor")

type (
	// CursorDirection indicates the pagination direction.
	CursorDirection string

	// Cursor represents a pagination cursor for keyset pagination.
	Cursor struct {
		Field     string          `json:"f"`
		Value     any             `json:"v"`
		ID        string          `json:"id"`
		Direction CursorDirection `json:"d"`
	}
)

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// EncodeCursor serializes a cursor to a URL-safe base64 string.
func EncodeCursor(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeCursor deserializes a cursor from a base64 string.
func DecodeCursor(encoded string) (Cursor, error) {
	if encoded == "" {
		return Cursor{}, ErrInvalidCursor
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return c, nil
}

// NewCursorFromDevice creates a cursor from a device for the given sort
// property.
func NewCursorFromDevice(device *Device, sortProperty string, direction CursorDirection) Cursor {
	var value any

	switch sortProperty {
	case "creationTime":
		value = device.CreatedAt.Format(time.RFC3339Nano)
	case "updatedAt":
		value = device.UpdatedAt.Format(time.RFC3339Nano)
	case "name":
		value = device.Name
	case "brand":
		value = device.Brand
	case "state":
		value = string(device.State)
	default:
		value = device.ID.String()
	}

	return Cursor{
		Field:     sortProperty,
		Value:     value,
		ID:        device.ID.String(),
		Direction: direction,
	}
}

// ParseCursorValue extracts the typed value from a cursor for SQL
// comparison.
func (c *Cursor) ParseCursorValue() (any, error) {
	switch c.Field {
	case "creationTime", "updatedAt":
		if strVal, ok := c.Value.(string); ok {
			return time.Parse(time.RFC3339Nano, strVal)
		}

		return nil, fmt.Errorf("%w: expected time string", ErrInvalidCursor)
	default:
		return c.Value, nil
	}
}
