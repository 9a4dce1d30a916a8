package model_test

import (
	"testing"
	"time"

	"github.com/Suleiman-Moraes/device-api/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	t.Parallel()

	device := model.NewDevice("Test Device", "Test Brand", model.StateAvailable)
	cursor := model.NewCursorFromDevice(device, "creationTime", model.CursorDirectionNext)

	encoded, err := model.EncodeCursor(cursor)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	decoded, err := model.DecodeCursor(encoded)
	require.NoError(t, err)
	require.Equal(t, cursor.Field, decoded.Field)
	require.Equal(t, cursor.ID, decoded.ID)
	require.Equal(t, cursor.Direction, decoded.Direction)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		encoded string
	}{
		{name: "empty string", encoded: ""},
		{name: "not base64", encoded: "!!!not-base64!!!"},
		{name: "base64 but not json", encoded: "bm90LWpzb24"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := model.DecodeCursor(tc.encoded)
			require.ErrorIs(t, err, model.ErrInvalidCursor)
		})
	}
}

func TestNewCursorFromDevice_SortProperties(t *testing.T) {
	t.Parallel()

	device := model.NewDevice("Test Device", "Test Brand", model.StateInUse)

	cases := []struct {
		name          string
		sortProperty  string
		expectedValue any
	}{
		{name: "name sort", sortProperty: "name", expectedValue: "Test Device"},
		{name: "brand sort", sortProperty: "brand", expectedValue: "Test Brand"},
		{name: "state sort", sortProperty: "state", expectedValue: "in-use"},
		{name: "creation time sort", sortProperty: "creationTime", expectedValue: device.CreatedAt.Format(time.RFC3339Nano)},
		{name: "unknown property falls back to id", sortProperty: "bogus", expectedValue: device.ID.String()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cursor := model.NewCursorFromDevice(device, tc.sortProperty, model.CursorDirectionNext)

			require.Equal(t, tc.expectedValue, cursor.Value)
			require.Equal(t, device.ID.String(), cursor.ID)
		})
	}
}

func TestCursor_ParseCursorValue(t *testing.T) {
	t.Parallel()

	device := model.NewDevice("Test Device", "Test Brand", model.StateAvailable)

	cursor := model.NewCursorFromDevice(device, "creationTime", model.CursorDirectionNext)
	value, err := cursor.ParseCursorValue()
	require.NoError(t, err)
	require.IsType(t, time.Time{}, value)

	cursor = model.NewCursorFromDevice(device, "name", model.CursorDirectionPrev)
	value, err = cursor.ParseCursorValue()
	require.NoError(t, err)
	require.Equal(t, "Test Device", value)

	cursor = model.Cursor{Field: "creationTime", Value: 42}
	_, err = cursor.ParseCursorValue()
	require.ErrorIs(t, err, model.ErrInvalidCursor)
}
