package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarcodeFormat_RoundTrip(t *testing.T) {
	for _, format := range BarcodeFormats() {
		t.Run(format.String(), func(t *testing.T) {
			encoded, err := format.Value()
			require.NoError(t, err)

			var decoded BarcodeFormat
			require.NoError(t, decoded.Scan(encoded))
			assert.Equal(t, format, decoded)

			parsed, err := ParseBarcodeFormat(format.String())
			require.NoError(t, err)
			assert.Equal(t, format, parsed)
		})
	}
}

func TestBarcodeSchema_RoundTrip(t *testing.T) {
	for _, schema := range BarcodeSchemas() {
		t.Run(schema.String(), func(t *testing.T) {
			encoded, err := schema.Value()
			require.NoError(t, err)

			var decoded BarcodeSchema
			require.NoError(t, decoded.Scan([]byte(encoded.(string))))
			assert.Equal(t, schema, decoded)
		})
	}
}

func TestParse_UnknownName(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) error
		input string
		kind  string
	}{
		{
			name:  "Format renamed",
			parse: func(s string) error { _, err := ParseBarcodeFormat(s); return err },
			input: "QR",
			kind:  "barcode format",
		},
		{
			name:  "Format wrong case",
			parse: func(s string) error { _, err := ParseBarcodeFormat(s); return err },
			input: "qr_code",
			kind:  "barcode format",
		},
		{
			name:  "Schema empty",
			parse: func(s string) error { _, err := ParseBarcodeSchema(s); return err },
			input: "",
			kind:  "barcode schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(tt.input)
			require.Error(t, err)

			var unknown *UnknownValueError
			require.True(t, errors.As(err, &unknown))
			assert.Equal(t, tt.kind, unknown.Kind)
			assert.Equal(t, tt.input, unknown.Value)
		})
	}
}

func TestScan_RejectsNullAndNumbers(t *testing.T) {
	var format BarcodeFormat
	assert.Error(t, format.Scan(nil))
	assert.Error(t, format.Scan(int64(12)))

	var schema BarcodeSchema
	assert.Error(t, schema.Scan(nil))
}

func TestValue_RejectsZeroEnumerant(t *testing.T) {
	_, err := BarcodeFormat(0).Value()
	assert.Error(t, err)

	_, err = BarcodeSchema(0).Value()
	assert.Error(t, err)
}

func TestBarcode_JSONUsesCanonicalNames(t *testing.T) {
	b := Barcode{ID: 7, Format: FormatEAN13, Schema: SchemaOther, Text: "4006381333931", Token: 101}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"format":"EAN_13"`)
	assert.Contains(t, string(data), `"schema":"OTHER"`)

	var decoded Barcode
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, FormatEAN13, decoded.Format)
	assert.Equal(t, SchemaOther, decoded.Schema)
}
