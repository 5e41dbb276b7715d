package models

import (
	"database/sql/driver"
	"fmt"
)

// UnknownValueError is returned when a stored or submitted name does not
// match any enumerant of Kind.
type UnknownValueError struct {
	Kind  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// ==================== BARCODE FORMAT ====================

type BarcodeFormat int

const (
	FormatAztec BarcodeFormat = iota + 1
	FormatCodabar
	FormatCode39
	FormatCode93
	FormatCode128
	FormatDataMatrix
	FormatEAN8
	FormatEAN13
	FormatITF
	FormatMaxiCode
	FormatPDF417
	FormatQRCode
	FormatRSS14
	FormatRSSExpanded
	FormatUPCA
	FormatUPCE
	FormatUPCEANExtension
)

var barcodeFormatNames = map[BarcodeFormat]string{
	FormatAztec:           "AZTEC",
	FormatCodabar:         "CODABAR",
	FormatCode39:          "CODE_39",
	FormatCode93:          "CODE_93",
	FormatCode128:         "CODE_128",
	FormatDataMatrix:      "DATA_MATRIX",
	FormatEAN8:            "EAN_8",
	FormatEAN13:           "EAN_13",
	FormatITF:             "ITF",
	FormatMaxiCode:        "MAXICODE",
	FormatPDF417:          "PDF_417",
	FormatQRCode:          "QR_CODE",
	FormatRSS14:           "RSS_14",
	FormatRSSExpanded:     "RSS_EXPANDED",
	FormatUPCA:            "UPC_A",
	FormatUPCE:            "UPC_E",
	FormatUPCEANExtension: "UPC_EAN_EXTENSION",
}

var barcodeFormatsByName = invert(barcodeFormatNames)

// BarcodeFormats lists every format in declaration order.
func BarcodeFormats() []BarcodeFormat {
	formats := make([]BarcodeFormat, 0, len(barcodeFormatNames))
	for f := FormatAztec; f <= FormatUPCEANExtension; f++ {
		formats = append(formats, f)
	}
	return formats
}

// ParseBarcodeFormat returns the format whose canonical name is s.
func ParseBarcodeFormat(s string) (BarcodeFormat, error) {
	if f, ok := barcodeFormatsByName[s]; ok {
		return f, nil
	}
	return 0, &UnknownValueError{Kind: "barcode format", Value: s}
}

func (f BarcodeFormat) IsValid() bool {
	_, ok := barcodeFormatNames[f]
	return ok
}

func (f BarcodeFormat) String() string {
	if name, ok := barcodeFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("BarcodeFormat(%d)", int(f))
}

func (f BarcodeFormat) Value() (driver.Value, error) {
	if !f.IsValid() {
		return nil, &UnknownValueError{Kind: "barcode format", Value: f.String()}
	}
	return f.String(), nil
}

func (f *BarcodeFormat) Scan(src any) error {
	s, err := scanName("barcode format", src)
	if err != nil {
		return err
	}
	parsed, err := ParseBarcodeFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f BarcodeFormat) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, &UnknownValueError{Kind: "barcode format", Value: f.String()}
	}
	return []byte(f.String()), nil
}

func (f *BarcodeFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseBarcodeFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ==================== BARCODE SCHEMA ====================

// BarcodeSchema classifies the decoded text of a barcode.
type BarcodeSchema int

const (
	SchemaApp BarcodeSchema = iota + 1
	SchemaBoardingPass
	SchemaBookmark
	SchemaCryptocurrency
	SchemaEmail
	SchemaGeo
	SchemaGoogleMaps
	SchemaMeCard
	SchemaMMS
	SchemaNZCovidTracer
	SchemaOTPAuth
	SchemaOther
	SchemaPhone
	SchemaSMS
	SchemaURL
	SchemaVCard
	SchemaVEvent
	SchemaWifi
	SchemaYoutube
)

var barcodeSchemaNames = map[BarcodeSchema]string{
	SchemaApp:            "APP",
	SchemaBoardingPass:   "BOARDINGPASS",
	SchemaBookmark:       "BOOKMARK",
	SchemaCryptocurrency: "CRYPTOCURRENCY",
	SchemaEmail:          "EMAIL",
	SchemaGeo:            "GEO",
	SchemaGoogleMaps:     "GOOGLE_MAPS",
	SchemaMeCard:         "MECARD",
	SchemaMMS:            "MMS",
	SchemaNZCovidTracer:  "NZCOVIDTRACER",
	SchemaOTPAuth:        "OTP_AUTH",
	SchemaOther:          "OTHER",
	SchemaPhone:          "PHONE",
	SchemaSMS:            "SMS",
	SchemaURL:            "URL",
	SchemaVCard:          "VCARD",
	SchemaVEvent:         "VEVENT",
	SchemaWifi:           "WIFI",
	SchemaYoutube:        "YOUTUBE",
}

var barcodeSchemasByName = invert(barcodeSchemaNames)

func BarcodeSchemas() []BarcodeSchema {
	schemas := make([]BarcodeSchema, 0, len(barcodeSchemaNames))
	for s := SchemaApp; s <= SchemaYoutube; s++ {
		schemas = append(schemas, s)
	}
	return schemas
}

// ParseBarcodeSchema returns the schema whose canonical name is s.
func ParseBarcodeSchema(s string) (BarcodeSchema, error) {
	if schema, ok := barcodeSchemasByName[s]; ok {
		return schema, nil
	}
	return 0, &UnknownValueError{Kind: "barcode schema", Value: s}
}

func (s BarcodeSchema) IsValid() bool {
	_, ok := barcodeSchemaNames[s]
	return ok
}

func (s BarcodeSchema) String() string {
	if name, ok := barcodeSchemaNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BarcodeSchema(%d)", int(s))
}

func (s BarcodeSchema) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, &UnknownValueError{Kind: "barcode schema", Value: s.String()}
	}
	return s.String(), nil
}

func (s *BarcodeSchema) Scan(src any) error {
	name, err := scanName("barcode schema", src)
	if err != nil {
		return err
	}
	parsed, err := ParseBarcodeSchema(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s BarcodeSchema) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, &UnknownValueError{Kind: "barcode schema", Value: s.String()}
	}
	return []byte(s.String()), nil
}

func (s *BarcodeSchema) UnmarshalText(text []byte) error {
	parsed, err := ParseBarcodeSchema(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func scanName(kind string, src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", &UnknownValueError{Kind: kind, Value: "NULL"}
	default:
		return "", fmt.Errorf("cannot scan %T into %s", src, kind)
	}
}

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
