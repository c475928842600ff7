// Package filedoc is the single codec for embedded document payloads.
// Every document slot in the API (asset receipts and manuals, invoice files,
// warranty documents) moves through Encode/Decode so the wire behavior is
// identical across entities.
package filedoc

import (
	"encoding/base64"

	pkgerrors "github.com/tracelabs/assetbook-backend/pkg/errors"
)

// Decode converts an inbound base64 payload into raw bytes. A nil or empty
// payload means "no document" and yields nil bytes with no error. Malformed
// base64 is a validation error.
func Decode(payload *string) ([]byte, error) {
	if payload == nil || *payload == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(*payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid base64 document payload")
	}
	return data, nil
}

// Encode converts stored bytes into the outbound base64 representation.
// Absent bytes project to nil, never an empty string.
func Encode(data []byte) *string {
	if len(data) == 0 {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return &encoded
}
