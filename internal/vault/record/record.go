// Package record turns opaque vault records into display summaries.
//
// A record's data is usually a JSON string holding metadata, whose vcData
// field is itself a JSON string holding the credential. Either level may be
// missing or malformed; rendering never fails and falls back to Placeholder.
package record

import (
	"bytes"
	"encoding/json"
)

// Placeholder is shown for any field that cannot be resolved.
const Placeholder = "—"

// VaultRecord is a credential record as returned by the vault.
type VaultRecord struct {
	ID               string          `json:"id"`
	IssuerDID        string          `json:"issuer_did,omitempty"`
	IssuanceContract string          `json:"issuance_contract,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
}

// Decode reads a record from raw vault output. It reports false for null and
// for anything that is not a JSON object. Fields of an unexpected type are
// left empty rather than failing the whole record.
func Decode(raw json.RawMessage) (VaultRecord, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return VaultRecord{}, false
	}
	rec := VaultRecord{
		ID:               scalarString(fields["id"]),
		IssuerDID:        stringField(fields["issuer_did"]),
		IssuanceContract: stringField(fields["issuance_contract"]),
	}
	if data, ok := fields["data"]; ok && !isNull(data) {
		rec.Data = data
	}
	return rec, true
}

func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// scalarString reads a string, or keeps the literal text of a number.
func scalarString(raw json.RawMessage) string {
	if s := stringField(raw); s != "" {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
