package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Summary is the human-readable view of a record. Meta and VCInner are the
// parsed intermediate objects, nil when absent or unparseable.
type Summary struct {
	IssuerName string         `json:"issuer_name"`
	SubjectDID string         `json:"subject_did"`
	DegreeType string         `json:"degree_type"`
	DegreeName string         `json:"degree_name"`
	ValidFrom  string         `json:"valid_from"`
	Meta       map[string]any `json:"meta,omitempty"`
	VCInner    map[string]any `json:"vc_inner,omitempty"`
}

// whitespace before a comma, including the Unicode spaces JSON producers
// sometimes leave behind.
var spaceBeforeComma = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}\x{2028}\x{2029}]+,`)

// ParseSummary resolves the display fields of rec. Each field is taken from
// a non-empty string on the metadata first, then from the embedded
// credential, then defaults to Placeholder.
func ParseSummary(rec VaultRecord) Summary {
	meta := parseMeta(rec.Data)

	var vcInner map[string]any
	if vcData, ok := meta["vcData"].(string); ok {
		vcInner = asObject(parseLenient(vcData))
	}

	return Summary{
		IssuerName: resolve(meta, "issuerName", vcInner, []string{"issuer", "name"}),
		SubjectDID: resolve(meta, "subjectDid", vcInner, []string{"credentialSubject", "id"}),
		DegreeType: resolve(meta, "degreeType", vcInner, []string{"credentialSubject", "degree", "type"}),
		DegreeName: resolve(meta, "degreeName", vcInner, []string{"credentialSubject", "degree", "name"}),
		ValidFrom:  resolve(meta, "validFrom", vcInner, []string{"validFrom"}, []string{"issuanceDate"}),
		Meta:       meta,
		VCInner:    vcInner,
	}
}

// parseMeta accepts data as a JSON string holding the metadata or as the
// metadata object itself.
func parseMeta(data json.RawMessage) map[string]any {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		return asObject(parseLenient(s))
	case '{':
		v, err := decodeStrict(string(trimmed))
		if err != nil {
			return nil
		}
		return asObject(v)
	default:
		return nil
	}
}

// parseLenient parses s strictly and, failing that, once more after removing
// backticks and whitespace before commas. It returns nil when both fail.
func parseLenient(s string) any {
	if s == "" {
		return nil
	}
	if v, err := decodeStrict(s); err == nil {
		return v
	}
	cleaned := strings.ReplaceAll(s, "`", "")
	cleaned = spaceBeforeComma.ReplaceAllString(cleaned, ",")
	if v, err := decodeStrict(cleaned); err == nil {
		return v
	}
	return nil
}

// decodeStrict parses exactly one JSON value, keeping numbers verbatim.
func decodeStrict(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func resolve(meta map[string]any, key string, vcInner map[string]any, paths ...[]string) string {
	if s, ok := meta[key].(string); ok && s != "" {
		return s
	}
	for _, path := range paths {
		if s := stringPath(vcInner, path); s != "" {
			return s
		}
	}
	return Placeholder
}

// stringPath walks path through nested objects. Arrays and scalars on the
// way, or a non-string leaf, yield "".
func stringPath(obj map[string]any, path []string) string {
	var current any = obj
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok || m == nil {
			return ""
		}
		if current, ok = m[key]; !ok {
			return ""
		}
	}
	s, _ := current.(string)
	return s
}
