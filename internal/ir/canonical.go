package ir

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/text/unicode/norm"
)

// normalizeString NFC-normalizes a literal/keyword string at the
// serialization boundary, the same point the teacher repo's
// MarshalCanonical normalizes strings before hashing (internal/ir/canonical.go
// upstream).
func normalizeString(s string) string {
	return norm.NFC.String(s)
}

// MarshalCanonical produces deterministic, indentation-free JSON for an IR
// value (or any of its sub-nodes): no HTML escaping, and map keys sorted
// (guaranteed by the standard library for string-keyed maps). Unlike the
// upstream store's RFC 8785 hasher, floats are permitted — PAMELA costs,
// rewards and lvar defaults are floats by spec (§3.3, §4.3), unlike the
// upstream's float-free event log.
//
// This is the only serialization that should be used for golden snapshots
// (internal/harness) and for the compile-cache content hash
// (internal/cache).
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}

// ContentHash returns the SHA-256 hex digest of v's canonical JSON encoding,
// used by internal/cache to key compile results by input content.
func ContentHash(v any) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
