// Package settings merges tenant settings documents.
//
// Merging follows JSON merge-patch rules: objects merge key by key, any
// other patch value replaces the base value, and a null deletes the key.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotObject = errors.New("settings: document must be a JSON object")

// Merge returns base with patch applied. Neither argument is modified.
func Merge(base, patch map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		out[k] = clone(v)
	}
	for k, pv := range patch {
		if pv == nil {
			delete(out, k)
			continue
		}
		pm, ok := pv.(map[string]any)
		if !ok {
			out[k] = clone(pv)
			continue
		}
		bm, _ := out[k].(map[string]any)
		out[k] = Merge(bm, pm)
	}
	return out
}

// MergeJSON decodes both documents, merges them and re-encodes the result.
// An empty base counts as {}.
func MergeJSON(base, patch []byte) ([]byte, error) {
	b, err := Decode(base)
	if err != nil {
		return nil, fmt.Errorf("decode base: %w", err)
	}
	p, err := Decode(patch)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return json.Marshal(Merge(b, p))
}

// Decode parses a settings document, requiring a JSON object.
func Decode(doc []byte) (map[string]any, error) {
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 || bytes.Equal(doc, []byte("null")) {
		return map[string]any{}, nil
	}
	if doc[0] != '{' {
		return nil, ErrNotObject
	}
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Lookup walks a dotted path ("branding.logo_url") and returns the value.
func Lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String is Lookup for string leaves; anything else yields "".
func String(doc map[string]any, path string) string {
	v, ok := Lookup(doc, path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = clone(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = clone(vv)
		}
		return s
	default:
		return v
	}
}
