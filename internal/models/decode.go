package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

// fields is a decoded JSON object whose members are read one at a time so a
// missing or malformed member falls back to a default without rejecting the
// whole record.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("record is null")
	}
	return f, nil
}

func (f fields) str(key, def string) string {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}

func (f fields) int(key string, def int) int {
	return int(f.int64(key, int64(def)))
}

func (f fields) int64(key string, def int64) int64 {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		// Older writers stored numbers as strings.
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return def
		}
		n = json.Number(s)
	}
	if v, err := n.Int64(); err == nil {
		return v
	}
	if v, err := n.Float64(); err == nil {
		return int64(v)
	}
	return def
}

func (f fields) float(key string, def float64) float64 {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return def
}

func (f fields) bool(key string, def bool) bool {
	raw, ok := f[key]
	if !ok {
		return def
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return def
	}
	return v
}
