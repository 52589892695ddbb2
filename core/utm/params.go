package utm

import (
	"bytes"
	"encoding/json"
	"slices"
	"sort"
)

// Params is an ordered set of campaign parameters. A key is either absent,
// present with a value, or present without one (null). The zero value is an
// empty set ready to use.
type Params struct {
	keys   []string
	values map[string]*string
}

// NewParams builds a set from a map. Keys listed in order come first in that
// order, remaining keys follow sorted by name.
func NewParams(values map[string]string, order ...string) Params {
	var p Params
	for _, k := range order {
		if v, ok := values[k]; ok {
			p.Set(k, v)
		}
	}

	rest := make([]string, 0, len(values))
	for k := range values {
		if !p.Has(k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		p.Set(k, values[k])
	}

	return p
}

// nullParams returns a set holding every key with no value.
func nullParams(keys []string) Params {
	var p Params
	for _, k := range keys {
		p.SetNull(k)
	}
	return p
}

// Len returns the number of keys, null ones included.
func (p Params) Len() int {
	return len(p.keys)
}

// Keys returns the keys in order.
func (p Params) Keys() []string {
	return slices.Clone(p.keys)
}

// Has reports whether key is part of the set, with or without a value.
func (p Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Lookup returns the value for key. ok is false when the key is absent or null.
func (p Params) Lookup(key string) (value string, ok bool) {
	v := p.values[key]
	if v == nil {
		return "", false
	}
	return *v, true
}

// Get returns the value for key, or an empty string.
func (p Params) Get(key string) string {
	v, _ := p.Lookup(key)
	return v
}

// Set stores a value, appending the key if it is new.
func (p *Params) Set(key, value string) {
	p.put(key, &value)
}

// SetNull keeps the key in the set without a value.
func (p *Params) SetNull(key string) {
	p.put(key, nil)
}

func (p *Params) put(key string, value *string) {
	if p.values == nil {
		p.values = make(map[string]*string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Map returns the keys that hold a value.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p.keys))
	for _, k := range p.keys {
		if v := p.values[k]; v != nil {
			m[k] = *v
		}
	}
	return m
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	var c Params
	for _, k := range p.keys {
		c.put(k, p.values[k])
	}
	return c
}

// MarshalJSON encodes the set as an object in key order, null keys as null.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// mergeParams layers sets from weakest to strongest: a key from a later
// layer replaces the same key from an earlier one, and keeps the position
// where it first appeared.
func mergeParams(layers ...Params) Params {
	var merged Params
	for _, layer := range layers {
		for _, k := range layer.keys {
			merged.put(k, layer.values[k])
		}
	}
	return merged
}
