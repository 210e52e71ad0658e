package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Attributes is a string map that remembers insertion order.
// The zero value is ready to use.
type Attributes struct {
	keys   []string
	values map[string]string
}

func NewAttributes(pairs ...string) *Attributes {
	a := &Attributes{}
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

func (a *Attributes) Get(key string) (string, bool) {
	if a == nil || a.values == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Value returns the value for key or "".
func (a *Attributes) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

func (a *Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Set overwrites in place; a new key goes to the end.
func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// SetIfMissing reports whether the value was written.
func (a *Attributes) SetIfMissing(key, value string) bool {
	if a.Has(key) {
		return false
	}
	a.Set(key, value)
	return true
}

func (a *Attributes) Delete(key string) {
	if !a.Has(key) {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
}

func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.keys...)
}

func (a *Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if a == nil {
			return
		}
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

func (a *Attributes) Clone() *Attributes {
	out := &Attributes{}
	for k, v := range a.All() {
		out.Set(k, v)
	}
	return out
}

// Map drops ordering; handy for assertions.
func (a *Attributes) Map() map[string]string {
	out := make(map[string]string, a.Len())
	for k, v := range a.All() {
		out[k] = v
	}
	return out
}

func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range a.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		i++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}
	*a = Attributes{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)
		var v string
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("attributes: value for %q: %w", key, err)
		}
		a.Set(key, v)
	}
	_, err = dec.Token()
	return err
}
