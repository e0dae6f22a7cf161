package settings

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/magiconair/properties"
)

// PropertySink receives the key/value pairs a group serializes.
type PropertySink interface {
	Set(key, value string)
}

// Record is an ordered mapping of property keys to values.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores value under key. A new key is appended; an existing key keeps its position.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// Decode reads a flat key/value properties stream.
func Decode(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrIO, err)
	}
	return DecodeBytes(data)
}

// DecodeBytes parses properties content. Comment lines are ignored and binary
// content is rejected with ErrDecode.
func DecodeBytes(data []byte) (*Record, error) {
	if err := checkText(data); err != nil {
		return nil, err
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	rec := NewRecord()
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		rec.Set(key, value)
	}
	return rec, nil
}

// Encode writes rec as one section headed by a "# header" comment line.
// No timestamp comment is emitted, so encoding unchanged data always yields
// the same bytes.
func Encode(w io.Writer, rec *Record, header string) error {
	var buf bytes.Buffer
	if header != "" {
		fmt.Fprintf(&buf, "# %s\n", singleLine(header))
	}

	props := properties.NewProperties()
	props.DisableExpansion = true
	for _, key := range rec.keys {
		if _, _, err := props.Set(key, rec.values[key]); err != nil {
			return fmt.Errorf("encode %q: %w", key, err)
		}
	}
	if _, err := props.Write(&buf, properties.UTF8); err != nil {
		return fmt.Errorf("encode section %q: %w", header, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: write section %q: %w", ErrIO, header, err)
	}
	return nil
}

func checkText(data []byte) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: content is not valid UTF-8", ErrDecode)
	}
	for i, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			return fmt.Errorf("%w: control byte 0x%02x at offset %d", ErrDecode, b, i)
		}
	}
	return nil
}

func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
