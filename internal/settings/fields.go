package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type field struct {
	format func() string
	parse  func(string) error
}

type listField struct {
	capacity int
	values   func() []string
	restore  func(index int, value string)
}

// FieldSet is the field table behind a Group: each bound name maps to a
// formatter and a parse-and-assign function. Concrete groups embed a
// *FieldSet and bind their fields once, in their constructor.
type FieldSet struct {
	prefix string
	debug  bool
	names  []string
	fields map[string]field
	lists  map[string]listField
}

// NewFieldSet creates an empty field table for a group with the given prefix.
func NewFieldSet(prefix string, debug bool) *FieldSet {
	return &FieldSet{
		prefix: prefix,
		debug:  debug,
		fields: make(map[string]field),
		lists:  make(map[string]listField),
	}
}

// Prefix implements Group.
func (fs *FieldSet) Prefix() string {
	return fs.prefix
}

// Debug implements Group.
func (fs *FieldSet) Debug() bool {
	return fs.debug
}

// Names returns the bound field names in binding order.
func (fs *FieldSet) Names() []string {
	out := make([]string, len(fs.names))
	copy(out, fs.names)
	return out
}

// StoreProperties implements Group. Fields are written in binding order;
// list fields write one indexed key per non-empty slot.
func (fs *FieldSet) StoreProperties(sink PropertySink) {
	for _, name := range fs.names {
		if f, ok := fs.fields[name]; ok {
			sink.Set(fs.prefix+name, f.format())
			continue
		}
		list := fs.lists[name]
		for i, value := range list.values() {
			if i >= list.capacity {
				break
			}
			if value == "" {
				continue
			}
			sink.Set(fs.prefix+name+"."+strconv.Itoa(i), value)
		}
	}
}

// InitializeByProperty implements Group. Names match exactly; a failed parse
// leaves the field untouched.
func (fs *FieldSet) InitializeByProperty(key, value string) error {
	name, ok := strings.CutPrefix(key, fs.prefix)
	if !ok {
		return fmt.Errorf("%w: %q does not start with %q", ErrUnknownField, key, fs.prefix)
	}

	if f, ok := fs.fields[name]; ok {
		if err := f.parse(value); err != nil {
			return fmt.Errorf("%w: %s = %q: %w", ErrInvalidValue, key, value, err)
		}
		return nil
	}

	if base, index, ok := splitIndex(name); ok {
		if list, ok := fs.lists[base]; ok {
			if index >= list.capacity {
				return fmt.Errorf("%w: %s: index %d exceeds capacity %d", ErrInvalidValue, key, index, list.capacity)
			}
			list.restore(index, value)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// Bool binds a boolean field. Only "true" and "false" are accepted.
func (fs *FieldSet) Bool(name string, p *bool) {
	fs.bind(name, field{
		format: func() string { return strconv.FormatBool(*p) },
		parse: func(s string) error {
			switch s {
			case "true":
				*p = true
			case "false":
				*p = false
			default:
				return errors.New(`want "true" or "false"`)
			}
			return nil
		},
	})
}

// Int binds an integer field.
func (fs *FieldSet) Int(name string, p *int) {
	fs.bind(name, field{
		format: func() string { return strconv.Itoa(*p) },
		parse: func(s string) error {
			v, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
	})
}

// Float32 binds a single-precision field.
func (fs *FieldSet) Float32(name string, p *float32) {
	fs.Float32Func(name,
		func() float32 { return *p },
		func(v float32) { *p = v },
	)
}

// Float32Func binds a single-precision field through accessors, so a setter
// can clamp or otherwise normalise restored values.
func (fs *FieldSet) Float32Func(name string, get func() float32, set func(float32)) {
	fs.bind(name, field{
		format: func() string { return strconv.FormatFloat(float64(get()), 'f', -1, 32) },
		parse: func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			if err != nil {
				return err
			}
			set(float32(v))
			return nil
		},
	})
}

// Float64 binds a double-precision field.
func (fs *FieldSet) Float64(name string, p *float64) {
	fs.bind(name, field{
		format: func() string { return strconv.FormatFloat(*p, 'f', -1, 64) },
		parse: func(s string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
	})
}

// Text binds a free-form text field.
func (fs *FieldSet) Text(name string, p *string) {
	fs.bind(name, field{
		format: func() string { return *p },
		parse: func(s string) error {
			*p = s
			return nil
		},
	})
}

// Path binds a file-system path field. The text is stored verbatim.
func (fs *FieldSet) Path(name string, p *string) {
	fs.Text(name, p)
}

// Var binds a field with a custom text form.
func (fs *FieldSet) Var(name string, v Value) {
	fs.bind(name, field{
		format: v.String,
		parse:  v.Set,
	})
}

// List binds a fixed-capacity list of paths. Slot i is persisted under
// "<prefix><name>.<i>"; restore receives each slot as it is loaded.
func (fs *FieldSet) List(name string, capacity int, values func() []string, restore func(index int, value string)) {
	fs.claim(name)
	fs.lists[name] = listField{capacity: capacity, values: values, restore: restore}
}

func (fs *FieldSet) bind(name string, f field) {
	fs.claim(name)
	fs.fields[name] = f
}

func (fs *FieldSet) claim(name string) {
	if _, ok := fs.fields[name]; ok {
		panic(fmt.Sprintf("settings: field %q bound twice in group %q", name, fs.prefix))
	}
	if _, ok := fs.lists[name]; ok {
		panic(fmt.Sprintf("settings: field %q bound twice in group %q", name, fs.prefix))
	}
	fs.names = append(fs.names, name)
}

// splitIndex splits "name.3" into ("name", 3).
func splitIndex(name string) (string, int, bool) {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return "", 0, false
	}
	index, err := strconv.Atoi(name[dot+1:])
	if err != nil || index < 0 {
		return "", 0, false
	}
	return name[:dot], index, true
}
