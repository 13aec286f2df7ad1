// Package input holds the hierarchical configuration items consumed by the
// object factories. An Item is a key with either a value or an ordered list
// of child items; keys may repeat, which is how several objects of the same
// kind are listed inside one section.
//
// Keys compare case-insensitively and ignore white space, so "Box Size",
// "box size" and "boxsize" all name the same key.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrNoKey is returned when an item has no child with the requested key.
	ErrNoKey = errors.New("key not found")
	// ErrBadValue is returned when a value cannot be parsed as requested.
	ErrBadValue = errors.New("invalid value")
)

// Item is one node of the input tree.
type Item struct {
	key      string
	value    string
	children []*Item
}

// New returns a leaf item.
func New(key, value string) *Item {
	return &Item{key: key, value: value}
}

// Section returns an item holding children.
func Section(key string, children ...*Item) *Item {
	it := &Item{key: key}
	it.Add(children...)
	return it
}

// Value is shorthand for a leaf with a formatted value.
func Value(key string, v any) *Item {
	switch x := v.(type) {
	case string:
		return New(key, x)
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return New(key, strings.Join(parts, " "))
	default:
		return New(key, fmt.Sprint(v))
	}
}

// Add appends children, skipping nil items.
func (it *Item) Add(children ...*Item) *Item {
	for _, c := range children {
		if c != nil {
			it.children = append(it.children, c)
		}
	}
	return it
}

// Key returns the item key.
func (it *Item) Key() string { return it.key }

// Value returns the raw value of a leaf item.
func (it *Item) Value() string { return it.value }

// Children returns the child items in order.
func (it *Item) Children() []*Item { return it.children }

// Normalize returns the canonical form of a key: white space removed and
// upper case.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Compare reports whether two keys are equal once normalized.
func Compare(a, b string) bool { return Normalize(a) == Normalize(b) }

// IsA reports whether the item key matches key.
func (it *Item) IsA(key string) bool { return Compare(it.key, key) }

// GetItem returns the item itself when it matches key, otherwise its first
// child that does. It returns nil when there is none.
func (it *Item) GetItem(key string) *Item {
	if it.IsA(key) {
		return it
	}
	for _, c := range it.children {
		if c.IsA(key) {
			return c
		}
	}
	return nil
}

// TakeItem removes and returns the first child matching key. When self is
// true and the item itself matches, the item is returned as is.
func (it *Item) TakeItem(key string, self bool) *Item {
	if self && it.IsA(key) {
		return it
	}
	for i, c := range it.children {
		if c.IsA(key) {
			it.children = append(it.children[:i], it.children[i+1:]...)
			return c
		}
	}
	return nil
}

func (it *Item) leaf(key string) (*Item, error) {
	if it == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoKey, key)
	}
	for _, c := range it.children {
		if c.IsA(key) && len(c.children) == 0 {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoKey, key)
}

// Has reports whether a leaf with key exists.
func (it *Item) Has(key string) bool {
	_, err := it.leaf(key)
	return err == nil
}

// GetString returns the trimmed value of key.
func (it *Item) GetString(key string) (string, error) {
	c, err := it.leaf(key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(c.value), nil
}

// GetStrings splits the value of key on white space and commas.
func (it *Item) GetStrings(key string) ([]string, error) {
	s, err := it.GetString(key)
	if err != nil {
		return nil, err
	}
	return SplitList(s), nil
}

// GetFloat parses the value of key as a single number.
func (it *Item) GetFloat(key string) (float64, error) {
	s, err := it.GetString(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrBadValue, key, s)
	}
	return f, nil
}

// GetFloats parses the value of key as a list of numbers.
func (it *Item) GetFloats(key string) ([]float64, error) {
	parts, err := it.GetStrings(key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s = %q", ErrBadValue, key, p)
		}
		out[i] = f
	}
	return out, nil
}

// GetInt parses the value of key as an integer.
func (it *Item) GetInt(key string) (int, error) {
	s, err := it.GetString(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrBadValue, key, s)
	}
	return n, nil
}

// Map returns the leaf children as raw strings keyed by their original key.
// The first occurrence of a key wins, as with GetString.
func (it *Item) Map() map[string]any {
	m := make(map[string]any, len(it.children))
	for _, c := range it.children {
		if len(c.children) != 0 {
			continue
		}
		if _, ok := m[c.key]; !ok {
			m[c.key] = strings.TrimSpace(c.value)
		}
	}
	return m
}

// SplitList splits s on white space and commas.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	cp := &Item{key: it.key, value: it.value}
	for _, c := range it.children {
		cp.children = append(cp.children, c.Clone())
	}
	return cp
}

// String renders the item in the ":start key:" / ":stop key:" layout.
func (it *Item) String() string {
	var b strings.Builder
	it.write(&b, 0)
	return b.String()
}

func (it *Item) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("    ", depth)
	if len(it.children) == 0 {
		fmt.Fprintf(b, "%s%s = %s\n", indent, it.key, it.value)
		return
	}
	fmt.Fprintf(b, "%s:start %s:\n", indent, it.key)
	for _, c := range it.children {
		c.write(b, depth+1)
	}
	fmt.Fprintf(b, "%s:stop %s:\n", indent, it.key)
}
