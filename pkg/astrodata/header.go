package astrodata

import(
	"fmt"
	"math"
	"sort"
	"strings"
)

// A Card is one header keyword
type Card struct {
	Name    string
	Value   interface{}
	Comment string
}

// Header is an ordered set of keywords, like a FITS header. Names are
// upper-cased on the way in. Values are kept as float64, int, string or bool.
type Header struct {
	cards []Card
	index map[string]int
}

func NewHeader() *Header {
	return &Header{index: map[string]int{}}
}

func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case float32: return float64(x)
	case int8:    return int(x)
	case int16:   return int(x)
	case int32:   return int(x)
	case int64:   return int(x)
	case uint8:   return int(x)
	case uint16:  return int(x)
	case uint32:  return int(x)
	case uint:    return int(x)
	}
	return v
}

// Set replaces the value of an existing keyword in place, or appends a new one
func (h *Header)Set(name string, value interface{}) {
	name = strings.ToUpper(name)
	value = normalize(value)
	if i, exists := h.index[name]; exists {
		h.cards[i].Value = value
		return
	}
	h.index[name] = len(h.cards)
	h.cards = append(h.cards, Card{Name:name, Value:value})
}

func (h *Header)SetComment(name, comment string) {
	if i, exists := h.index[strings.ToUpper(name)]; exists {
		h.cards[i].Comment = comment
	}
}

func (h *Header)Get(name string) (interface{}, bool) {
	i, exists := h.index[strings.ToUpper(name)]
	if !exists { return nil, false }
	return h.cards[i].Value, true
}

func (h *Header)Has(name string) bool {
	_, exists := h.index[strings.ToUpper(name)]
	return exists
}

func (h *Header)Delete(name string) {
	i, exists := h.index[strings.ToUpper(name)]
	if !exists { return }
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	h.reindex()
}

func (h *Header)reindex() {
	h.index = make(map[string]int, len(h.cards))
	for i, c := range h.cards {
		h.index[c.Name] = i
	}
}

// Float returns numeric values (ints included) as float64
func (h *Header)Float(name string) (float64, bool) {
	v, ok := h.Get(name)
	if !ok { return 0, false }
	switch x := v.(type) {
	case float64: return x, true
	case int:     return float64(x), true
	}
	return 0, false
}

// Int returns int values, and float values that happen to be whole numbers
func (h *Header)Int(name string) (int, bool) {
	v, ok := h.Get(name)
	if !ok { return 0, false }
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		if x == math.Trunc(x) { return int(x), true }
	}
	return 0, false
}

func (h *Header)String(name string) (string, bool) {
	v, ok := h.Get(name)
	if !ok { return "", false }
	s, ok := v.(string)
	return s, ok
}

func (h *Header)Bool(name string) (bool, bool) {
	v, ok := h.Get(name)
	if !ok { return false, false }
	b, ok := v.(bool)
	return b, ok
}

// FloatOr is Float with a fallback, for keywords like PA that default to zero
func (h *Header)FloatOr(name string, def float64) float64 {
	if v, ok := h.Float(name); ok { return v }
	return def
}

// AddFloat adds to a numeric keyword, treating a missing one as zero
func (h *Header)AddFloat(name string, delta float64) {
	h.Set(name, h.FloatOr(name, 0) + delta)
}

// Update sets every keyword in the map, in sorted order so the header comes out
// the same each time.
func (h *Header)Update(kv map[string]interface{}) {
	names := make([]string, 0, len(kv))
	for k := range kv {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		h.Set(k, kv[k])
	}
}

func (h *Header)Keys() []string {
	keys := make([]string, len(h.cards))
	for i, c := range h.cards {
		keys[i] = c.Name
	}
	return keys
}

func (h *Header)Cards() []Card {
	return append([]Card{}, h.cards...)
}

func (h *Header)Len() int { return len(h.cards) }

func (h *Header)Clone() *Header {
	h2 := Header{cards: append([]Card{}, h.cards...)}
	h2.reindex()
	return &h2
}

// AsMap is a snapshot of the values, handy for comparing headers
func (h *Header)AsMap() map[string]interface{} {
	m := make(map[string]interface{}, len(h.cards))
	for _, c := range h.cards {
		m[c.Name] = c.Value
	}
	return m
}

func (h *Header)Dump() string {
	str := ""
	for _, c := range h.cards {
		str += fmt.Sprintf("%-8s= %v\n", c.Name, c.Value)
	}
	return str
}
