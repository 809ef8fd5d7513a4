package domain

// Field is one preprocessed value extracted from a registry detail document.
// Some registries publish every attribute as a (text, date) pair; the date is
// the attribute's own last-modified stamp.
type Field struct {
	Text string
	Date string
}

// Fields is the side table a detail-preprocessing step produces. It is
// threaded through explicitly on the RawItem rather than kept as adapter
// state, so adapters stay safe to share between searches.
type Fields map[string]Field

// Text returns the text of the named field, or "" when absent.
func (f Fields) Text(name string) string {
	return f[name].Text
}

// RawItem is one record as returned by a registry, decoded but not yet
// mapped. Data is the decoded JSON value (or a scrape result); Fields is the
// optional preprocessed side table for the same record.
type RawItem struct {
	Data   any
	Fields Fields
}

// Item wraps a decoded value with no preprocessed fields.
func Item(data any) RawItem {
	return RawItem{Data: data}
}

// Map returns the item's data as an object, or nil when it is not one.
func (r RawItem) Map() map[string]any {
	m, _ := r.Data.(map[string]any)
	return m
}

// String returns the string at the given path inside the item's data.
func (r RawItem) String(path ...string) string {
	return DigString(r.Data, path...)
}

// Dig walks a decoded JSON value along a path of object keys. It returns
// nil as soon as a key is missing or a non-object is encountered mid-path.
func Dig(data any, path ...string) any {
	cur := data
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

// DigString is Dig for string leaves; non-strings come back as "".
func DigString(data any, path ...string) string {
	s, _ := Dig(data, path...).(string)
	return s
}

// DigList is Dig for array leaves; non-arrays come back as nil.
func DigList(data any, path ...string) []any {
	l, _ := Dig(data, path...).([]any)
	return l
}

// DigMap is Dig for object leaves; non-objects come back as nil.
func DigMap(data any, path ...string) map[string]any {
	m, _ := Dig(data, path...).(map[string]any)
	return m
}

// DigFloat is Dig for numeric leaves (decoded JSON numbers are float64).
func DigFloat(data any, path ...string) (float64, bool) {
	f, ok := Dig(data, path...).(float64)
	return f, ok
}

// Payload is one HTTP response body after decoding: JSON registries fill
// JSON, scraped registries fill HTML. An empty payload stands in for a
// failed or fruitless fetch.
type Payload struct {
	JSON any
	HTML string
}

// Empty reports whether the payload carries nothing.
func (p Payload) Empty() bool {
	return p.JSON == nil && p.HTML == ""
}

// List returns the payload's JSON as an array, or nil.
func (p Payload) List() []any {
	l, _ := p.JSON.([]any)
	return l
}

// Object returns the payload's JSON as an object, or nil.
func (p Payload) Object() map[string]any {
	m, _ := p.JSON.(map[string]any)
	return m
}
