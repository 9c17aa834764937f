package payload

// Document is a decoded JSON object from the provider API. Provider
// payloads nest several levels deep and omit fields freely, so every
// accessor is total: a missing or mistyped path yields the zero answer,
// never a panic or an error.
type Document map[string]any

// Lookup walks the given path through nested objects. The boolean
// reports whether every segment existed.
func (d Document) Lookup(path ...string) (any, bool) {
	if d == nil {
		return nil, false
	}

	var current any = map[string]any(d)
	for _, segment := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// DocAt returns the nested object at path, or ok=false when the path is
// absent or does not hold an object.
func (d Document) DocAt(path ...string) (Document, bool) {
	value, ok := d.Lookup(path...)
	if !ok {
		return nil, false
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(obj), true
}

// ListAt returns the array at path, or nil when absent or mistyped.
func (d Document) ListAt(path ...string) []any {
	value, ok := d.Lookup(path...)
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	return list
}

// StringAt returns a pointer to the string at path, or nil when the
// path is absent, null, or not a string.
func (d Document) StringAt(path ...string) *string {
	value, ok := d.Lookup(path...)
	if !ok {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return nil
	}
	return &s
}

// IntAt returns a pointer to the integer at path. JSON numbers decode
// as float64; the fractional part is discarded.
func (d Document) IntAt(path ...string) *int {
	value, ok := d.Lookup(path...)
	if !ok {
		return nil
	}
	switch n := value.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	}
	return nil
}

// FloatAt returns a pointer to the number at path.
func (d Document) FloatAt(path ...string) *float64 {
	value, ok := d.Lookup(path...)
	if !ok {
		return nil
	}
	switch n := value.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

// AsDocument converts a raw array element to a Document when it is an
// object; list entries of other shapes yield ok=false.
func AsDocument(value any) (Document, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(obj), true
}
