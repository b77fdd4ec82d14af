package normalize

// Value is the result of normalizing a free-text field: either a canonical
// comparison string or an explicit missing marker. The zero Value is missing,
// so a Value can never silently stand in for an empty-but-present string.
type Value struct {
	text    string
	present bool
}

// Missing returns the explicit missing marker.
func Missing() Value {
	return Value{}
}

// Of wraps a normalized non-empty string. An empty string degrades to the
// missing marker.
func Of(text string) Value {
	if text == "" {
		return Missing()
	}
	return Value{text: text, present: true}
}

// IsMissing reports whether the value carries no identity.
func (v Value) IsMissing() bool {
	return !v.present
}

// Text returns the normalized string, or "" for the missing marker.
func (v Value) Text() string {
	return v.text
}

func (v Value) String() string {
	if !v.present {
		return "<missing>"
	}
	return v.text
}
