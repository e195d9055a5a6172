// Package read implements the grammar loader and the PAMELA/magic reader:
// the lexer, the concrete-syntax grammar, and parse-tree traversal helpers
// the IR builder (internal/build) dispatches on (spec §4.1–§4.2).
//
// PAMELA's concrete syntax is a Lisp/Clojure-style reader — the magic file
// header documented in spec §6 ("-*- Mode: clojure -*-") is the tell: lists
// "(...)", vectors "[...]", maps "{...}", keywords ":foo", symbols, strings,
// integers and floats. Both pamela.ebnf and magic.ebnf describe this same
// reader grammar; magic.ebnf additionally restricts the top-level production
// to a sequence of lvar-ctor forms (spec §4.2).
package read

// Datum is one node of the concrete syntax tree produced by the reader —
// the undifferentiated parse tree that internal/build transforms bottom-up
// into IR (spec §4.3). Exactly one field is non-nil.
type Datum struct {
	List    *ListForm   `( @@`
	Vector  *VectorForm `| @@`
	Map     *MapForm    `| @@`
	Keyword *string     `| @Keyword`
	Str     *string     `| @String`
	Float   *float64    `| @Float`
	Int     *int64      `| @Int`
	Sym     *string     `| @Symbol )`
}

// ListForm is a parenthesized form: a function/special-form call such as
// (defpclass ...), (sequence ...), (= pwr :high), or a plant-fn call.
type ListForm struct {
	Items []*Datum `"(" @@* ")"`
}

// VectorForm is a bracketed form: an args vector, a mode-enum list, or (as a
// one-element special case carrying a single :TRUE/:FALSE keyword) a
// boolean literal (spec §4.3).
type VectorForm struct {
	Items []*Datum `"[" @@* "]"`
}

// MapForm is a braced form: an option map such as :meta {...} or a
// field-init map.
type MapForm struct {
	Entries []*MapEntry `"{" @@* "}"`
}

// MapEntry is one key/value pair of a MapForm. Keys are almost always
// keywords in PAMELA source, but the grammar does not require it.
type MapEntry struct {
	Key   *Datum `@@`
	Value *Datum `@@`
}

// IsSymbol reports whether d is a bare symbol, and returns its text.
func (d *Datum) IsSymbol() (string, bool) {
	if d != nil && d.Sym != nil {
		return *d.Sym, true
	}
	return "", false
}

// IsKeyword reports whether d is a bare keyword, and returns its text
// without the leading colon.
func (d *Datum) IsKeyword() (string, bool) {
	if d != nil && d.Keyword != nil {
		return *d.Keyword, true
	}
	return "", false
}

// IsList reports whether d is a parenthesized list, and returns its items.
func (d *Datum) IsList() ([]*Datum, bool) {
	if d != nil && d.List != nil {
		return d.List.Items, true
	}
	return nil, false
}

// IsVector reports whether d is a bracketed vector, and returns its items.
func (d *Datum) IsVector() ([]*Datum, bool) {
	if d != nil && d.Vector != nil {
		return d.Vector.Items, true
	}
	return nil, false
}

// IsMap reports whether d is a braced map, and returns its entries.
func (d *Datum) IsMap() ([]*MapEntry, bool) {
	if d != nil && d.Map != nil {
		return d.Map.Entries, true
	}
	return nil, false
}

// Head returns the leading symbol of a list form — the non-terminal name a
// builder dispatches on — and the remaining items.
func (d *Datum) Head() (name string, rest []*Datum, ok bool) {
	items, isList := d.IsList()
	if !isList || len(items) == 0 {
		return "", nil, false
	}
	sym, isSym := items[0].IsSymbol()
	if !isSym {
		return "", nil, false
	}
	return sym, items[1:], true
}
