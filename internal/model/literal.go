package model

import "strconv"

// LiteralKind is the primitive kind of a literal value.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralBoolean:
		return "boolean"
	}
	return "literal(" + strconv.Itoa(int(k)) + ")"
}

// Literal is a single concrete primitive value used as a type.
type Literal struct {
	node
	LiteralKind LiteralKind
	Str         string
	Num         float64
	Bool        bool
}

func (*Literal) Kind() Kind { return KindLiteral }

func (t *Literal) String() string {
	switch t.LiteralKind {
	case LiteralNumber:
		return strconv.FormatFloat(t.Num, 'f', -1, 64)
	case LiteralBoolean:
		return strconv.FormatBool(t.Bool)
	}
	return strconv.Quote(t.Str)
}

// Value returns the literal as a plain Go value (string, float64 or bool).
func (t *Literal) Value() any {
	switch t.LiteralKind {
	case LiteralNumber:
		return t.Num
	case LiteralBoolean:
		return t.Bool
	}
	return t.Str
}

// LiteralKey identifies a literal by kind and value. It is comparable.
type LiteralKey struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

// Key returns the comparable identity of the literal. Fields that do not
// belong to the literal's kind are zeroed.
func (t *Literal) Key() LiteralKey {
	k := LiteralKey{Kind: t.LiteralKind}
	switch t.LiteralKind {
	case LiteralNumber:
		k.Num = t.Num
	case LiteralBoolean:
		k.Bool = t.Bool
	default:
		k.Str = t.Str
	}
	return k
}

// StringLiteral returns a string literal type.
func StringLiteral(s string) *Literal {
	return &Literal{LiteralKind: LiteralString, Str: s}
}

// NumberLiteral returns a number literal type.
func NumberLiteral(n float64) *Literal {
	return &Literal{LiteralKind: LiteralNumber, Num: n}
}

// BooleanLiteral returns a boolean literal type.
func BooleanLiteral(b bool) *Literal {
	return &Literal{LiteralKind: LiteralBoolean, Bool: b}
}
