package typedoc

import "github.com/go-json-experiment/json/jsontext"

// rawReflection is a declaration, signature or parameter as TypeDoc writes it.
type rawReflection struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Kind         *int             `json:"kind"`
	Flags        rawFlags         `json:"flags"`
	Comment      *rawComment      `json:"comment"`
	Type         *rawType         `json:"type"`
	DefaultValue string           `json:"defaultValue"`
	Signatures   []*rawReflection `json:"signatures"`
	Parameters   []*rawReflection `json:"parameters"`
	Children     []*rawReflection `json:"children"`
}

type rawFlags struct {
	IsOptional bool `json:"isOptional"`
	IsRest     bool `json:"isRest"`
}

// rawComment covers both the pre-0.23 layout (shortText, text, tags) and the
// current one (summary, blockTags, modifierTags).
type rawComment struct {
	ShortText    string           `json:"shortText"`
	Text         string           `json:"text"`
	Tags         []rawLegacyTag   `json:"tags"`
	Summary      []rawCommentPart `json:"summary"`
	ModifierTags []string         `json:"modifierTags"`
}

type rawLegacyTag struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

type rawCommentPart struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// rawType is the union of every type node layout, discriminated by Type.
type rawType struct {
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	Value         jsontext.Value `json:"value"`
	Types         []*rawType     `json:"types"`
	Elements      []*rawType     `json:"elements"`
	ElementType   *rawType       `json:"elementType"`
	Element       *rawType       `json:"element"`
	IsOptional    bool           `json:"isOptional"`
	TypeArguments []*rawType     `json:"typeArguments"`
	Operator      string         `json:"operator"`
	Target        jsontext.Value `json:"target"` // a type for typeOperator, an id or symbol for reference
	QueryType     *rawType       `json:"queryType"`
	Declaration   *rawReflection `json:"declaration"`
}
