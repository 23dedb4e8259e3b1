package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/typeshapes/internal/model"
)

type paramShape struct {
	Name     string
	Type     string
	Optional bool
}

func shapes(params []UnifiedParameter) []paramShape {
	out := make([]paramShape, len(params))
	for i, p := range params {
		out[i] = paramShape{Name: p.Name, Type: p.Type.String(), Optional: p.Optional}
	}
	return out
}

func TestUnifiedFunction_Nil(t *testing.T) {
	_, ok := UnifiedFunction(nil)
	assert.False(t, ok)
}

func TestUnifiedFunction_NoSignatures(t *testing.T) {
	_, ok := UnifiedFunction(&model.Declaration{Name: "x", Kind: model.ReflectionVariable, Type: tString})
	assert.False(t, ok)
}

func TestUnifiedFunction_SingleSignature(t *testing.T) {
	s := sig(tVoid, param("tabId", tNumber), optParam("callback", ref("Function")))
	m, ok := UnifiedFunction(fn(s))
	require.True(t, ok)
	assert.Same(t, s, m.Signature)
	assert.Equal(t, tVoid, m.Return)
	assert.Equal(t, []paramShape{
		{Name: "tabId", Type: "number"},
		{Name: "callback", Type: "Function", Optional: true},
	}, shapes(m.Parameters))
	assert.Same(t, s.Parameters[0], m.Parameters[0].Source)
}

func TestUnifiedFunction_MiddleOptional(t *testing.T) {
	long := sig(tVoid, param("windowId", tNumber), param("name", tString), optParam("value", tString))
	short := sig(tVoid, param("name", tString), optParam("value", tString))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.Same(t, long, m.Signature)
	assert.Equal(t, tVoid, m.Return)
	assert.Equal(t, []paramShape{
		{Name: "windowId", Type: "number", Optional: true},
		{Name: "name", Type: "string"},
		{Name: "value", Type: "string", Optional: true},
	}, shapes(m.Parameters))
}

func TestUnifiedFunction_OrderOfSignaturesDoesNotMatter(t *testing.T) {
	long := sig(tVoid, param("windowId", tNumber), param("name", tString), optParam("value", tString))
	short := sig(tVoid, param("name", tString), optParam("value", tString))

	a, okA := UnifiedFunction(fn(long, short))
	b, okB := UnifiedFunction(fn(short, long))
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, shapes(a.Parameters), shapes(b.Parameters))
}

// (number, string, string) with (string, string) unifies to
// (number?, string, string), not (number?, string, string?): only a
// parameter missing from some overload becomes optional, and c is in both.
func TestUnifiedFunction_TrailingRequiredParametersStayRequired(t *testing.T) {
	long := sig(tVoid, param("a", tNumber), param("b", tString), param("c", tString))
	short := sig(tVoid, param("b", tString), param("c", tString))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.Equal(t, []paramShape{
		{Name: "a", Type: "number", Optional: true},
		{Name: "b", Type: "string"},
		{Name: "c", Type: "string"},
	}, shapes(m.Parameters))
}

func TestUnifiedFunction_IncompatibleTypes(t *testing.T) {
	a := sig(tVoid, param("x", tNumber), param("y", tString))
	b := sig(tVoid, param("x", tBoolean), param("y", tString))
	_, ok := UnifiedFunction(fn(a, b))
	assert.False(t, ok)
}

func TestUnifiedFunction_NoMonotonicAlignment(t *testing.T) {
	long := sig(tVoid, param("a", tNumber), param("b", tString))
	short := sig(tVoid, param("b", tString), param("a", tNumber))
	_, ok := UnifiedFunction(fn(long, short))
	assert.False(t, ok)
}

func TestUnifiedFunction_PrefersMatchingNames(t *testing.T) {
	long := sig(tVoid, param("first", tString), param("second", tString))
	short := sig(tVoid, param("second", tString))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.Equal(t, []paramShape{
		{Name: "first", Type: "string", Optional: true},
		{Name: "second", Type: "string"},
	}, shapes(m.Parameters))
}

func TestUnifiedFunction_LeftmostWhenNamesDoNotHelp(t *testing.T) {
	long := sig(tVoid, param("a", tString), param("b", tString))
	short := sig(tVoid, param("x", tString))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.Equal(t, []paramShape{
		{Name: "a", Type: "string"},
		{Name: "b", Type: "string", Optional: true},
	}, shapes(m.Parameters))
}

func TestUnifiedFunction_EmptySignatureMakesAllOptional(t *testing.T) {
	long := sig(tVoid, param("a", tString), param("b", tNumber))
	short := sig(tVoid)

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	for _, p := range m.Parameters {
		assert.True(t, p.Optional, "%s should be optional", p.Name)
	}
}

func TestUnifiedFunction_OptionalInShorterSignatureIsKept(t *testing.T) {
	long := sig(tVoid, param("a", tString), param("b", tNumber))
	short := sig(tVoid, optParam("a", tString))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.True(t, m.Parameters[0].Optional)
	assert.True(t, m.Parameters[1].Optional)
}

func TestUnifiedFunction_RestMustAlignWithRest(t *testing.T) {
	rest := &model.Parameter{Name: "args", Type: array(tString), Rest: true}
	long := sig(tVoid, param("a", tNumber), rest)
	short := sig(tVoid, param("args", array(tString)))

	_, ok := UnifiedFunction(fn(long, short))
	assert.False(t, ok)
}

func TestUnifiedFunction_ReturnTypesAreUnioned(t *testing.T) {
	long := sig(tString, param("a", tNumber), param("b", tNumber))
	short := sig(tNumber, param("b", tNumber))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.True(t, model.Equal(union(tString, tNumber), m.Return), "got %s", m.Return)
}

func TestUnifiedFunction_PromiseReturnIsNotUnwrapped(t *testing.T) {
	long := sig(tVoid, param("a", tNumber), param("callback", ref("Function")))
	short := sig(ref("Promise", tVoid), param("a", tNumber))

	m, ok := UnifiedFunction(fn(long, short))
	require.True(t, ok)
	assert.Equal(t, "void | Promise<void>", m.Return.String())
}

func TestUnifiedFunction_EqualLengthSignaturesMustBeIdentical(t *testing.T) {
	a := sig(tVoid, param("a", tString))
	b := sig(tVoid, optParam("a", tString))
	m, ok := UnifiedFunction(fn(a, b))
	require.True(t, ok)
	assert.Same(t, a, m.Signature, "first of equally long signatures is the template")
	assert.True(t, m.Parameters[0].Optional)

	c := sig(tVoid, param("a", tNumber))
	_, ok = UnifiedFunction(fn(a, c))
	assert.False(t, ok)
}

func TestUnifiedFunction_FunctionTypedVariable(t *testing.T) {
	s := sig(tBoolean, param("value", tString))
	d := &model.Declaration{Name: "isValid", Kind: model.ReflectionVariable, Type: &model.Function{Signature: s}}
	m, ok := UnifiedFunction(d)
	require.True(t, ok)
	assert.Same(t, s, m.Signature)
	assert.Equal(t, tBoolean, m.Return)
}

func TestUnifiedFunction_ArityEqualsLongestSignature(t *testing.T) {
	sigs := []*model.Signature{
		sig(tVoid, param("b", tString)),
		sig(tVoid, param("a", tNumber), param("b", tString), optParam("c", ref("Function"))),
		sig(tVoid, param("a", tNumber), param("b", tString)),
	}
	m, ok := UnifiedFunction(fn(sigs...))
	require.True(t, ok)
	assert.Len(t, m.Parameters, 3)
	assert.Equal(t, []paramShape{
		{Name: "a", Type: "number", Optional: true},
		{Name: "b", Type: "string"},
		{Name: "c", Type: "Function", Optional: true},
	}, shapes(m.Parameters))
}

func TestUnifiedFunction_AddingSubsetSignatureIsMonotonic(t *testing.T) {
	long := sig(tVoid, param("a", tNumber), param("b", tString), param("c", tBoolean))
	base, ok := UnifiedFunction(fn(long))
	require.True(t, ok)

	// A signature that aligns keeps the match and can only relax parameters.
	withSubset, ok := UnifiedFunction(fn(long, sig(tVoid, param("b", tString))))
	require.True(t, ok)
	require.Len(t, withSubset.Parameters, len(base.Parameters))
	for i := range base.Parameters {
		if base.Parameters[i].Optional {
			assert.True(t, withSubset.Parameters[i].Optional)
		}
	}
	assert.True(t, withSubset.Parameters[0].Optional)
	assert.False(t, withSubset.Parameters[1].Optional)
	assert.True(t, withSubset.Parameters[2].Optional)

	// A signature that cannot align turns the match off instead of being dropped.
	_, ok = UnifiedFunction(fn(long, sig(tVoid, param("c", tBoolean), param("a", tNumber))))
	assert.False(t, ok)
}

func TestUnifiedFunction_Idempotent(t *testing.T) {
	d := fn(
		sig(tVoid, param("a", tNumber), param("b", tString)),
		sig(tVoid, param("b", tString)),
	)
	first, ok1 := UnifiedFunction(d)
	second, ok2 := UnifiedFunction(d)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.False(t, d.Signatures[0].Parameters[0].Optional, "input must not be modified")
}
