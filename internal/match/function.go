package match

import "github.com/olehluchkiv/typeshapes/internal/model"

// UnifiedParameter is one parameter of a unified signature. Source is the
// parameter of the template signature it was taken from.
type UnifiedParameter struct {
	Name     string
	Type     model.Type
	Optional bool
	Source   *model.Parameter
}

// FunctionMatch is a single signature synthesized from all signatures of a
// callable declaration.
type FunctionMatch struct {
	Return     model.Type
	Parameters []UnifiedParameter
	Signature  *model.Signature
}

// UnifiedFunction finds a single function definition covering every signature
// of d. This deals with APIs that document middle-optional arguments as
// separate overloads. For the two signatures
//
//	func(number, string, string?)
//	func(string, string?)
//
// it returns three parameters: [number?, string, string?].
//
// Signatures whose parameter types cannot be lined up with the longest
// signature make the whole declaration fail to match. Return types are
// unioned as they are; a Promise<T> return is not unwrapped.
func UnifiedFunction(d *model.Declaration) (FunctionMatch, bool) {
	if d == nil {
		return FunctionMatch{}, false
	}
	sigs := signatures(d)
	if len(sigs) == 0 {
		return FunctionMatch{}, false
	}

	template := sigs[0]
	for _, s := range sigs[1:] {
		if len(s.Parameters) > len(template.Parameters) {
			template = s
		}
	}

	params := make([]UnifiedParameter, len(template.Parameters))
	for i, p := range template.Parameters {
		params[i] = UnifiedParameter{Name: p.Name, Type: p.Type, Optional: p.Optional, Source: p}
	}

	returns := make([]model.Type, 0, len(sigs))
	for _, s := range sigs {
		returns = append(returns, s.Return)
		if s == template {
			continue
		}
		positions, ok := align(s.Parameters, template.Parameters)
		if !ok {
			return FunctionMatch{}, false
		}
		used := make([]bool, len(params))
		for i, j := range positions {
			used[j] = true
			if s.Parameters[i].Optional {
				params[j].Optional = true
			}
		}
		for j, u := range used {
			if !u {
				params[j].Optional = true
			}
		}
	}

	return FunctionMatch{
		Return:     model.UnionOf(returns...),
		Parameters: params,
		Signature:  template,
	}, true
}

func signatures(d *model.Declaration) []*model.Signature {
	if len(d.Signatures) > 0 {
		return d.Signatures
	}
	if fn, ok := d.Type.(*model.Function); ok && fn.Signature != nil {
		return []*model.Signature{fn.Signature}
	}
	return nil
}

// align maps every parameter of short onto a distinct parameter of long,
// keeping order, such that each pair has the same type. Of all such mappings
// it picks the one agreeing on the most parameter names, then the leftmost.
// The result holds, for each index of short, the matched index of long.
func align(short, long []*model.Parameter) ([]int, bool) {
	m, n := len(short), len(long)
	if m > n {
		return nil, false
	}

	// score[i][j] is the best name agreement for aligning short[i:] into
	// long[j:], or -1 when no alignment exists.
	score := make([][]int, m+1)
	for i := range score {
		score[i] = make([]int, n+1)
	}
	for j := 0; j <= n; j++ {
		score[m][j] = 0
	}
	for i := m - 1; i >= 0; i-- {
		score[i][n] = -1
		for j := n - 1; j >= 0; j-- {
			best := score[i][j+1]
			if compatible(short[i], long[j]) && score[i+1][j+1] >= 0 {
				if s := score[i+1][j+1] + nameBonus(short[i], long[j]); s > best {
					best = s
				}
			}
			score[i][j] = best
		}
	}
	if score[0][0] < 0 {
		return nil, false
	}

	positions := make([]int, 0, m)
	i, j := 0, 0
	for i < m {
		if compatible(short[i], long[j]) && score[i+1][j+1] >= 0 &&
			score[i+1][j+1]+nameBonus(short[i], long[j]) == score[i][j] {
			positions = append(positions, j)
			i++
		}
		j++
	}
	return positions, true
}

func compatible(a, b *model.Parameter) bool {
	return a.Rest == b.Rest && model.Equal(a.Type, b.Type)
}

func nameBonus(a, b *model.Parameter) int {
	if a.Name != "" && a.Name == b.Name {
		return 1
	}
	return 0
}
