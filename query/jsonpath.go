// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package query

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/ast"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  step = "[" slice "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX
 value = filter
 slice = [INDEX] ":" [INDEX]
filter = "?(" "@." WORD [ CMP LITERAL ] ")"

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\.)*`
 INDEX = RE `-?\d+(,-?\d+)*`
   CMP = "==" | "!=" | "<" | "<=" | ">" | ">="

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// Compile parses a JSONPath expression and returns an equivalent query.
//
// An expression consisting only of member names and single array indices,
// such as $.result[0].name, compiles to the same query as Path and selects a
// single value; a missing key or index is an error. Any other expression
// compiles to a Nodes query, which returns an array of the values selected, in
// document order. Values that do not match a step are skipped, so the array
// may be empty.
//
// Script expressions "[(...)]" are not supported. Filter expressions support
// only tests for the presence of a member, "[?(@.name)]", and comparison of a
// member to a JSON literal, "[?(@.price < 10)]". Single-quoted string literals
// are also accepted in comparisons and names, with \' for a quotation mark.
func Compile(expr string) (Query, error) {
	t, ok := strings.CutPrefix(expr, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps []pathStep
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(expr)-len(t), err)
		}
		steps = append(steps, step)
		t = rest
	}

	keys := make([]any, 0, len(steps))
	var nq Nodes
	for _, s := range steps {
		if s.key != nil {
			keys = append(keys, s.key)
		}
		nq = append(nq, s.sel...)
	}
	if len(keys) == len(steps) {
		return Path(keys...), nil
	}
	return nq, nil
}

// MustCompile is as Compile, but panics if expr is not a valid expression.
func MustCompile(expr string) Query {
	q, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("compile %q: %v", expr, err))
	}
	return q
}

// A pathStep is a single step of a parsed path expression.
type pathStep struct {
	key any     // for a member name or single index, the Path key
	sel []Query // the Nodes steps selecting the values reached by the step
}

func memberStep(name string) pathStep {
	return pathStep{key: name, sel: []Query{Array{objKey(name)}}}
}

func parseStep(s string) (_ pathStep, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		step, u, err := parseName(t)
		if err != nil {
			return pathStep{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return pathStep{sel: append([]Query{Recur()}, step.sel...)}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		step, u, err := parseName(t)
		if err != nil {
			return pathStep{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return step, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseValue(t)
		if err != nil {
			return pathStep{}, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return pathStep{}, u, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return pathStep{}, s, errors.New("invalid path step")
}

func parseName(s string) (_ pathStep, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return pathStep{sel: []Query{Glob()}}, t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return memberStep(m[1]), s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return memberStep(unquoteSingle(m[1])), s[len(m[0]):], nil
	}
	return pathStep{}, s, errors.New("invalid name")
}

func parseIndex(s string) (_ []int, rest string, _ error) {
	m := indexRE.FindStringSubmatch(s)
	if m == nil {
		return nil, s, errors.New("invalid index")
	}
	var out []int
	for _, f := range strings.Split(m[1], ",") {
		z, err := strconv.Atoi(f)
		if err != nil {
			return nil, s, fmt.Errorf("invalid index %q", f)
		}
		out = append(out, z)
	}
	return out, s[len(m[0]):], nil
}

func parseValue(s string) (_ pathStep, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "?("); ok {
		text, rest, err := parseScript(t)
		if err != nil {
			return pathStep{}, s, err
		}
		q, err := parseFilter(text)
		if err != nil {
			return pathStep{}, s, err
		}
		return pathStep{sel: []Query{q}}, rest, nil
	}
	if strings.HasPrefix(s, "(") {
		return pathStep{}, s, errors.New("script expressions are not supported")
	}
	if idx, rest, err := parseIndex(s); err == nil {
		if u, ok := strings.CutPrefix(rest, ":"); ok {
			if len(idx) != 1 {
				return pathStep{}, s, errors.New("invalid slice")
			}
			return parseSliceEnd(idx[0], u)
		}
		step := pathStep{sel: []Query{Pick(idx...)}}
		if len(idx) == 1 {
			step.key = idx[0]
		}
		return step, rest, nil
	}
	if u, ok := strings.CutPrefix(s, ":"); ok {
		return parseSliceEnd(0, u)
	}
	if step, rest, err := parseName(s); err == nil {
		return step, rest, nil
	}
	return pathStep{}, s, fmt.Errorf("invalid value: %q", s)
}

// parseSliceEnd parses the optional upper bound of a slice whose lower bound
// is lo. An omitted bound selects through the end of the array.
func parseSliceEnd(lo int, s string) (_ pathStep, rest string, _ error) {
	idx, rest, err := parseIndex(s)
	if err != nil {
		return pathStep{sel: []Query{Slice(lo, 0)}}, s, nil
	} else if len(idx) != 1 {
		return pathStep{}, s, errors.New("invalid slice")
	}
	if idx[0] == 0 {
		// Slice treats an upper bound of 0 as the length; [lo:0] is empty.
		return pathStep{sel: []Query{Value(ast.Array{})}}, rest, nil
	}
	return pathStep{sel: []Query{Slice(lo, idx[0])}}, rest, nil
}

// parseScript returns the text up to the parenthesis closing an expression
// whose open parenthesis has already been consumed. Parentheses inside quoted
// strings are not counted.
func parseScript(s string) (text, rest string, _ error) {
	np := 1
	var quote byte // the open quotation mark, if any
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			np++
		case c == ')':
			np--
			if np == 0 {
				return s[:i], s[i+1:], nil
			}
		}
	}
	return "", s, errors.New("unbalanced parentheses")
}

// parseFilter compiles a filter expression to a query selecting the matching
// elements of an array, or member values of an object.
func parseFilter(text string) (Query, error) {
	m := filterRE.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("unsupported filter %q", text)
	}
	key, op := m[1], m[2]
	if op == "" {
		return Seq{Glob(), Exists(key)}, nil
	}
	lit := m[3]
	if len(lit) >= 2 && lit[0] == '\'' && lit[len(lit)-1] == '\'' {
		lit = jval.Quote(unquoteSingle(lit[1 : len(lit)-1]))
	}
	want, err := jval.Parse(lit)
	if err != nil {
		return nil, fmt.Errorf("invalid filter literal %q: %w", m[3], err)
	}
	return Seq{Glob(), Selection(func(v ast.Value) bool {
		got, err := ast.Get(v, key)
		return err == nil && compare(got, op, want)
	})}, nil
}

// compare reports whether a op b holds. Numbers and strings are ordered;
// other values support only equality.
func compare(a ast.Value, op string, b ast.Value) bool {
	switch op {
	case "==":
		return ast.Equal(a, b)
	case "!=":
		return !ast.Equal(a, b)
	}
	var c int
	switch x := a.(type) {
	case ast.Number:
		y, ok := b.(ast.Number)
		if !ok {
			return false
		}
		c = cmp.Compare(x, y)
	case ast.String:
		y, ok := b.(ast.String)
		if !ok {
			return false
		}
		c = cmp.Compare(x, y)
	default:
		return false
	}
	switch op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}

var unquoter = strings.NewReplacer(`\'`, `'`, `\\`, `\`)

// unquoteSingle decodes the text of a single-quoted string.
func unquoteSingle(s string) string { return unquoter.Replace(s) }

var (
	wordRE   = regexp.MustCompile(`^(\w+)`)
	indexRE  = regexp.MustCompile(`^(-?\d+(?:,-?\d+)*)`)
	quoteRE  = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)
	filterRE = regexp.MustCompile(`^\s*@\.(\w+)\s*(?:(==|!=|<=|>=|<|>)\s*(.+?))?\s*$`)
)
