// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/ast"
	"github.com/creachadair/jval/ast/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

func mustParse(t *testing.T, text string) ast.Value {
	t.Helper()
	v, err := jval.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func TestCursor(t *testing.T) {
	v := mustParse(t, testJSON)
	list := v.(ast.Object).Find("list").Value.(ast.Array)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
		is   error // if non-nil, the error must match
	}{
		{"NilInput", nil, v, false, nil},
		{"NoMatch", []any{"nonesuch"}, v, true, ast.ErrKeyNotFound},
		{"WrongType", []any{11.5}, v, true, nil},
		{"ObjIndex", []any{1}, v.(ast.Object)[1].Value, false, nil},

		{"ArrayPos", []any{"list", 1}, list[1], false, nil},
		{"ArrayNeg", []any{"list", -1}, list[1], false, nil},
		{"ArrayNested", []any{"list", 0, "x"}, ast.Number(1), false, nil},
		{"ArrayRange", []any{"o", 25}, v.(ast.Object).Find("o").Value, true, nil},
		{"ArrayKey", []any{"o", "hi"}, v.(ast.Object).Find("o").Value, true, ast.ErrTypeMismatch},
		{"ScalarIndex", []any{"y", "hello", 0}, ast.String("there"), true, ast.ErrTypeMismatch},
		{"ObjPath", []any{"xyz", "d"}, ast.Bool(true), false, nil},

		{"FuncArray", []any{"o", testPathFunc}, ast.Number(2), false, nil},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Number(3), false, nil},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, ast.Bool(true), true, errNoLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if !tc.fail {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
				t.Logf("Got expected error: %v", err)
				if tc.is != nil && !errors.Is(err, tc.is) {
					t.Errorf("Down %+v: got error %v, want %v", tc.path, err, tc.is)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got nil, want error", tc.path)
			}
			got := c.Value()
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Down %+v: wrong result (-got, +want):\n%s", tc.path, diff)
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func TestCursorNavigation(t *testing.T) {
	v := mustParse(t, testJSON)
	c := cursor.New(v)
	if !c.AtOrigin() {
		t.Error("New cursor is not at its origin")
	}

	c.Down("list", 0, "x")
	if err := c.Err(); err != nil {
		t.Fatalf("Down: unexpected error: %v", err)
	}
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path: got %d values, want 4", got)
	}
	if c.AtOrigin() {
		t.Error("Cursor is at origin after Down")
	}

	// Moving up and down again continues from the intermediate value.
	c.Up().Up().Down(1, "x")
	if diff := cmp.Diff(c.Value(), ast.Value(ast.Number(2))); diff != "" {
		t.Errorf("Up/Down: (-got, +want):\n%s", diff)
	}

	c.Down("bogus")
	if c.Err() == nil {
		t.Error("Down bogus: got nil, want error")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: at origin %v, error %v", c.AtOrigin(), c.Err())
	}
	if c.Origin() == nil || c.Up() != c {
		t.Error("Origin or Up misbehaved at origin")
	}
}

func TestPath(t *testing.T) {
	v := mustParse(t, `{"result": {"access_token": "abc", "expires_in": 900}}`)

	tok, err := cursor.Path[ast.String](v, "result", "access_token")
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	}
	if tok != "abc" {
		t.Errorf("Path: got %q, want abc", tok)
	}

	if _, err := cursor.Path[ast.String](v, "result", "expires_in"); !errors.Is(err, ast.ErrTypeMismatch) {
		t.Errorf("Path wrong type: got %v, want %v", err, ast.ErrTypeMismatch)
	}
	if _, err := cursor.Path[ast.Number](v, "result", "refresh_token"); !errors.Is(err, ast.ErrKeyNotFound) {
		t.Errorf("Path missing key: got %v, want %v", err, ast.ErrKeyNotFound)
	}
}

var errNoLength = errors.New("not a thing with length")

func testPathFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return ast.ToValue(len(t)), nil
	case ast.Object:
		return ast.ToValue(len(t)), nil
	default:
		return nil, errNoLength
	}
}
