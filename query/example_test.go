package query_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jval"
	"github.com/creachadair/jval/ast"
	"github.com/creachadair/jval/query"
)

func mustParseOne(s string) ast.Value {
	v, err := jval.Parse(s)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	return v
}

func Example_small() {
	root := mustParseOne(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	v, err := query.Eval(root, query.Path(1, "c", "d"))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// true
}

func Example_medium() {
	root := mustParseOne(`
{
  "plaintiff": "Inigo Montoya",
  "complaint": {
     "defendant": "you",
     "action": "killed",
     "target": "Individual 1"
  },
  "requestedRelief": ["die", "pay punitive damages", "pay attorney fees"],
  "relatedPersons": {
    "Individual 1": {"id": "father", "rel": "plaintiff"}
  }
}`)

	v, err := query.Eval(root, query.Object{
		"name": query.Path("plaintiff"),
		"act": query.Array{
			query.Path("complaint", "defendant"),
			query.Path("complaint", "action"),
			query.String("my"),
			query.Path("relatedPersons", "Individual 1", "id"),
		},
		"req": query.Path("requestedRelief", 0),
	})
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	obj := v.(ast.Object)
	fmt.Printf("Hello, my name is: %s\n", obj.Find("name").Value)
	fmt.Println(obj.Find("act").Value.JSON())
	fmt.Printf("Prepare to %s", obj.Find("req").Value)
	// Output:
	// Hello, my name is: Inigo Montoya
	// ["you","killed","my","father"]
	// Prepare to die
}

func Example_instruments() {
	root := mustParseOne(`{
  "jsonrpc": "2.0",
  "result": [
    {"instrument_name": "BTC-PERPETUAL", "kind": "future", "is_active": true},
    {"instrument_name": "BTC-27DEC24-60000-C", "kind": "option", "is_active": true},
    {"instrument_name": "BTC-29NOV24", "kind": "future", "is_active": false}
  ]
}`)

	isFuture := query.Filter(func(o ast.Object) bool {
		k, _ := o.Get("kind")
		return k == ast.String("future")
	})
	names, err := query.EvalAs[ast.Array](root, query.Path(
		"result", isFuture, query.Each("instrument_name"),
	))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	// Output:
	// BTC-PERPETUAL
	// BTC-29NOV24
}
