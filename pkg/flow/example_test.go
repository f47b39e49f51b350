package flow_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/flowdiagram/pkg/flow"
)

func ExampleParse() {
	def := flow.Definition{
		flow.Node("Start"),
		flow.Fork(
			flow.Col(flow.Node("Branch A"), flow.Node("Process A")),
			flow.Col(flow.Node("Branch B"), flow.Node("Process B")),
		),
		flow.Node("Complete"),
	}

	p, err := flow.Parse(def)
	if err != nil {
		panic(err)
	}
	fmt.Println("prefix:", len(p.Prefix))
	fmt.Println("columns:", len(p.Fork))
	fmt.Println("suffix:", p.Suffix[0].ID)
	fmt.Println("rejoins:", p.HasSuffix)
	// Output:
	// prefix: 1
	// columns: 2
	// suffix: Complete
	// rejoins: true
}

func ExampleDecode() {
	def, err := flow.Decode([]any{
		map[string]any{"id": "start", "title": "Start Process"},
		[]any{[]any{"A"}, []any{"B"}},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(def[0].(flow.NodeRef).DisplayTitle())
	fmt.Println(len(def[1].(flow.ColumnsGroup)))
	// Output:
	// Start Process
	// 2
}

func ExampleParseRaw_error() {
	_, err := flow.ParseRaw([]any{"A", []any{[]any{"B"}}, []any{[]any{"C"}}})
	fmt.Println(errors.Is(err, flow.ErrMultipleForks))
	fmt.Println(err)
	// Output:
	// true
	// multiple fork definitions at [2]: [["C"]]
}
