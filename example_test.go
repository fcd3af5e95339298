package gambit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/gambit"
	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/domain"
	"github.com/aretw0/gambit/pkg/sink"
)

// ExampleNew builds a small chart in Go and forwards its output commands to a sink.
func ExampleNew() {
	b := chart.New[struct{}]().
		Initial("idle").
		Events("ring").
		States(chart.Leaf("idle"), chart.Compound("busy", chart.Leaf("talking")))

	b.On("idle", "ring").Go("busy", nil)
	b.Init("busy").Go("talking", func(_ domain.ExtendedState, caller any, _ struct{}) (domain.ActionResult, error) {
		return domain.ActionResult{
			Updates: []domain.Patch{domain.Set("caller", caller)},
			Outputs: []domain.Command{{Kind: "greet", Params: caller}},
		}, nil
	})

	def, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	d := sink.NewDispatcher()
	d.Register("greet", func(_ context.Context, cmd domain.Command) error {
		fmt.Printf("hello, %v\n", cmd.Params)
		return nil
	})

	m, err := gambit.New(def, struct{}{}, gambit.WithCommandSink(d))
	if err != nil {
		log.Fatal(err)
	}

	step, err := m.Send(context.Background(), "ring", "ada")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(step.Entered)
	fmt.Println(m.Current(), m.Extended()["caller"])
	// Output:
	// hello, ada
	// [busy talking]
	// talking ada
}
