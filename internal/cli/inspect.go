package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/gambit/internal/presentation/graph"
	"github.com/aretw0/gambit/internal/presentation/tui"
	"github.com/aretw0/gambit/pkg/chart"
	"github.com/aretw0/gambit/pkg/game"
)

func compileChart(path string) (*chart.Compiled[game.Deps], error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}
	return chart.Compile(def)
}

// Graph writes the chart as a Mermaid state diagram.
func Graph(cfg Config, out io.Writer) error {
	c, err := compileChart(cfg.ChartPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, graph.GenerateMermaid(c, nil))
	return err
}

// Describe writes a markdown summary of the chart, styled when out is a terminal.
func Describe(cfg Config, out io.Writer) error {
	c, err := compileChart(cfg.ChartPath)
	if err != nil {
		return err
	}
	title := "chess"
	if cfg.ChartPath != "" {
		title = cfg.ChartPath
	}

	var render func(string) (string, error)
	if isTerminal(out) {
		render, err = tui.NewRenderer(terminalWidth(out))
	} else {
		render, err = tui.NewPlainRenderer()
	}
	if err != nil {
		return err
	}
	doc, err := render(tui.Describe(title, c))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, doc)
	return err
}

// Validate loads and compiles the chart, reporting every issue found.
func Validate(cfg Config, out io.Writer) error {
	c, err := compileChart(cfg.ChartPath)
	if err != nil {
		return err
	}
	printSystemMessage(out, "Chart is valid: %d states, initial '%s'.", len(c.StateNames()), c.Initial())
	return nil
}
