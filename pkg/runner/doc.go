/*
Package runner plays chess games: it wires the chart machine, the rules engine,
the event queue fed by the rendered board and the command handlers into one Game.

# Usage

	g, err := runner.New(
		runner.WithRenderer(board.Render),
		runner.WithStore(store),
		runner.WithSessionID("table-1"),
	)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := g.Start(ctx); err != nil {
		log.Fatal(err)
	}
	g.Click(ctx, "e2")
	g.Click(ctx, "e4")

Replay feeds a script of squares or moves ("e2e4") into a Game.
*/
package runner
