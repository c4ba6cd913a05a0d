package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Controls is the top bar, with the start/stop toggle.
type Controls struct {
	app.Compo
	Paused bool
}

func (c *Controls) onToggle(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendToggle()
}

// ToggleLabel returns the label of the toggle button.
func ToggleLabel(paused bool) string {
	if paused {
		return "Start Shuffling"
	}
	return "Stop Shuffling"
}

func (c *Controls) Render() app.UI {
	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(app.Strong().Text("GoShuffle")),
		),
		app.Ul().Body(
			app.Li().Body(
				app.Button().
					Class("toggle").
					Disabled(State.Conn == nil).
					OnClick(c.onToggle).
					Text(ToggleLabel(c.Paused)),
			),
		),
	)
}
