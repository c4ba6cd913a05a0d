package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Chart size in pixels.
const (
	ChartWidth  = 1000
	ChartHeight = 600
)

// Histogram is the landing page: the live histogram of similarity scores.
type Histogram struct {
	app.Compo
	onUpdate func()
}

func (h *Histogram) OnAppUpdate(ctx app.Context) {
	klog.Infof("Histogram: App update available, reloading...")
	ctx.Reload()
}

func (h *Histogram) OnMount(ctx app.Context) {
	klog.V(1).Infof("Histogram: OnMount called")
	h.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	State.Listeners["histogram"] = h.onUpdate
}

func (h *Histogram) OnDismount() {
	delete(State.Listeners, "histogram")
}

func (h *Histogram) OnNav(ctx app.Context) {
	if app.IsServer {
		return
	}
	klog.V(1).Infof("Histogram: OnNav called, Path=%s", app.Window().URL().Path)
	if State.Conn != nil {
		return
	}
	if err := State.ConnectWS(); err != nil {
		State.Error = fmt.Sprintf("Failed to connect to server: %v", err)
		klog.Errorf("Histogram: Error connecting: %v", err)
	}
}

func (h *Histogram) onReconnect(ctx app.Context, e app.Event) {
	e.PreventDefault()
	if err := State.ConnectWS(); err != nil {
		State.Error = fmt.Sprintf("Failed to connect to server: %v", err)
		return
	}
	State.Error = ""
}

func (h *Histogram) Render() app.UI {
	paused := State.Latest != nil && State.Latest.Paused

	var content app.UI
	switch {
	case State.Error != "" && State.Conn == nil:
		content = app.Article().Body(
			app.P().Style("color", "red").Text(State.Error),
			app.A().Href("#").OnClick(h.onReconnect).Text("Reconnect"),
		)
	case State.Latest == nil:
		content = app.Div().Aria("busy", "true").Text("Connecting to shuffler...")
	default:
		snap := State.Latest.Snapshot
		var errorLine app.UI = app.Text("")
		if State.Error != "" {
			errorLine = app.P().Style("color", "red").Text(State.Error)
		}
		content = app.Article().Body(
			errorLine,
			app.Raw(RenderChart(snap, ChartWidth, ChartHeight)),
			app.Footer().Body(
				app.Small().Text(fmt.Sprintf(
					"Bar color: how often each score appeared in the last %d shuffles (orange: rarely, green: often).",
					snap.WindowSize)),
			),
		)
	}

	return app.Main().Class("container").Body(
		&Controls{Paused: paused},
		content,
	)
}
