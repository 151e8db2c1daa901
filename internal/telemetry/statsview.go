package telemetry

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// StatsView serves runtime charts (goroutines, heap, GC) over HTTP.
type StatsView struct {
	mgr *statsview.ViewManager
}

// StartStatsView starts the viewer on addr in the background.
func StartStatsView(addr string) *StatsView {
	// set configurations before calling statsview.New()
	viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

	sv := &StatsView{mgr: statsview.New()}
	go func() {
		defer Recover("statsview")
		sv.mgr.Start()
	}()
	return sv
}

// Stop shuts the viewer down.
func (sv *StatsView) Stop() {
	if sv != nil && sv.mgr != nil {
		sv.mgr.Stop()
	}
}
