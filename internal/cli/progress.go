package cli

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/orchestrator"
)

// progressReporter renders orchestrator events. Extraction progress drives
// a progress bar; other phases are logged.
type progressReporter struct {
	out     io.Writer
	showBar bool
	bar     *pterm.ProgressbarPrinter
}

func newProgressReporter(out io.Writer, showBar bool) *progressReporter {
	return &progressReporter{out: out, showBar: showBar}
}

// OnEvent is the orchestrator.Hooks callback.
func (r *progressReporter) OnEvent(e orchestrator.Event) {
	switch {
	case e.Phase == orchestrator.PhaseExtracting && e.Total > 0:
		r.progress(e)
	case e.Phase == orchestrator.PhaseDone, e.Phase == orchestrator.PhaseAborted, e.Phase == orchestrator.PhaseError:
		r.stop()
		logger.Debug("Install "+e.Phase, logger.Fields{"title_id": e.ID, "message": e.Msg})
	default:
		logger.Debug("Install phase", logger.Fields{"phase": e.Phase, "title_id": e.ID, "message": e.Msg})
	}
}

func (r *progressReporter) progress(e orchestrator.Event) {
	if !r.showBar {
		logger.Debug("Extracted file", logger.Fields{"title_id": e.ID, "done": e.Done, "total": e.Total})
		return
	}
	if r.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(e.Total).
			WithTitle("Extracting " + e.ID).
			WithWriter(r.out).
			Start()
		if err != nil {
			logger.Warn("Failed to start progress bar", logger.Fields{"error": err.Error()})
			r.showBar = false
			return
		}
		r.bar = bar
	}
	if delta := e.Done - r.bar.Current; delta > 0 {
		r.bar.Add(delta)
	}
}

func (r *progressReporter) stop() {
	if r.bar == nil {
		return
	}
	_, _ = r.bar.Stop()
	r.bar = nil
}
