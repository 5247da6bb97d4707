// Package service hosts one keyed store per pipeline stage and the listeners that
// chain them: each listener transforms an update and publishes it into the next store.
package service

import "log/slog"

// Recorder is the subset of the pipeline metrics the services report to.
type Recorder interface {
	RecordError()
	RecordExecution()
	RecordQuote()
	RecordTradeBooked()
	RecordInquiryQuoted()
	RecordGUIUpdate()
}

type nopRecorder struct{}

func (nopRecorder) RecordError()         {}
func (nopRecorder) RecordExecution()     {}
func (nopRecorder) RecordQuote()         {}
func (nopRecorder) RecordTradeBooked()   {}
func (nopRecorder) RecordInquiryQuoted() {}
func (nopRecorder) RecordGUIUpdate()     {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// listenerError logs a failure inside a listener. Listeners cannot hand errors back to
// the publisher, so this is where they end.
func listenerError(m Recorder, stage string, err error, attrs ...any) {
	m.RecordError()
	slog.Error("Listener failed", append([]any{slog.String("stage", stage), slog.Any("error", err)}, attrs...)...)
}
