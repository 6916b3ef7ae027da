// Package guard implements a render boundary.
//
// A Guard wraps any Viewer and calls its View under recover. When the wrapped
// view panics the Guard switches to StateFaulted, records a Fault, hands it
// to the configured Reporter and renders a fallback view instead. Retry puts
// the Guard back into StateStable so the next render tries the content again.
//
//	g := guard.New(content,
//		guard.WithName("episodes"),
//		guard.WithReporter(report.NewLog(logger)),
//	)
//	out := g.View()
//	if g.Faulted() {
//		g.Retry()
//	}
//
// Only panics raised by the content during View are intercepted. Panics in
// the fallback, in event handlers and in asynchronous work propagate.
package guard
