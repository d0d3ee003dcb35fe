// Package analysis provides post-run tools for particle field runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a per-frame series
//     such as kinetic energy
//   - [TraceRecorder]: follows one particle slot across frames
//   - [TraceToASCII]: plots a recorded trace inside the viewport
//
// # Example
//
//	rec := analysis.NewTraceRecorder(0)
//	s.AddObserver(rec)
//	// ... step the simulation ...
//	fmt.Print(analysis.TraceToASCII(rec.Trace(), 70, 20))
package analysis
