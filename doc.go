// Package docastest turns tests into documentation by approving rendered
// documents against hand-maintained baselines.
//
// Each case renders to "= {Title}\n\n{body}" and is compared with
// {docsRoot}/{test id path}_approved.{ext}. When they differ the current
// document is stored next to it as _received.{ext} and the case fails with
// the first divergent line:
//
//	func TestBasicUsage(t *testing.T) {
//		docastest.Run(t, "", func(doc *docastest.Case) {
//			doc.Write("Call `Add(1, 2)`:\n")
//			doc.Writef("result: %d\n", Add(1, 2))
//		})
//	}
//
// Reviewing a failure means inspecting the received file and, when correct,
// renaming it to the approved one (see cmd/docastest accept).
//
// Cases with the same identifier must not run concurrently; no locking is done.
package docastest
