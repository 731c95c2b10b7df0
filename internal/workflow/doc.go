// Package workflow contains the deterministic orchestration layer for the
// user-management operations. Each workflow sequences data-access
// activities and terminates in exactly one structured result.
//
// Workflow code here must stay replay-deterministic: no I/O, no
// wall-clock reads, no randomness, no process configuration. Activities
// are reached only through workflow.ExecuteActivity so the engine records
// and replays every call, and logging goes through workflow.GetLogger,
// which the engine suppresses during replay. The activity timeout and
// retry policy arrive inside each request, resolved once by the dispatch
// layer at submission time.
//
// Failure handling follows one rule: business conditions (duplicate,
// not-found, invalid input) are return values, infrastructure failures
// are errors. The only error a workflow catches is the uniqueness
// violation on create, which it reclassifies into the same 409 outcome
// the duplicate pre-check produces; everything else propagates so the
// engine's retry machinery governs it.
package workflow
