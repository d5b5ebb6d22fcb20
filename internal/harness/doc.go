// Package harness runs the conformance corpus: YAML scenario files that
// pair a query with either an expected translation error code or a golden
// rule document.
//
// Scenarios live in testdata/scenarios/*.yaml and golden documents in
// testdata/golden/*.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The corpus is the executable form of the translator's contract:
// determinism, identifier consistency, the safety invariant, blank-node
// rejection, and order preservation all have scenarios here.
package harness
