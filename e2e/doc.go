//go:build e2e

// Package e2e drives a headless Chrome against the signup application and
// asserts on the rendered page, its cookies and its console output.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests against the bundled application on a random port:
//
//	go test -tags=e2e ./e2e/...
//
// Running them against an application that is already up:
//
//	E2E_BASE_URL=http://localhost:3000/ go test -tags=e2e ./e2e/...
//
// Watching the browser (headful, devtools open, slowed down):
//
//	E2E_DEBUG=true go test -tags=e2e ./e2e/...
//
// The scenario runs once per device profile. Each profile launches its own
// browser and shares one page across its subtests, which therefore run in
// order and must not be filtered individually with -run.
package e2e
