// Package testutil provides shared test helpers for context-engine.
//
// It depends only on the standard library and testify so that any package,
// including config and state, can use it from its tests.
//
// # Fixtures
//
// fixtures.go holds sample project documents:
//
//   - SampleConfigYAML - a .context-engine.yaml declaring every section
//   - SampleWorkPlan - a task list with epics, tasks and subtasks in every status
//   - SampleRules, SampleIndex - small documents for read_to_text
//
// # Environment Helpers
//
// env.go builds throwaway projects:
//
//   - SetupProject(t, files) - temp project root populated with files
//   - SetupSampleProject(t) - SetupProject with every sample fixture
//   - WriteTestFile(t, root, path, content) / ReadTestFile(t, root, path)
//
// # Assertions
//
//   - AssertNoPlaceholders(t, text) - no {{ or }} left after rendering
//   - AssertLineContains(t, content, needle) - exactly one line has needle
//   - AssertLogLines(t, content, n) - the work log has n entries
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    root := testutil.SetupSampleProject(t)
//	    // ... run code against root ...
//	    testutil.AssertLineContains(t, testutil.ReadTestFile(t, root, "WORK_PLAN.md"), "[x] 2.1")
//	}
package testutil
