package testutil

// SampleConfigYAML declares every section with non-default values.
const SampleConfigYAML = `commands:
  check: go vet ./...
  test: go test ./...
  build: go build ./...
docs:
  rules: docs/RULES.md
delegation:
  timeout: 120
`

// SampleRules is the rules document referenced by SampleConfigYAML.
const SampleRules = `# Rules

- Keep functions small.
- Every change ships with tests.
`

// SampleIndex is a minimal codebase index.
const SampleIndex = `# Index

- cmd/app: entry point
- internal/widget: widget implementation
`

// SampleWorkPlan covers list items, table rows, nesting and every marker.
const SampleWorkPlan = `# Work Plan

## Epic 1: Foundations

- [x] 1.1 Create repository layout
- [x] 1.2 Add CI pipeline

## Epic 2: Widgets

- [/] 2.1 Add widget
  - [x] 2.1.1 Widget model
  - [ ] 2.1.2 Widget storage
- [ ] 2.2 Widget API
- [ ] 2.10 Widget docs

## Epic 3: Reports

| Status | Task | Notes |
|---|---|---|
| [ ] 3.1 | Report query | needs 2.2 |
| [ ] 3.2 | Report export | |
`

// SampleWorkLog is an existing work log with two entries.
const SampleWorkLog = "# Work Log\n" +
	"**[2026-01-05 09:00]** 🚀 `2.1` (started): begin widget\n" +
	"**[2026-01-05 11:30]** 🔨 `2.1` (implementing): model done\n"
