package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func loadFixture(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRun_Fixtures(t *testing.T) {
	for _, name := range []string{"crud_roundtrip", "sort_stability", "statistics", "malformed_data"} {
		t.Run(name, func(t *testing.T) {
			result, err := Run(loadFixture(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(loadFixture(t, name).Flow))
		})
	}
}

func TestRun_MalformedDataWarnings(t *testing.T) {
	result, err := Run(loadFixture(t, "malformed_data"))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "line 2")
	assert.Contains(t, result.Warnings[1], "line 3")
}

func TestRun_SequenceNumbers(t *testing.T) {
	result, err := Run(loadFixture(t, "crud_roundtrip"))
	require.NoError(t, err)

	for i, event := range result.Trace {
		assert.Equal(t, i+1, event.Seq)
	}
}

func TestRun_ExpectMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "expected outcome differs",
		Setup:       []SetupRecord{{ID: "S001", Name: "Alice", Subject: "Math", Score: "85"}},
		Flow: []FlowStep{
			{Op: OpAdd, Args: map[string]any{"id": "S001", "name": "X", "subject": "Y", "score": 1}, Expect: &ExpectClause{Outcome: OutcomeOK}},
			{Op: OpFind, Args: map[string]any{"id": "S001"}, Expect: &ExpectClause{Outcome: OutcomeOK, Result: map[string]any{"score": 99}}},
		},
		Assertions: []Assertion{{Type: AssertTraceCount, Op: OpAdd, Count: 1}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `expected outcome "ok", got "DUPLICATE_ID"`)
	assert.Contains(t, result.Errors[1], "expected result")
}

func TestRun_FailedAssertion(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_order",
		Description: "record order assertion fails",
		Setup: []SetupRecord{
			{ID: "A", Name: "Ann", Subject: "Math", Score: "10"},
			{ID: "B", Name: "Ben", Subject: "Math", Score: "20"},
		},
		Flow:       []FlowStep{{Op: OpSort, Args: map[string]any{"descending": true}}},
		Assertions: []Assertion{{Type: AssertRecordOrder, IDs: []string{"A", "B"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "record_order")
}

func TestRun_SetupFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_setup",
		Description: "setup score does not parse",
		Setup:       []SetupRecord{{ID: "S001", Name: "Alice", Subject: "Math", Score: "high"}},
		Flow:        []FlowStep{{Op: OpStats}},
		Assertions:  []Assertion{{Type: AssertTraceCount, Op: OpStats, Count: 1}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup[0]")
}

func TestRun_ExportPathOutsideScratchDir(t *testing.T) {
	scenario := &Scenario{
		Name:        "escape",
		Description: "export outside the scratch directory",
		Flow:        []FlowStep{{Op: OpExport, Args: map[string]any{"path": "../report.txt"}}},
		Assertions:  []Assertion{{Type: AssertTraceCount, Op: OpExport, Count: 1}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be relative")
}

func TestRun_DeleteCancelledKeepsRecord(t *testing.T) {
	scenario := &Scenario{
		Name:        "cancel",
		Description: "unconfirmed delete",
		Setup:       []SetupRecord{{ID: "S001", Name: "Alice", Subject: "Math", Score: "85"}},
		Flow: []FlowStep{
			{Op: OpDelete, Args: map[string]any{"id": "S001", "confirmed": "n"}, Expect: &ExpectClause{Outcome: OutcomeCancelled}},
		},
		Assertions: []Assertion{{Type: AssertFinalState, ID: "S001", Expect: map[string]any{"name": "Alice"}}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_WithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, err := Run(loadFixture(t, "statistics"), WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Equal(t, 4, logs.FilterMessage("flow step completed").Len())
}

func TestArgString(t *testing.T) {
	args := map[string]any{"s": "text", "i": 85, "f": 92.5, "nil": nil}

	assert.Equal(t, "text", argString(args, "s"))
	assert.Equal(t, "85", argString(args, "i"))
	assert.Equal(t, "92.5", argString(args, "f"))
	assert.Equal(t, "", argString(args, "nil"))
	assert.Equal(t, "", argString(args, "missing"))
}
