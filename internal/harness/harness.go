package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/gradebook/internal/record"
	"github.com/roach88/gradebook/internal/store"
)

// DataFileName is the record file name inside a scenario's scratch directory.
const DataFileName = "students.txt"

// Harness executes one scenario against a store backed by a scratch file.
type Harness struct {
	store  *store.Store
	dir    string
	path   string
	logger *zap.Logger
}

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger routes harness and store debug logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh temporary directory that is removed
// afterwards. The returned error covers harness failures (bad arguments,
// failed setup); expectation and assertion failures are reported in
// Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	dir, err := os.MkdirTemp("", "gradebook-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	h := &Harness{
		dir:    dir,
		path:   filepath.Join(dir, DataFileName),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	result := NewResult()

	if err := h.seed(scenario, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeFlow(scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	for _, rec := range h.store.Records() {
		result.Records = append(result.Records, recordMap(rec))
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// seed builds the initial store from the scenario data and setup records.
func (h *Harness) seed(scenario *Scenario, result *Result) error {
	if len(scenario.Data) > 0 {
		content := strings.Join(scenario.Data, "\n") + "\n"
		if err := os.WriteFile(h.path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write initial data: %w", err)
		}
	}

	st, warnings := store.Load(h.path, store.WithLogger(h.logger))
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, w.String())
	}
	h.store = st

	for i, rec := range scenario.Setup {
		if _, err := h.store.Add(rec.ID, rec.Name, rec.Subject, rec.Score); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}
	return nil
}

// executeFlow runs the flow steps in order, recording one trace event each
// and checking expect clauses as it goes.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) error {
	for i, step := range flow {
		outcome, stepResult, err := h.execute(step)
		if err != nil {
			return fmt.Errorf("flow step %d (%s): %w", i, step.Op, err)
		}

		result.AddTrace(step.Op, step.Args, outcome, stepResult)

		h.logger.Debug("flow step completed",
			zap.Int("step", i),
			zap.String("op", step.Op),
			zap.String("outcome", outcome),
		)

		if step.Expect == nil {
			continue
		}
		if outcome != step.Expect.Outcome {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected outcome %q, got %q",
				i, step.Op, step.Expect.Outcome, outcome))
			continue
		}
		if !matchArgs(stepResult, step.Expect.Result) {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected result %v, got %v",
				i, step.Op, step.Expect.Result, stepResult))
		}
	}
	return nil
}

// execute performs a single store operation. Store errors become outcomes;
// only malformed steps return an error.
func (h *Harness) execute(step FlowStep) (string, map[string]any, error) {
	args := step.Args

	switch step.Op {
	case OpAdd:
		rec, err := h.store.Add(argString(args, "id"), argString(args, "name"),
			argString(args, "subject"), argString(args, "score"))
		if err != nil {
			return outcomeOf(err), nil, nil
		}
		return OutcomeOK, recordMap(rec), nil

	case OpModify:
		rec, err := h.store.ModifyScore(argString(args, "id"), argString(args, "score"))
		if err != nil {
			return outcomeOf(err), nil, nil
		}
		return OutcomeOK, recordMap(rec), nil

	case OpDelete:
		confirmed := true
		if _, ok := args["confirmed"]; ok {
			confirmed = argBool(args, "confirmed")
		}
		res, err := h.store.Delete(argString(args, "id"), confirmed)
		if err != nil {
			return outcomeOf(err), nil, nil
		}
		if res.Cancelled {
			return OutcomeCancelled, nil, nil
		}
		return OutcomeOK, recordMap(res.Record), nil

	case OpFind:
		rec, ok := h.store.FindByID(argString(args, "id"))
		if !ok {
			return string(store.ErrCodeNotFound), nil, nil
		}
		return OutcomeOK, recordMap(rec), nil

	case OpSearch:
		matches := h.store.Search(argString(args, "keyword"))
		return OutcomeOK, map[string]any{
			"count": len(matches),
			"ids":   recordIDs(matches),
		}, nil

	case OpSort:
		h.store.Sort(argBool(args, "descending"))
		return OutcomeOK, map[string]any{"ids": recordIDs(h.store.Records())}, nil

	case OpStats:
		stats, err := h.store.Statistics()
		if err != nil {
			return outcomeOf(err), nil, nil
		}
		return OutcomeOK, map[string]any{
			"count":   stats.Count,
			"average": stats.Average,
			"max":     stats.Max,
			"min":     stats.Min,
		}, nil

	case OpSave:
		if err := h.store.Save(h.path); err != nil {
			return outcomeOf(err), nil, nil
		}
		return OutcomeOK, map[string]any{"count": h.store.Len()}, nil

	case OpReload:
		st, warnings := store.Load(h.path, store.WithLogger(h.logger))
		h.store = st
		return OutcomeOK, map[string]any{
			"count":    st.Len(),
			"warnings": len(warnings),
		}, nil

	case OpExport:
		name := argString(args, "path")
		if name == "" {
			name = "report.txt"
		}
		if !filepath.IsLocal(name) {
			return "", nil, fmt.Errorf("export path %q must be relative to the scenario directory", name)
		}
		if err := h.store.Export(filepath.Join(h.dir, name)); err != nil {
			return outcomeOf(err), nil, nil
		}
		return OutcomeOK, map[string]any{"count": h.store.Len()}, nil
	}

	return "", nil, fmt.Errorf("unknown op %q", step.Op)
}

// outcomeOf maps a store error to a trace outcome.
func outcomeOf(err error) string {
	if errors.Is(err, store.ErrNoData) {
		return OutcomeNoData
	}
	var se *store.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return err.Error()
}

func recordMap(r record.Record) map[string]any {
	return map[string]any{
		"id":      r.ID,
		"name":    r.Name,
		"subject": r.Subject,
		"score":   r.Score,
	}
}

func recordIDs(records []record.Record) []any {
	ids := make([]any, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// argString reads a scalar argument as text. YAML numbers keep their
// natural rendering so `score: 92.5` reaches the store as "92.5".
func argString(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func argBool(args map[string]any, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "yes" || v == "y"
	}
	return false
}
