package exec

import (
	"context"
	"io"
	"sync"
	"time"
)

// MockExecutor is a test implementation of Executor that records calls
// and returns pre-configured responses. It is safe for concurrent use.
type MockExecutor struct {
	mu            sync.Mutex
	responses     map[string]*Result
	queue         []*Result
	calls         []MockCall
	defaultResult *Result
}

// MockCall records a call to the mock executor.
type MockCall struct {
	Command  string   // The command that was called
	Args     []string // The arguments passed
	Streamed bool     // Whether Stream was used
}

// NewMockExecutor creates a new mock executor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		responses: make(map[string]*Result),
	}
}

// SetResponse sets a canned response for a specific command name.
func (m *MockExecutor) SetResponse(cmd string, result *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[cmd] = result
}

// SetDefaultResponse sets the response for commands without a specific one.
func (m *MockExecutor) SetDefaultResponse(result *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResult = result
}

// Enqueue appends a result to the response queue. Queued results are consumed
// in order before per-command responses are consulted, which allows tests to
// script a sequence of calls to the same command.
func (m *MockExecutor) Enqueue(results ...*Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, results...)
}

// Calls returns a copy of all recorded calls made to the mock.
func (m *MockExecutor) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall{}, m.calls...)
}

// CallCount returns the number of calls made to the mock.
func (m *MockExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent call, or an empty MockCall if none.
func (m *MockExecutor) LastCall() MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return MockCall{}
	}
	return m.calls[len(m.calls)-1]
}

// Reset clears all recorded calls and queued results but keeps responses.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.queue = nil
}

// Execute implements Executor.
func (m *MockExecutor) Execute(ctx context.Context, cmd string, args ...string) *Result {
	return m.record(cmd, args, false)
}

// Stream implements Executor. Canned stdout/stderr are written to the
// provided writers to mimic streaming.
func (m *MockExecutor) Stream(ctx context.Context, stdout, stderr io.Writer, cmd string, args ...string) *Result {
	result := m.record(cmd, args, true)
	if stdout != nil && result.Stdout != nil {
		stdout.Write(result.Stdout)
	}
	if stderr != nil && result.Stderr != nil {
		stderr.Write(result.Stderr)
	}
	return result
}

func (m *MockExecutor) record(cmd string, args []string, streamed bool) *Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{
		Command:  cmd,
		Args:     args,
		Streamed: streamed,
	})

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return withCallInfo(next, cmd, args)
	}

	if result, ok := m.responses[cmd]; ok {
		return withCallInfo(result, cmd, args)
	}

	if m.defaultResult != nil {
		return withCallInfo(m.defaultResult, cmd, args)
	}

	// Default: a successful empty result.
	now := time.Now()
	return &Result{
		Command:   cmd,
		Args:      args,
		ExitCode:  0,
		StartTime: now,
		EndTime:   now,
	}
}

// withCallInfo returns a copy of the canned result with command info filled in.
func withCallInfo(r *Result, cmd string, args []string) *Result {
	return &Result{
		Command:   cmd,
		Args:      args,
		Stdout:    r.Stdout,
		Stderr:    r.Stderr,
		ExitCode:  r.ExitCode,
		Duration:  r.Duration,
		Error:     r.Error,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// SuccessResult creates a successful result with the given stdout.
func SuccessResult(stdout string) *Result {
	now := time.Now()
	return &Result{
		ExitCode:  0,
		Stdout:    []byte(stdout),
		StartTime: now,
		EndTime:   now,
	}
}

// FailureResult creates a failed result with the given exit code and stderr.
func FailureResult(exitCode int, stderr string) *Result {
	now := time.Now()
	return &Result{
		ExitCode:  exitCode,
		Stderr:    []byte(stderr),
		StartTime: now,
		EndTime:   now,
	}
}

// ErrorResult creates a result with an execution error (spawn failure).
func ErrorResult(err error) *Result {
	now := time.Now()
	return &Result{
		ExitCode:  -1,
		Error:     err,
		StartTime: now,
		EndTime:   now,
	}
}

// Ensure MockExecutor implements Executor.
var _ Executor = (*MockExecutor)(nil)
