// Package js binds the native DOM to the goja JavaScript engine.
//
// Each Runtime is one script session: a goja VM, a fixed browser Profile and
// a Bridge that hands out host objects for DOM nodes. The member surface of
// every host object is declared in a Registry and filtered by the profile.
package js

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chrisuehlinger/hostbridge/dom"
	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Runtime wraps a goja JavaScript runtime with browser-specific functionality.
type Runtime struct {
	vm       *goja.Runtime
	profile  Profile
	registry *Registry
	bridge   *Bridge
	logger   *zap.Logger

	domExceptionProto *goja.Object

	mu      sync.Mutex
	errors  []error
	alerts  []string
	onError func(error)
	closed  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistry replaces the default registry. NewRuntime freezes it if the
// caller has not.
func WithRegistry(reg *Registry) Option {
	return func(r *Runtime) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// NewRuntime creates a runtime emulating profile. The profile cannot be
// changed afterwards.
func NewRuntime(profile Profile, opts ...Option) (*Runtime, error) {
	if !profile.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}

	r := &Runtime{
		vm:      goja.New(),
		profile: profile,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = DefaultRegistry()
	}
	r.logger = r.logger.Named("js").With(zap.Stringer("profile", profile))
	if !r.registry.Frozen() {
		r.logger.Debug("Freezing registry before first use.")
		r.registry.Freeze()
	}

	// Set up global objects
	r.setupConsole()
	r.setupWindow()
	r.setupDOMException()
	r.bridge = newBridge(r)

	return r, nil
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Profile returns the emulated browser profile.
func (r *Runtime) Profile() Profile {
	return r.profile
}

// Registry returns the registry the runtime resolves members against.
func (r *Runtime) Registry() *Registry {
	return r.registry
}

// Bridge returns the node-to-host-object bridge.
func (r *Runtime) Bridge() *Bridge {
	return r.bridge
}

// BindDocument exposes doc as the "document" global.
func (r *Runtime) BindDocument(doc *dom.Document) *goja.Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bridge.BindDocument(doc)
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (goja.Value, error) {
	return r.run(func() (goja.Value, error) {
		return r.vm.RunString(code)
	}, "script")
}

// ExecuteScript runs JavaScript code from a script element or file named src.
// Scripts are compiled in non-strict (sloppy) mode, as classic scripts are.
func (r *Runtime) ExecuteScript(code, src string) error {
	_, err := r.run(func() (goja.Value, error) {
		program, err := goja.Compile(src, code, false)
		if err != nil {
			return nil, err
		}
		return r.vm.RunProgram(program)
	}, src)
	return err
}

func (r *Runtime) run(fn func() (goja.Value, error), src string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	result, err = fn()
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Debug("script error", zap.Error(err))
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// Alerts returns the messages passed to alert() so far.
func (r *Runtime) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.alerts...)
}

// ClearAlerts clears the collected alerts.
func (r *Runtime) ClearAlerts() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = r.alerts[:0]
}

// Close ends the session. Every host object is invalidated and later
// executions fail with ErrClosed. Close is idempotent.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.bridge.close()
	r.logger.Debug("runtime closed")
}

// setupConsole creates the console object. Output goes to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	log := r.logger.Named("console")

	levels := map[string]func(string, ...zap.Field){
		"log":   log.Info,
		"info":  log.Info,
		"warn":  log.Warn,
		"error": log.Error,
		"debug": log.Debug,
	}
	for name, emit := range levels {
		emit := emit // per-iteration copy; module targets go1.21 loop semantics
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			emit(formatArgs(call.Arguments))
			return goja.Undefined()
		})
	}

	r.vm.Set("console", console)
}

// setupWindow makes window/self/globalThis point to the global object and
// installs alert().
func (r *Runtime) setupWindow() {
	window := r.vm.GlobalObject()
	r.vm.Set("window", window)
	r.vm.Set("self", window)
	r.vm.Set("globalThis", window)

	r.vm.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = formatValue(call.Arguments[0])
		}
		// Execute holds r.mu while scripts run.
		r.alerts = append(r.alerts, msg)
		r.logger.Debug("alert", zap.String("message", msg))
		return goja.Undefined()
	})
}

// formatArgs formats console arguments for output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatValue(arg))
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
