package js

import (
	"errors"
	"fmt"

	"github.com/chrisuehlinger/hostbridge/dom"
	"github.com/dop251/goja"
)

var (
	// ErrConfiguration marks registry construction mistakes. These are
	// startup failures and never surface to scripts.
	ErrConfiguration = errors.New("binding configuration error")
	// ErrRegistryFrozen is returned when a frozen registry is modified.
	ErrRegistryFrozen = fmt.Errorf("%w: registry is frozen", ErrConfiguration)
	// ErrUnknownProfile is returned by ParseProfile.
	ErrUnknownProfile = errors.New("unknown browser profile")
	// ErrDetached is raised when a host object is used after its node was
	// removed from the tree or its runtime was closed.
	ErrDetached = errors.New("host object is detached from its node")
	// ErrClosed is returned when executing on a closed runtime.
	ErrClosed = errors.New("runtime is closed")
)

// DetachedError describes an access to an invalidated host object.
type DetachedError struct {
	Type     string
	NodeName string
}

func (e *DetachedError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Type, e.NodeName, ErrDetached)
}

// Unwrap lets errors.Is match ErrDetached.
func (e *DetachedError) Unwrap() error {
	return ErrDetached
}

// TypeError is raised to scripts as a native TypeError.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Message
}

func errIllegalInvocation() error {
	return &TypeError{Message: "Illegal invocation"}
}

// domExceptionConstants are the legacy constants on the DOMException constructor.
var domExceptionConstants = []struct {
	name string
	code int
}{
	{"INDEX_SIZE_ERR", 1},
	{"DOMSTRING_SIZE_ERR", 2},
	{"HIERARCHY_REQUEST_ERR", 3},
	{"WRONG_DOCUMENT_ERR", 4},
	{"INVALID_CHARACTER_ERR", 5},
	{"NO_DATA_ALLOWED_ERR", 6},
	{"NO_MODIFICATION_ALLOWED_ERR", 7},
	{"NOT_FOUND_ERR", 8},
	{"NOT_SUPPORTED_ERR", 9},
	{"INUSE_ATTRIBUTE_ERR", 10},
	{"INVALID_STATE_ERR", 11},
	{"SYNTAX_ERR", 12},
	{"INVALID_MODIFICATION_ERR", 13},
	{"NAMESPACE_ERR", 14},
	{"INVALID_ACCESS_ERR", 15},
	{"VALIDATION_ERR", 16},
	{"TYPE_MISMATCH_ERR", 17},
	{"SECURITY_ERR", 18},
	{"NETWORK_ERR", 19},
	{"ABORT_ERR", 20},
	{"URL_MISMATCH_ERR", 21},
	{"QUOTA_EXCEEDED_ERR", 22},
	{"TIMEOUT_ERR", 23},
	{"INVALID_NODE_TYPE_ERR", 24},
	{"DATA_CLONE_ERR", 25},
}

// setupDOMException installs the DOMException constructor.
// DOMException.prototype extends Error.prototype so Error.prototype.toString
// renders "Name: message".
func (r *Runtime) setupDOMException() {
	vm := r.vm

	r.domExceptionProto = vm.NewObject()
	errorProto := vm.Get("Error").ToObject(vm).Get("prototype").ToObject(vm)
	r.domExceptionProto.SetPrototype(errorProto)

	ctor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		message := ""
		name := "Error"
		if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) {
			message = ToString(call.Arguments[0])
		}
		if len(call.Arguments) > 1 && !goja.IsUndefined(call.Arguments[1]) {
			name = ToString(call.Arguments[1])
		}
		exc := call.This
		exc.Set("message", message)
		exc.Set("name", name)
		exc.Set("code", dom.ExceptionCode(name))
		return exc
	}).ToObject(vm)
	ctor.Set("prototype", r.domExceptionProto)
	r.domExceptionProto.Set("constructor", ctor)

	for _, c := range domExceptionConstants {
		ctor.Set(c.name, c.code)
	}

	vm.Set("DOMException", ctor)
}

// newDOMException creates a DOMException object.
func (r *Runtime) newDOMException(name, message string) *goja.Object {
	exc := r.vm.CreateObject(r.domExceptionProto)
	exc.Set("name", name)
	exc.Set("message", message)
	exc.Set("code", dom.ExceptionCode(name))
	return exc
}

// ScriptError converts a Go error into the script value a script would catch:
// DOM errors become DOMException objects, TypeErrors native TypeErrors and
// anything else an Error carrying err's message.
func (r *Runtime) ScriptError(err error) goja.Value {
	var domErr *dom.DOMError
	var typeErr *TypeError
	switch {
	case errors.As(err, &domErr):
		return r.newDOMException(domErr.Name, domErr.Message)
	case errors.As(err, &typeErr):
		return r.vm.NewTypeError("%s", typeErr.Message)
	default:
		return r.vm.NewGoError(err)
	}
}

// Throw raises err in the calling script frame. It does not return.
func (r *Runtime) Throw(err error) {
	panic(r.ScriptError(err))
}

// Raise throws a plain script Error carrying message.
func (r *Runtime) Raise(message string) {
	panic(r.vm.NewGoError(errors.New(message)))
}
