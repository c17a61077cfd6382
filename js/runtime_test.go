package js

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chrisuehlinger/hostbridge/dom"
)

func TestRuntimeBasic(t *testing.T) {
	r, err := NewRuntime(Chrome)
	require.NoError(t, err)
	defer r.Close()

	result, err := r.Execute("1 + 2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ToInteger())
	assert.Equal(t, Chrome, r.Profile())
	assert.Same(t, DefaultRegistry(), r.Registry())
}

func TestRuntimeRejectsUnknownProfile(t *testing.T) {
	_, err := NewRuntime(Profile(99))
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestRuntimeGlobals(t *testing.T) {
	r, _ := newTestRuntime(t, Chrome, dialogPage)

	assert.True(t, evalBool(t, r, `window === globalThis && self === window`))
	assert.True(t, evalBool(t, r, `window.document === document`))
	assert.Equal(t, "function", evalString(t, r, `typeof DOMException`))
	assert.Equal(t, "object", evalString(t, r, `typeof console`))
}

func TestRuntimeAlerts(t *testing.T) {
	r, _ := newTestRuntime(t, Chrome, dialogPage)

	eval(t, r, `alert("one"); alert(2); alert(); alert(null);`)
	assert.Equal(t, []string{"one", "2", "", "null"}, r.Alerts())

	r.ClearAlerts()
	assert.Empty(t, r.Alerts())
}

func TestRuntimeConsoleLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r, err := NewRuntime(Firefox, WithLogger(zap.New(core)))
	require.NoError(t, err)
	defer r.Close()

	eval(t, r, `console.log("hello", 1, undefined); console.warn("careful");`)

	entries := logs.Filter(func(e observer.LoggedEntry) bool {
		return e.LoggerName == "js.console"
	}).AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "hello 1 undefined", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "careful", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "firefox", entries[0].ContextMap()["profile"])
}

func TestRuntimeRecordsErrors(t *testing.T) {
	r, _ := newTestRuntime(t, Chrome, dialogPage)

	var seen []error
	r.SetOnError(func(err error) { seen = append(seen, err) })

	_, err := r.Execute(`throw new Error("boom")`)
	require.Error(t, err)
	var exc *goja.Exception
	require.True(t, errors.As(err, &exc))
	assert.Contains(t, exc.Error(), "boom")

	err = r.ExecuteScript(`this is not javascript`, "broken.js")
	require.Error(t, err)

	assert.Len(t, r.Errors(), 2)
	assert.Len(t, seen, 2)

	r.ClearErrors()
	assert.Empty(t, r.Errors())
}

func TestRuntimeExecuteScriptIsSloppy(t *testing.T) {
	r, _ := newTestRuntime(t, Chrome, dialogPage)
	require.NoError(t, r.ExecuteScript(`undeclared = 1; document.body.tagName = "x";`, "page.js"))
	assert.Equal(t, int64(1), eval(t, r, `undeclared`).ToInteger())
}

func TestRuntimeClose(t *testing.T) {
	r, doc := newTestRuntime(t, Chrome, dialogPage)
	h := r.Bridge().HostFor(doc.GetElementById("dlg").AsNode())
	require.NotNil(t, h)

	r.Close()
	r.Close()

	assert.True(t, h.Detached())
	_, err := r.Execute(`1`)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.ExecuteScript(`1`, "x.js"), ErrClosed)

	// Native removals after Close no longer reach the runtime.
	doc.GetElementById("box").AsNode().Remove()
}

func TestRuntimeRebindDocument(t *testing.T) {
	r, first := newTestRuntime(t, Chrome, dialogPage)
	old := r.Bridge().HostFor(first.GetElementById("box").AsNode())

	second, err := dom.ParseHTML(`<p id="other">x</p>`)
	require.NoError(t, err)
	r.BindDocument(second)

	assert.True(t, old.Detached())
	assert.Same(t, second, r.Bridge().Document())
	assert.Equal(t, "x", evalString(t, r, `document.getElementById('other').textContent`))
	assert.True(t, evalBool(t, r, `document.getElementById('box') === null`))
}

func TestCoercionExceptionsPropagate(t *testing.T) {
	r, _ := newTestRuntime(t, Chrome, dialogPage)

	assert.Equal(t, "boom", evalString(t, r, `
		var d = document.getElementById('dlg');
		var msg = "none";
		try {
			d.returnValue = { toString: function() { throw new Error("boom"); } };
		} catch (e) { msg = e.message; }
		msg`))
	assert.Equal(t, "", evalString(t, r, `d.returnValue`))
}

func TestScriptError(t *testing.T) {
	r, err := NewRuntime(Chrome)
	require.NoError(t, err)
	defer r.Close()
	vm := r.VM()

	vm.Set("domErr", r.ScriptError(dom.ErrInvalidState("nope")))
	vm.Set("typeErr", r.ScriptError(&TypeError{Message: "bad type"}))
	vm.Set("goErr", r.ScriptError(fmt.Errorf("wrapped: %w", ErrDetached)))

	assert.True(t, evalBool(t, r, `domErr instanceof DOMException && domErr instanceof Error`))
	assert.Equal(t, "InvalidStateError: nope", evalString(t, r, `String(domErr)`))
	assert.Equal(t, int64(11), eval(t, r, `domErr.code`).ToInteger())
	assert.True(t, evalBool(t, r, `typeErr instanceof TypeError && typeErr.message === "bad type"`))
	assert.True(t, evalBool(t, r, `goErr instanceof Error`))
	assert.Equal(t, "wrapped: host object is detached from its node", evalString(t, r, `goErr.message`))
}

func TestRaise(t *testing.T) {
	r, err := NewRuntime(Chrome)
	require.NoError(t, err)
	defer r.Close()

	r.VM().Set("fail", func(call goja.FunctionCall) goja.Value {
		r.Raise("raised from Go")
		return goja.Undefined()
	})
	assert.Equal(t, "raised from Go", evalString(t, r, `
		var msg = "none";
		try { fail(); } catch (e) { msg = e.message; }
		msg`))

	_, err = r.Execute(`fail()`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raised from Go")
}

func TestDOMExceptionConstructor(t *testing.T) {
	r, err := NewRuntime(Edge)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "NotFoundError", evalString(t, r, `new DOMException("m", "NotFoundError").name`))
	assert.Equal(t, int64(8), eval(t, r, `new DOMException("m", "NotFoundError").code`).ToInteger())
	assert.Equal(t, "Error", evalString(t, r, `new DOMException().name`))
	assert.Equal(t, int64(0), eval(t, r, `new DOMException("m", "Custom").code`).ToInteger())
	assert.Equal(t, int64(11), eval(t, r, `DOMException.INVALID_STATE_ERR`).ToInteger())
}

func TestConcurrentRuntimes(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 2*len(KnownProfiles()))

	for i := 0; i < 2; i++ {
		for _, p := range KnownProfiles() {
			wg.Add(1)
			go func(p Profile) {
				defer wg.Done()
				errs <- runDialogSession(p)
			}(p)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func runDialogSession(p Profile) error {
	doc, err := dom.ParseHTML(dialogPage)
	if err != nil {
		return err
	}
	r, err := NewRuntime(p)
	if err != nil {
		return err
	}
	defer r.Close()
	r.BindDocument(doc)

	v, err := r.Execute(`
		var d = document.getElementById('dlg');
		if (typeof d.showModal === "function") {
			d.showModal();
			d.close("done");
			d.returnValue;
		} else {
			"hidden";
		}`)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	want := "done"
	if p == IE {
		want = "hidden"
	}
	if got := v.String(); got != want {
		return fmt.Errorf("%s: got %q, want %q", p, got, want)
	}
	return nil
}

func TestNewRuntimeFreezesRegistry(t *testing.T) {
	reg := newWidgetRegistry(t)
	require.NoError(t, reg.Register("Widget", Getter("size", AllProfiles, constGetter(1))))
	require.False(t, reg.Frozen())

	r, err := NewRuntime(Chrome, WithRegistry(reg))
	require.NoError(t, err)
	t.Cleanup(r.Close)

	assert.True(t, reg.Frozen())
	assert.ErrorIs(t, reg.Register("Widget", Getter("weight", AllProfiles, constGetter(2))), ErrRegistryFrozen)
	assert.Equal(t, "function", evalString(t, r, `typeof Widget`))
}
