package js

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chrisuehlinger/hostbridge/dom"
)

const dialogPage = `<!DOCTYPE html>
<html>
<head></head>
<body>
	<div id="box" title="a box">text</div>
	<dialog id="dlg"><p>Hello</p></dialog>
</body>
</html>`

// newTestRuntime returns a runtime for profile bound to a parsed page.
func newTestRuntime(t *testing.T, profile Profile, page string) (*Runtime, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseHTML(page)
	require.NoError(t, err)

	r, err := NewRuntime(profile, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(r.Close)

	r.BindDocument(doc)
	return r, doc
}

// eval runs code and fails the test on a script error.
func eval(t *testing.T, r *Runtime, code string) goja.Value {
	t.Helper()
	v, err := r.Execute(code)
	require.NoError(t, err, "script: %s", code)
	return v
}

func evalString(t *testing.T, r *Runtime, code string) string {
	t.Helper()
	return eval(t, r, code).String()
}

func evalBool(t *testing.T, r *Runtime, code string) bool {
	t.Helper()
	return eval(t, r, code).ToBoolean()
}
