package js

import (
	"strings"

	"github.com/chrisuehlinger/hostbridge/dom"
	"go.uber.org/zap"
)

// ScriptExecutor runs the scripts embedded in an HTML document.
type ScriptExecutor struct {
	runtime *Runtime
	logger  *zap.Logger
}

// NewScriptExecutor creates a new script executor.
func NewScriptExecutor(runtime *Runtime) *ScriptExecutor {
	return &ScriptExecutor{
		runtime: runtime,
		logger:  runtime.logger.Named("executor"),
	}
}

// ExecuteScripts binds doc and runs its inline scripts in document order.
// A failing script does not stop the ones after it.
func (se *ScriptExecutor) ExecuteScripts(doc *dom.Document) []error {
	se.runtime.BindDocument(doc)

	var errs []error
	for _, script := range doc.GetElementsByTagName("script") {
		if err := se.executeScript(script); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// executeScript executes a single script element.
func (se *ScriptExecutor) executeScript(script *dom.Element) error {
	scriptType := strings.ToLower(strings.TrimSpace(script.GetAttribute("type")))
	if scriptType != "" && scriptType != "text/javascript" && scriptType != "application/javascript" {
		se.logger.Debug("skipping script", zap.String("type", scriptType))
		return nil
	}

	// External scripts are not fetched.
	if src := script.GetAttribute("src"); src != "" {
		se.logger.Debug("skipping external script", zap.String("src", src))
		return nil
	}

	code := strings.TrimSpace(script.AsNode().TextContent())
	if code == "" {
		return nil
	}

	id := script.Id()
	if id == "" {
		id = "inline"
	}
	return se.runtime.ExecuteScript(code, id)
}
