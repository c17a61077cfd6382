package js

import (
	"github.com/chrisuehlinger/hostbridge/dom"
)

// DialogState is the lifecycle state of a dialog element.
type DialogState uint8

const (
	DialogClosed DialogState = iota
	DialogOpenModeless
	DialogOpenModal
)

func (s DialogState) String() string {
	switch s {
	case DialogClosed:
		return "closed"
	case DialogOpenModeless:
		return "open-modeless"
	case DialogOpenModal:
		return "open-modal"
	default:
		return "unknown"
	}
}

// DialogAccessor is the native accessor contract of a dialog element.
// *dom.Dialog implements it.
type DialogAccessor interface {
	IsOpen() bool
	SetOpen(open bool)
	IsModal() bool
	Show()
	ShowModal()
	Close(returnValue string)
	ReturnValue() string
	SetReturnValue(value string)
}

const msgDialogAlreadyOpen = "Dialog is already open."

// DialogMachine guards the transitions of a dialog.
//
// The state is read back from the native accessors on every call, so edits
// made to the open attribute directly are observed. A rejected transition
// leaves the native dialog untouched.
type DialogMachine struct {
	native DialogAccessor
}

// NewDialogMachine returns a state machine driving native.
func NewDialogMachine(native DialogAccessor) *DialogMachine {
	return &DialogMachine{native: native}
}

func newDialogState(node *dom.Node) any {
	d, ok := (*dom.Element)(node).AsDialog()
	if !ok {
		return nil
	}
	return NewDialogMachine(d)
}

// State returns the current state.
func (m *DialogMachine) State() DialogState {
	switch {
	case !m.native.IsOpen():
		return DialogClosed
	case m.native.IsModal():
		return DialogOpenModal
	default:
		return DialogOpenModeless
	}
}

// Open reports whether the dialog is open in either mode.
func (m *DialogMachine) Open() bool {
	return m.State() != DialogClosed
}

// Show opens the dialog modelessly. Showing an already modeless dialog is a
// no-op; showing a modal one fails.
func (m *DialogMachine) Show() error {
	if m.State() == DialogOpenModal {
		return dom.ErrInvalidState(msgDialogAlreadyOpen)
	}
	m.native.Show()
	return nil
}

// ShowModal opens the dialog modally. Showing an already modal dialog is a
// no-op; showing a modeless one fails.
func (m *DialogMachine) ShowModal() error {
	if m.State() == DialogOpenModeless {
		return dom.ErrInvalidState(msgDialogAlreadyOpen)
	}
	m.native.ShowModal()
	return nil
}

// Close closes the dialog from any state. When present is false the return
// value is left as it is.
func (m *DialogMachine) Close(returnValue string, present bool) {
	if !present {
		returnValue = m.native.ReturnValue()
	}
	m.native.Close(returnValue)
}

// SetOpen forces the open state. Opening a closed dialog makes it modeless;
// an already open dialog keeps its mode.
func (m *DialogMachine) SetOpen(open bool) {
	if open {
		if m.State() == DialogClosed {
			m.native.SetOpen(true)
		}
		return
	}
	m.native.SetOpen(false)
}

// ReturnValue returns the dialog's return value.
func (m *DialogMachine) ReturnValue() string {
	return m.native.ReturnValue()
}

// SetReturnValue sets the dialog's return value.
func (m *DialogMachine) SetReturnValue(value string) {
	m.native.SetReturnValue(value)
}
