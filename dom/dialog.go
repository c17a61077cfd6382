package dom

// Dialog is the native view of an HTML <dialog> element.
// The open state reflects the "open" content attribute; the modal flag is only
// meaningful while the dialog is open.
//
// The native accessors perform no validation. Guarded transitions belong to
// the script bridge.
type Dialog Element

type dialogData struct {
	modal       bool
	returnValue string
}

// AsElement returns the element view of the dialog.
func (d *Dialog) AsElement() *Element {
	return (*Element)(d)
}

// AsNode returns the underlying Node.
func (d *Dialog) AsNode() *Node {
	return (*Node)(d)
}

func (d *Dialog) state() *dialogData {
	ed := d.AsNode().elementData
	if ed.dialog == nil {
		ed.dialog = &dialogData{}
	}
	return ed.dialog
}

// IsOpen returns true if the open attribute is present.
func (d *Dialog) IsOpen() bool {
	return d.AsElement().HasAttribute("open")
}

// SetOpen adds or removes the open attribute. Closing clears the modal flag.
func (d *Dialog) SetOpen(open bool) {
	if open {
		if !d.IsOpen() {
			d.AsElement().SetAttribute("open", "")
		}
		return
	}
	d.AsElement().RemoveAttribute("open")
	d.state().modal = false
}

// IsModal returns true if the dialog is open and was shown modally.
func (d *Dialog) IsModal() bool {
	return d.IsOpen() && d.state().modal
}

// Show opens the dialog modelessly.
func (d *Dialog) Show() {
	d.SetOpen(true)
	d.state().modal = false
}

// ShowModal opens the dialog modally.
func (d *Dialog) ShowModal() {
	d.SetOpen(true)
	d.state().modal = true
}

// Close closes the dialog and stores returnValue.
func (d *Dialog) Close(returnValue string) {
	d.state().returnValue = returnValue
	d.SetOpen(false)
}

// ReturnValue returns the dialog's return value. It defaults to "".
func (d *Dialog) ReturnValue() string {
	return d.state().returnValue
}

// SetReturnValue sets the dialog's return value.
func (d *Dialog) SetReturnValue(value string) {
	d.state().returnValue = value
}
