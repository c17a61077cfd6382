package dom

import (
	"errors"
	"testing"
)

func TestElementNames(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("DiV")
	if el.LocalName() != "div" {
		t.Errorf("expected local name 'div', got %q", el.LocalName())
	}
	if el.TagName() != "DIV" || el.AsNode().NodeName() != "DIV" {
		t.Errorf("expected tag name 'DIV', got %q", el.TagName())
	}
	if el.AsNode().OwnerDocument() != doc {
		t.Errorf("owner document not set")
	}
}

func TestCreateElementInvalidName(t *testing.T) {
	doc := NewDocument()
	for _, name := range []string{"", "1abc", "a b", "a<b"} {
		_, err := doc.CreateElementWithError(name)
		var domErr *DOMError
		if !errors.As(err, &domErr) || domErr.Name != "InvalidCharacterError" {
			t.Errorf("%q: expected InvalidCharacterError, got %v", name, err)
		}
	}
}

func TestAttributes(t *testing.T) {
	el := NewDocument().CreateElement("div")

	el.SetAttribute("Title", "hello")
	el.SetId("main")
	el.SetClassName("a b")

	if got := el.GetAttribute("title"); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if !el.HasAttribute("TITLE") {
		t.Errorf("attribute lookup should ignore case")
	}
	if el.Id() != "main" || el.ClassName() != "a b" {
		t.Errorf("id/class not reflected")
	}

	names := el.AttributeNames()
	if len(names) != 3 || names[0] != "title" || names[1] != "id" || names[2] != "class" {
		t.Errorf("unexpected attribute order %v", names)
	}

	el.SetAttribute("title", "bye")
	if el.GetAttribute("title") != "bye" || len(el.AttributeNames()) != 3 {
		t.Errorf("setting an existing attribute should replace its value")
	}

	el.RemoveAttribute("title")
	if el.HasAttribute("title") {
		t.Errorf("attribute not removed")
	}
	el.RemoveAttribute("missing")

	if err := el.SetAttributeWithError("bad=name", "x"); err == nil {
		t.Errorf("expected error for invalid attribute name")
	}

	if !el.ToggleAttribute("hidden") || !el.HasAttribute("hidden") {
		t.Errorf("toggle should add the attribute")
	}
	if el.ToggleAttribute("hidden") || el.HasAttribute("hidden") {
		t.Errorf("toggle should remove the attribute")
	}
}

func TestAsDialog(t *testing.T) {
	doc := NewDocument()
	if _, ok := doc.CreateElement("div").AsDialog(); ok {
		t.Errorf("div is not a dialog")
	}
	d, ok := doc.CreateElement("DIALOG").AsDialog()
	if !ok {
		t.Fatalf("dialog element should have a dialog view")
	}
	if d.AsElement().LocalName() != "dialog" {
		t.Errorf("unexpected local name %q", d.AsElement().LocalName())
	}
}

func TestDialogAccessors(t *testing.T) {
	d, _ := NewDocument().CreateElement("dialog").AsDialog()

	if d.IsOpen() || d.IsModal() || d.ReturnValue() != "" {
		t.Fatalf("new dialog should be closed with an empty return value")
	}

	d.ShowModal()
	if !d.IsOpen() || !d.IsModal() || !d.AsElement().HasAttribute("open") {
		t.Errorf("ShowModal should open modally")
	}

	d.Close("ok")
	if d.IsOpen() || d.IsModal() || d.ReturnValue() != "ok" {
		t.Errorf("Close should close and store the return value")
	}

	d.Show()
	if !d.IsOpen() || d.IsModal() {
		t.Errorf("Show should open modelessly")
	}

	d.ShowModal()
	d.AsElement().RemoveAttribute("open")
	d.SetOpen(true)
	if d.IsModal() {
		t.Errorf("removing the open attribute should clear the modal flag")
	}

	d.SetReturnValue("x")
	if d.ReturnValue() != "x" {
		t.Errorf("SetReturnValue not stored")
	}
}
