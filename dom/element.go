package dom

import (
	"strings"
)

// Element represents an element in the DOM tree.
// Element inherits from Node and provides element-specific properties and methods.
type Element Node

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	tagName    string
	attributes []attribute

	// dialog is allocated lazily for <dialog> elements.
	dialog *dialogData
}

type attribute struct {
	name  string
	value string
}

func newElement(localName string, doc *Document) *Element {
	localName = strings.ToLower(localName)
	tagName := strings.ToUpper(localName)
	node := newNode(ElementNode, tagName, doc)
	node.elementData = &elementData{
		localName: localName,
		tagName:   tagName,
	}
	return (*Element)(node)
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the lowercase local name of the element.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) {
	e.SetAttribute("class", className)
}

// AttributeNames returns the attribute names in insertion order.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.elementData.attributes))
	for _, a := range e.elementData.attributes {
		names = append(names, a.name)
	}
	return names
}

// GetAttribute returns the value of the attribute with the given name, or an
// empty string when it is absent. Names are matched case-insensitively.
func (e *Element) GetAttribute(name string) string {
	if i := e.attributeIndex(name); i >= 0 {
		return e.elementData.attributes[i].value
	}
	return ""
}

// HasAttribute returns true if the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	return e.attributeIndex(name) >= 0
}

// SetAttribute sets an attribute, ignoring invalid names.
// For error-returning version, use SetAttributeWithError.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets an attribute value. The name is lowercased.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	name = strings.ToLower(name)
	if i := e.attributeIndex(name); i >= 0 {
		e.elementData.attributes[i].value = value
	} else {
		e.elementData.attributes = append(e.elementData.attributes, attribute{name: name, value: value})
	}
	return nil
}

// RemoveAttribute removes the attribute if present.
func (e *Element) RemoveAttribute(name string) {
	i := e.attributeIndex(name)
	if i < 0 {
		return
	}
	attrs := e.elementData.attributes
	e.elementData.attributes = append(attrs[:i], attrs[i+1:]...)

	// A dialog whose open attribute goes away is no longer modal.
	if e.elementData.dialog != nil && strings.EqualFold(name, "open") {
		e.elementData.dialog.modal = false
	}
}

// ToggleAttribute toggles a boolean attribute and returns whether it is now present.
func (e *Element) ToggleAttribute(name string) bool {
	if e.HasAttribute(name) {
		e.RemoveAttribute(name)
		return false
	}
	e.SetAttribute(name, "")
	return true
}

func (e *Element) attributeIndex(name string) int {
	name = strings.ToLower(name)
	for i, a := range e.elementData.attributes {
		if a.name == name {
			return i
		}
	}
	return -1
}

// IsValidAttributeName reports whether name can be used as an attribute name.
func IsValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '"', '\'', '>', '/', '=', 0:
			return false
		}
	}
	return true
}

// AsDialog returns the dialog view of the element if it is a <dialog>.
func (e *Element) AsDialog() (*Dialog, bool) {
	if e == nil || e.elementData.localName != "dialog" {
		return nil, false
	}
	return (*Dialog)(e), true
}
