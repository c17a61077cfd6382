package js

import (
	"errors"
	"sync"

	"github.com/chrisuehlinger/hostbridge/dom"
	"github.com/dop251/goja"
)

// Host type names of the default registry.
const (
	TypeNode              = "Node"
	TypeElement           = "Element"
	TypeHTMLElement       = "HTMLElement"
	TypeHTMLDialogElement = "HTMLDialogElement"
	TypeDocument          = "Document"
)

// modernProfiles are the profiles that ship the newer DOM surface.
var modernProfiles = Profiles(Chrome, Edge, Firefox, FirefoxESR)

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewDefaultRegistry()
	r.Freeze()
	return r
})

// DefaultRegistry returns the shared, frozen registry with the built-in
// bindings. It is built on first use and panics on a configuration error.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// NewDefaultRegistry returns an unfrozen registry holding the built-in
// bindings, for callers that add their own types before freezing.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, ts := range []TypeSpec{
		{Name: TypeNode, VisibleIn: AllProfiles},
		{Name: TypeElement, Parent: TypeNode, VisibleIn: AllProfiles},
		{Name: TypeHTMLElement, Parent: TypeElement, VisibleIn: AllProfiles},
		{Name: TypeHTMLDialogElement, Parent: TypeHTMLElement, VisibleIn: modernProfiles, NewState: newDialogState},
		{Name: TypeDocument, Parent: TypeNode, VisibleIn: AllProfiles},
	} {
		if err := r.DefineType(ts); err != nil {
			panic(err)
		}
	}
	if err := r.MapElement("dialog", TypeHTMLDialogElement); err != nil {
		panic(err)
	}

	registerNode(r)
	registerElement(r)
	registerHTMLElement(r)
	registerDialog(r)
	registerDocument(r)
	return r
}

func registerNode(r *Registry) {
	r.MustRegister(TypeNode,
		Getter("nodeName", AllProfiles, func(h *HostObject) (any, error) {
			return h.Node().NodeName(), nil
		}),
		Getter("nodeType", AllProfiles, func(h *HostObject) (any, error) {
			return int(h.Node().NodeType()), nil
		}),
		Getter("parentNode", AllProfiles, func(h *HostObject) (any, error) {
			return h.Node().ParentNode(), nil
		}),
		Getter("textContent", AllProfiles, func(h *HostObject) (any, error) {
			if h.Node().NodeType() == dom.DocumentNode {
				return goja.Null(), nil
			}
			return h.Node().TextContent(), nil
		}),
		Setter("textContent", AllProfiles, func(h *HostObject, v goja.Value) error {
			s, _ := ToNullableString(v)
			h.Node().SetTextContent(s)
			return nil
		}),
		Getter("isConnected", modernProfiles, func(h *HostObject) (any, error) {
			return h.Node().IsConnected(), nil
		}),
		Method("appendChild", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			child, err := h.bridge.nodeArg(Argument(args, 0))
			if err != nil {
				return nil, err
			}
			return h.Node().AppendChildWithError(child)
		}),
		Method("remove", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			h.Node().Remove()
			return nil, nil
		}),
	)
}

func registerElement(r *Registry) {
	r.MustRegister(TypeElement,
		Getter("tagName", AllProfiles, func(h *HostObject) (any, error) {
			return h.Element().TagName(), nil
		}),
		Getter("localName", AllProfiles, func(h *HostObject) (any, error) {
			return h.Element().LocalName(), nil
		}),
		Getter("id", AllProfiles, func(h *HostObject) (any, error) {
			return h.Element().Id(), nil
		}),
		Setter("id", AllProfiles, func(h *HostObject, v goja.Value) error {
			h.Element().SetId(ToString(v))
			return nil
		}),
		Getter("className", AllProfiles, func(h *HostObject) (any, error) {
			return h.Element().ClassName(), nil
		}),
		Setter("className", AllProfiles, func(h *HostObject, v goja.Value) error {
			h.Element().SetClassName(ToString(v))
			return nil
		}),
		Method("getAttribute", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			name := ToString(Argument(args, 0))
			if !h.Element().HasAttribute(name) {
				return goja.Null(), nil
			}
			return h.Element().GetAttribute(name), nil
		}),
		Method("setAttribute", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			if len(args) < 2 {
				return nil, &TypeError{Message: "Failed to execute 'setAttribute': 2 arguments required."}
			}
			return nil, h.Element().SetAttributeWithError(ToString(args[0]), ToString(args[1]))
		}),
		Method("hasAttribute", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			return h.Element().HasAttribute(ToString(Argument(args, 0))), nil
		}),
		Method("removeAttribute", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			h.Element().RemoveAttribute(ToString(Argument(args, 0)))
			return nil, nil
		}),
	)
}

func registerHTMLElement(r *Registry) {
	r.MustRegister(TypeHTMLElement,
		Getter("title", AllProfiles, func(h *HostObject) (any, error) {
			return h.Element().GetAttribute("title"), nil
		}),
		Setter("title", AllProfiles, func(h *HostObject, v goja.Value) error {
			h.Element().SetAttribute("title", ToString(v))
			return nil
		}),
		Getter("hidden", AllProfiles, func(h *HostObject) (any, error) {
			return h.Element().HasAttribute("hidden"), nil
		}),
		Setter("hidden", AllProfiles, func(h *HostObject, v goja.Value) error {
			if ToBoolean(v) {
				h.Element().SetAttribute("hidden", "")
			} else {
				h.Element().RemoveAttribute("hidden")
			}
			return nil
		}),
	)
}

var errNoDialogState = errors.New("dialog host object has no state machine")

func dialogOf(h *HostObject) (*DialogMachine, error) {
	m, ok := h.State().(*DialogMachine)
	if !ok || m == nil {
		return nil, errNoDialogState
	}
	return m, nil
}

func registerDialog(r *Registry) {
	r.MustRegister(TypeHTMLDialogElement,
		Getter("open", modernProfiles, func(h *HostObject) (any, error) {
			m, err := dialogOf(h)
			if err != nil {
				return nil, err
			}
			return m.Open(), nil
		}),
		Setter("open", modernProfiles, func(h *HostObject, v goja.Value) error {
			m, err := dialogOf(h)
			if err != nil {
				return err
			}
			m.SetOpen(ToBoolean(v))
			return nil
		}),
		Getter("returnValue", modernProfiles, func(h *HostObject) (any, error) {
			m, err := dialogOf(h)
			if err != nil {
				return nil, err
			}
			return m.ReturnValue(), nil
		}),
		Setter("returnValue", modernProfiles, func(h *HostObject, v goja.Value) error {
			m, err := dialogOf(h)
			if err != nil {
				return err
			}
			// null and undefined reset the value instead of stringifying.
			s, ok := ToNullableString(v)
			if !ok {
				m.SetReturnValue("")
				return nil
			}
			m.SetReturnValue(s)
			return nil
		}),
		Method("show", modernProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			m, err := dialogOf(h)
			if err != nil {
				return nil, err
			}
			return nil, m.Show()
		}),
		Method("showModal", modernProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			m, err := dialogOf(h)
			if err != nil {
				return nil, err
			}
			return nil, m.ShowModal()
		}),
		Method("close", modernProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			m, err := dialogOf(h)
			if err != nil {
				return nil, err
			}
			m.Close(ToNullableString(Argument(args, 0)))
			return nil, nil
		}),
	)
}

func registerDocument(r *Registry) {
	r.MustRegister(TypeDocument,
		Getter("documentElement", AllProfiles, func(h *HostObject) (any, error) {
			return h.Document().DocumentElement(), nil
		}),
		Getter("body", AllProfiles, func(h *HostObject) (any, error) {
			return h.Document().Body(), nil
		}),
		Method("getElementById", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			return h.Document().GetElementById(ToString(Argument(args, 0))), nil
		}),
		Method("createElement", AllProfiles, func(h *HostObject, args []goja.Value) (any, error) {
			return h.Document().CreateElementWithError(ToString(Argument(args, 0)))
		}),
	)
}
