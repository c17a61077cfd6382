package js

import (
	"sort"

	"github.com/chrisuehlinger/hostbridge/dom"
	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// HostObject is the script-visible representative of one DOM node in one
// runtime. It implements goja.DynamicObject: every property access is
// resolved against the registry for the runtime's profile.
//
// A HostObject never outlives its node's membership in the tree. Once the
// node is removed, or the runtime is closed, every access raises ErrDetached.
type HostObject struct {
	bridge *Bridge
	node   *dom.Node
	typ    *hostType
	state  any
	object *goja.Object

	// expando holds script-assigned properties that are not members.
	expando map[string]goja.Value

	detached bool
}

var _ goja.DynamicObject = (*HostObject)(nil)

// Node returns the bound node.
func (h *HostObject) Node() *dom.Node {
	return h.node
}

// Element returns the bound node as an element, or nil.
func (h *HostObject) Element() *dom.Element {
	if h.node.NodeType() != dom.ElementNode {
		return nil
	}
	return (*dom.Element)(h.node)
}

// Document returns the bound node as a document, or nil.
func (h *HostObject) Document() *dom.Document {
	if h.node.NodeType() != dom.DocumentNode {
		return nil
	}
	return (*dom.Document)(h.node)
}

// State returns the element-local state machine, or nil.
func (h *HostObject) State() any {
	return h.state
}

// TypeName returns the name of the host type the object was bound as.
func (h *HostObject) TypeName() string {
	return h.typ.name
}

// Runtime returns the runtime the object belongs to.
func (h *HostObject) Runtime() *Runtime {
	return h.bridge.runtime
}

// Object returns the script object backed by h.
func (h *HostObject) Object() *goja.Object {
	return h.object
}

// Detached reports whether the object was invalidated.
func (h *HostObject) Detached() bool {
	return h.detached
}

func (h *HostObject) resolve(name string, kind Kind) (*Descriptor, bool) {
	return h.typ.resolve(memberKey{name: name, kind: kind}, h.bridge.runtime.profile)
}

func (h *HostObject) checkLive() error {
	if h.detached {
		return &DetachedError{Type: h.typ.name, NodeName: h.node.NodeName()}
	}
	return nil
}

// mustBeLive raises ErrDetached in the calling script frame.
func (h *HostObject) mustBeLive() {
	if err := h.checkLive(); err != nil {
		h.bridge.logger.Warn("access to detached host object",
			zap.String("type", h.typ.name),
			zap.String("node", h.node.NodeName()))
		h.bridge.runtime.Throw(err)
	}
}

// Get implements goja.DynamicObject. Attributes are own properties; methods
// live on the type's prototype. A nil result lets the runtime continue with
// the prototype chain and finally undefined.
func (h *HostObject) Get(key string) goja.Value {
	h.mustBeLive()
	if d, ok := h.resolve(key, KindGetter); ok {
		v, err := d.Get(h)
		if err != nil {
			h.bridge.runtime.Throw(err)
		}
		return h.bridge.toValue(v)
	}
	if v, ok := h.expando[key]; ok {
		return v
	}
	return nil
}

// Set implements goja.DynamicObject. Assigning to a read-only attribute
// returns false, which the runtime ignores in sloppy code and turns into a
// TypeError in strict code. Any other name becomes an expando property, which
// may shadow a prototype method.
func (h *HostObject) Set(key string, val goja.Value) bool {
	h.mustBeLive()
	if d, ok := h.resolve(key, KindSetter); ok {
		if err := d.Set(h, val); err != nil {
			h.bridge.runtime.Throw(err)
		}
		return true
	}
	if _, ok := h.resolve(key, KindGetter); ok {
		return false
	}
	if h.expando == nil {
		h.expando = make(map[string]goja.Value)
	}
	h.expando[key] = val
	return true
}

// Has implements goja.DynamicObject.
func (h *HostObject) Has(key string) bool {
	h.mustBeLive()
	if h.isAttribute(key) {
		return true
	}
	_, ok := h.expando[key]
	return ok
}

func (h *HostObject) isAttribute(key string) bool {
	if _, ok := h.resolve(key, KindGetter); ok {
		return true
	}
	_, ok := h.resolve(key, KindSetter)
	return ok
}

// Delete implements goja.DynamicObject. Attributes cannot be deleted;
// expandos can.
func (h *HostObject) Delete(key string) bool {
	h.mustBeLive()
	if h.isAttribute(key) {
		return false
	}
	delete(h.expando, key)
	return true
}

// Keys implements goja.DynamicObject. It lists the visible attributes
// followed by the expando properties.
func (h *HostObject) Keys() []string {
	h.mustBeLive()
	members := h.bridge.runtime.registry.Members(h.typ.name, h.bridge.runtime.profile)
	keys := make([]string, 0, len(members)+len(h.expando))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m.Kind == KindCallable || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		keys = append(keys, m.Name)
	}
	expandos := make([]string, 0, len(h.expando))
	for key := range h.expando {
		if !seen[key] {
			expandos = append(expandos, key)
		}
	}
	sort.Strings(expandos)
	return append(keys, expandos...)
}

func (h *HostObject) invalidate() {
	h.detached = true
	h.state = nil
	h.expando = nil
}
