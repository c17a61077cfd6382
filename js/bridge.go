package js

import (
	"github.com/chrisuehlinger/hostbridge/dom"
	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Bridge pairs DOM nodes with host objects for one runtime. It returns the
// same script object for the same node until the node leaves the tree.
type Bridge struct {
	runtime  *Runtime
	logger   *zap.Logger
	document *dom.Document

	nodeMap map[*dom.Node]*HostObject
	protos  map[*hostType]*goja.Object
	methods map[*Descriptor]goja.Value
}

func newBridge(r *Runtime) *Bridge {
	b := &Bridge{
		runtime: r,
		logger:  r.logger.Named("bridge"),
		nodeMap: make(map[*dom.Node]*HostObject),
		protos:  make(map[*hostType]*goja.Object),
		methods: make(map[*Descriptor]goja.Value),
	}
	b.setupPrototypes()
	return b
}

// setupPrototypes creates one prototype and constructor per host type that
// is visible under the runtime's profile. Types hidden under the profile get
// no global, and their instances use the nearest visible ancestor.
func (b *Bridge) setupPrototypes() {
	vm := b.runtime.vm
	reg := b.runtime.registry
	for _, name := range reg.TypeNames() {
		t := reg.hostType(name)
		if t.visibleIn.Has(b.runtime.profile) {
			ctor := b.protoFor(t).Get("constructor")
			vm.Set(name, ctor)
		}
	}
}

// protoFor returns the prototype for a visible type, creating it and its
// visible ancestors on first use.
func (b *Bridge) protoFor(t *hostType) *goja.Object {
	if proto, ok := b.protos[t]; ok {
		return proto
	}
	vm := b.runtime.vm
	proto := vm.NewObject()

	parent := t.parent
	for parent != nil && !parent.visibleIn.Has(b.runtime.profile) {
		parent = parent.parent
	}
	if parent != nil {
		proto.SetPrototype(b.protoFor(parent))
	}

	ctor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		panic(vm.NewTypeError("Illegal constructor"))
	}).ToObject(vm)
	ctor.Set("prototype", proto)
	ctor.DefineDataProperty("name", vm.ToValue(t.name), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_TRUE)
	proto.DefineDataProperty("constructor", ctor, goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE)
	// Object.prototype.toString reports "[object <Type>]".
	proto.DefineDataPropertySymbol(goja.SymToStringTag, vm.ToValue(t.name), goja.FLAG_FALSE, goja.FLAG_TRUE, goja.FLAG_FALSE)

	// Methods of t and of any hidden ancestors between t and parent.
	installed := make(map[string]bool)
	for cur := t; cur != nil && cur != parent; cur = cur.parent {
		b.installMethods(proto, cur, installed)
	}

	b.protos[t] = proto
	return proto
}

// installMethods defines the callables of t that are visible under the
// profile on proto. Names in installed came from a descendant and are kept.
func (b *Bridge) installMethods(proto *goja.Object, t *hostType, installed map[string]bool) {
	for key, d := range t.members {
		if key.kind != KindCallable || installed[d.Name] || !d.VisibleIn.Has(b.runtime.profile) {
			continue
		}
		installed[d.Name] = true
		proto.DefineDataProperty(d.Name, b.method(d), goja.FLAG_TRUE, goja.FLAG_TRUE, goja.FLAG_FALSE)
	}
}

// BindDocument makes doc the runtime's document and exposes it as the
// "document" global. Host objects bound to a previous document are
// invalidated.
func (b *Bridge) BindDocument(doc *dom.Document) *goja.Object {
	if b.document != nil && b.document != doc {
		b.document.RemoveRemovalObserver(b)
		b.invalidateAll()
	}
	if b.document != doc {
		b.document = doc
		doc.AddRemovalObserver(b)
	}
	jsDoc := b.Wrap(doc.AsNode())
	b.runtime.vm.Set("document", jsDoc)
	return jsDoc
}

// Document returns the bound document.
func (b *Bridge) Document() *dom.Document {
	return b.document
}

// Wrap returns the script object for node, creating the host object on first
// access. It returns nil for a nil node or one no host type can represent.
func (b *Bridge) Wrap(node *dom.Node) *goja.Object {
	h := b.HostFor(node)
	if h == nil {
		return nil
	}
	return h.object
}

// HostFor returns the host object for node, creating it on first access.
func (b *Bridge) HostFor(node *dom.Node) *HostObject {
	if node == nil {
		return nil
	}
	if h, ok := b.nodeMap[node]; ok {
		return h
	}

	t := b.typeOf(node)
	if t == nil {
		b.logger.Warn("no host type visible for node",
			zap.String("node", node.NodeName()),
			zap.Stringer("profile", b.runtime.profile))
		return nil
	}

	h := &HostObject{
		bridge: b,
		node:   node,
		typ:    t,
	}
	for st := t; st != nil; st = st.parent {
		if st.newState != nil {
			h.state = st.newState(node)
			break
		}
	}
	h.object = b.runtime.vm.NewDynamicObject(h)
	h.object.SetPrototype(b.protoFor(t))

	b.nodeMap[node] = h
	b.logger.Debug("host object created",
		zap.String("type", t.name),
		zap.String("node", node.NodeName()))
	return h
}

func (b *Bridge) typeOf(node *dom.Node) *hostType {
	reg := b.runtime.registry
	profile := b.runtime.profile
	switch node.NodeType() {
	case dom.DocumentNode:
		return reg.visibleType(TypeDocument, profile)
	case dom.ElementNode:
		name, ok := reg.TypeFor((*dom.Element)(node).LocalName(), profile)
		if !ok {
			return nil
		}
		return reg.hostType(name)
	default:
		return reg.visibleType(TypeNode, profile)
	}
}

// OnNodeRemoved implements dom.RemovalObserver. Host objects for the removed
// subtree are invalidated and forgotten.
func (b *Bridge) OnNodeRemoved(parent, removed *dom.Node) {
	for node, h := range b.nodeMap {
		if removed.Contains(node) {
			h.invalidate()
			delete(b.nodeMap, node)
			b.logger.Debug("host object invalidated",
				zap.String("type", h.typ.name),
				zap.String("node", node.NodeName()))
		}
	}
}

func (b *Bridge) invalidateAll() {
	for node, h := range b.nodeMap {
		h.invalidate()
		delete(b.nodeMap, node)
	}
}

// close detaches the bridge from its document.
func (b *Bridge) close() {
	if b.document != nil {
		b.document.RemoveRemovalObserver(b)
	}
	b.invalidateAll()
}

// method returns the function object for a callable descriptor. It is
// created once per session and installed on the owning prototype.
func (b *Bridge) method(d *Descriptor) goja.Value {
	if fn, ok := b.methods[d]; ok {
		return fn
	}
	vm := b.runtime.vm
	fn := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		h, ok := call.This.Export().(*HostObject)
		if !ok || h.bridge != b || !h.typ.isA(d.owner) {
			b.runtime.Throw(errIllegalInvocation())
		}
		h.mustBeLive()
		result, err := d.Call(h, call.Arguments)
		if err != nil {
			b.logger.Debug("host call failed",
				zap.String("type", h.typ.name),
				zap.String("member", d.Name),
				zap.Error(err))
			b.runtime.Throw(err)
		}
		return b.toValue(result)
	})
	fnObj := fn.ToObject(vm)
	fnObj.DefineDataProperty("name", vm.ToValue(d.Name), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_TRUE)
	b.methods[d] = fn
	return fn
}

// toValue boxes a native result into a script value. Nodes become host
// objects; nil nodes become null.
func (b *Bridge) toValue(v any) goja.Value {
	switch x := v.(type) {
	case nil:
		return goja.Undefined()
	case goja.Value:
		return x
	case *dom.Node:
		return b.nodeValue(x)
	case *dom.Element:
		if x == nil {
			return goja.Null()
		}
		return b.nodeValue(x.AsNode())
	case *dom.Dialog:
		if x == nil {
			return goja.Null()
		}
		return b.nodeValue(x.AsNode())
	case *dom.Document:
		if x == nil {
			return goja.Null()
		}
		return b.nodeValue(x.AsNode())
	default:
		return b.runtime.vm.ToValue(v)
	}
}

func (b *Bridge) nodeValue(node *dom.Node) goja.Value {
	if obj := b.Wrap(node); obj != nil {
		return obj
	}
	return goja.Null()
}

// nodeArg unwraps a script argument that must be a live node of this runtime.
func (b *Bridge) nodeArg(v goja.Value) (*dom.Node, error) {
	if IsNullish(v) {
		return nil, &TypeError{Message: "parameter 1 is not of type 'Node'."}
	}
	h, ok := v.Export().(*HostObject)
	if !ok || h.bridge != b {
		return nil, &TypeError{Message: "parameter 1 is not of type 'Node'."}
	}
	if err := h.checkLive(); err != nil {
		return nil, err
	}
	return h.node, nil
}
