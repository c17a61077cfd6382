package js

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chrisuehlinger/hostbridge/dom"
)

// StateFactory builds the element-local state machine for a new host object.
// It returns nil when the node has no local state.
type StateFactory func(node *dom.Node) any

// TypeSpec declares a host type.
type TypeSpec struct {
	Name string
	// Parent is the type whose members are inherited. Empty for roots.
	Parent string
	// VisibleIn lists the profiles under which the type exists. Under other
	// profiles the nearest visible ancestor is used instead.
	VisibleIn ProfileSet
	NewState  StateFactory
}

type memberKey struct {
	name string
	kind Kind
}

type hostType struct {
	name      string
	parent    *hostType
	visibleIn ProfileSet
	newState  StateFactory
	members   map[memberKey]*Descriptor
}

// Member is one entry of a host type's visible surface.
type Member struct {
	Name  string
	Kind  Kind
	Owner string
}

// Registry holds the capability descriptors of every host type.
//
// A registry is built by a single goroutine and then frozen. Once frozen it
// never changes, so lookups need no locking and may run from any number of
// runtimes at once.
type Registry struct {
	types        map[string]*hostType
	elementTypes map[string]string
	frozen       bool
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{
		types:        make(map[string]*hostType),
		elementTypes: make(map[string]string),
	}
}

// DefineType adds a host type. The parent must already be defined.
func (r *Registry) DefineType(ts TypeSpec) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if ts.Name == "" {
		return fmt.Errorf("%w: host type without a name", ErrConfiguration)
	}
	if _, exists := r.types[ts.Name]; exists {
		return fmt.Errorf("%w: host type %q defined twice", ErrConfiguration, ts.Name)
	}
	if ts.VisibleIn.Empty() || !ts.VisibleIn.Valid() {
		return fmt.Errorf("%w: host type %q has a malformed profile set %s", ErrConfiguration, ts.Name, ts.VisibleIn)
	}

	t := &hostType{
		name:      ts.Name,
		visibleIn: ts.VisibleIn,
		newState:  ts.NewState,
		members:   make(map[memberKey]*Descriptor),
	}
	if ts.Parent != "" {
		parent, ok := r.types[ts.Parent]
		if !ok {
			return fmt.Errorf("%w: host type %q extends undefined type %q", ErrConfiguration, ts.Name, ts.Parent)
		}
		t.parent = parent
	}
	r.types[ts.Name] = t
	return nil
}

// MapElement binds an element local name to a host type.
func (r *Registry) MapElement(localName, typeName string) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, ok := r.types[typeName]; !ok {
		return fmt.Errorf("%w: element %q mapped to undefined type %q", ErrConfiguration, localName, typeName)
	}
	localName = strings.ToLower(localName)
	if prev, exists := r.elementTypes[localName]; exists {
		return fmt.Errorf("%w: element %q already mapped to %q", ErrConfiguration, localName, prev)
	}
	r.elementTypes[localName] = typeName
	return nil
}

// Register appends a descriptor to a host type's table.
func (r *Registry) Register(typeName string, d Descriptor) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	t, ok := r.types[typeName]
	if !ok {
		return fmt.Errorf("%w: register %q on undefined type %q", ErrConfiguration, d.Name, typeName)
	}
	if err := d.validate(); err != nil {
		return fmt.Errorf("%s.%s: %w", typeName, d.Name, err)
	}
	key := memberKey{name: d.Name, kind: d.Kind}
	if _, dup := t.members[key]; dup {
		return fmt.Errorf("%w: duplicate %s %s.%s", ErrConfiguration, d.Kind, typeName, d.Name)
	}
	d.owner = t
	t.members[key] = &d
	return nil
}

// MustRegister is like Register but panics on configuration errors.
// It is meant for registry construction at startup.
func (r *Registry) MustRegister(typeName string, descriptors ...Descriptor) {
	for _, d := range descriptors {
		if err := r.Register(typeName, d); err != nil {
			panic(err)
		}
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Resolve returns the descriptor for member of the given kind on typeName or
// one of its ancestors, provided it is visible under profile.
func (r *Registry) Resolve(typeName, member string, kind Kind, profile Profile) (*Descriptor, bool) {
	t, ok := r.types[typeName]
	if !ok {
		return nil, false
	}
	return t.resolve(memberKey{name: member, kind: kind}, profile)
}

func (t *hostType) resolve(key memberKey, profile Profile) (*Descriptor, bool) {
	for ; t != nil; t = t.parent {
		if d, ok := t.members[key]; ok && d.VisibleIn.Has(profile) {
			return d, true
		}
	}
	return nil, false
}

// isA reports whether t is other or derives from it.
func (t *hostType) isA(other *hostType) bool {
	for ; t != nil; t = t.parent {
		if t == other {
			return true
		}
	}
	return false
}

// TypeVisible reports whether the host type itself exists under profile.
func (r *Registry) TypeVisible(typeName string, profile Profile) bool {
	t, ok := r.types[typeName]
	return ok && t.visibleIn.Has(profile)
}

// TypeFor returns the host type used for elements with the given local name.
// Unmapped elements use HTMLElement; a mapped type that is not visible under
// profile falls back to its nearest visible ancestor.
func (r *Registry) TypeFor(localName string, profile Profile) (string, bool) {
	name, ok := r.elementTypes[strings.ToLower(localName)]
	if !ok {
		name = TypeHTMLElement
	}
	t := r.visibleType(name, profile)
	if t == nil {
		return "", false
	}
	return t.name, true
}

func (r *Registry) visibleType(name string, profile Profile) *hostType {
	for t := r.types[name]; t != nil; t = t.parent {
		if t.visibleIn.Has(profile) {
			return t
		}
	}
	return nil
}

// Members lists the members of typeName visible under profile, sorted by
// name and kind. Members shadowed by a descendant are reported once.
func (r *Registry) Members(typeName string, profile Profile) []Member {
	t, ok := r.types[typeName]
	if !ok {
		return nil
	}
	seen := make(map[memberKey]bool)
	var out []Member
	for cur := t; cur != nil; cur = cur.parent {
		for key, d := range cur.members {
			if seen[key] || !d.VisibleIn.Has(profile) {
				continue
			}
			seen[key] = true
			out = append(out, Member{Name: d.Name, Kind: d.Kind, Owner: cur.name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// TypeNames returns the defined host type names in sorted order.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) hostType(name string) *hostType {
	return r.types[name]
}
