package js

import (
	"fmt"

	"github.com/dop251/goja"
)

// Kind is the kind of member a descriptor exposes.
type Kind uint8

const (
	KindGetter Kind = iota
	KindSetter
	KindCallable
)

func (k Kind) String() string {
	switch k {
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	case KindCallable:
		return "callable"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// GetterFunc reads a property from the host object's node. The result is
// boxed into a script value by the bridge.
type GetterFunc func(h *HostObject) (any, error)

// SetterFunc applies a script value to the host object's node. Coercion is
// the setter's job.
type SetterFunc func(h *HostObject, v goja.Value) error

// MethodFunc implements a callable member.
type MethodFunc func(h *HostObject, args []goja.Value) (any, error)

// Descriptor declares a single member of a host type and the profiles under
// which it is visible. Exactly the function matching Kind is set.
type Descriptor struct {
	Name      string
	Kind      Kind
	VisibleIn ProfileSet

	Get  GetterFunc
	Set  SetterFunc
	Call MethodFunc

	// owner is the host type the descriptor was registered on.
	owner *hostType
}

// Getter declares a getter member.
func Getter(name string, visibleIn ProfileSet, fn GetterFunc) Descriptor {
	return Descriptor{Name: name, Kind: KindGetter, VisibleIn: visibleIn, Get: fn}
}

// Setter declares a setter member.
func Setter(name string, visibleIn ProfileSet, fn SetterFunc) Descriptor {
	return Descriptor{Name: name, Kind: KindSetter, VisibleIn: visibleIn, Set: fn}
}

// Method declares a callable member.
func Method(name string, visibleIn ProfileSet, fn MethodFunc) Descriptor {
	return Descriptor{Name: name, Kind: KindCallable, VisibleIn: visibleIn, Call: fn}
}

// Owner returns the name of the host type the descriptor belongs to.
func (d *Descriptor) Owner() string {
	if d.owner == nil {
		return ""
	}
	return d.owner.name
}

func (d *Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: descriptor without a name", ErrConfiguration)
	}
	if d.VisibleIn.Empty() {
		return fmt.Errorf("%w: %s %q has an empty profile set", ErrConfiguration, d.Kind, d.Name)
	}
	if !d.VisibleIn.Valid() {
		return fmt.Errorf("%w: %s %q has unknown profiles in %#x", ErrConfiguration, d.Kind, d.Name, uint32(d.VisibleIn))
	}

	var ok bool
	switch d.Kind {
	case KindGetter:
		ok = d.Get != nil && d.Set == nil && d.Call == nil
	case KindSetter:
		ok = d.Set != nil && d.Get == nil && d.Call == nil
	case KindCallable:
		ok = d.Call != nil && d.Get == nil && d.Set == nil
	default:
		return fmt.Errorf("%w: %q has unknown kind %s", ErrConfiguration, d.Name, d.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s %q must set exactly its own implementation", ErrConfiguration, d.Kind, d.Name)
	}
	return nil
}
