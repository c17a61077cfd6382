package dom

// RemovalObserver receives notifications when a subtree is removed from its
// parent. Only the subtree root is reported; descendants go with it.
//
// Observers are registered per document, so independent documents never
// share observer state.
type RemovalObserver interface {
	OnNodeRemoved(parent, removed *Node)
}

// AddRemovalObserver registers an observer for removals under this document.
func (d *Document) AddRemovalObserver(observer RemovalObserver) {
	if observer == nil {
		return
	}
	dd := d.AsNode().documentData
	dd.observers = append(dd.observers, observer)
}

// RemoveRemovalObserver unregisters an observer.
func (d *Document) RemoveRemovalObserver(observer RemovalObserver) {
	dd := d.AsNode().documentData
	for i, o := range dd.observers {
		if o == observer {
			dd.observers = append(dd.observers[:i], dd.observers[i+1:]...)
			return
		}
	}
}

// notifyRemoval notifies the observers of the parent's document.
func notifyRemoval(parent, removed *Node) {
	if parent == nil || parent.ownerDoc == nil {
		return
	}
	dd := parent.ownerDoc.AsNode().documentData
	if dd == nil {
		return
	}
	// Copy so observers may unregister themselves while being notified.
	observers := append([]RemovalObserver(nil), dd.observers...)
	for _, o := range observers {
		o.OnNodeRemoved(parent, removed)
	}
}
