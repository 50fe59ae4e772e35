package ecs

import (
	"fmt"

	"github.com/milk9111/towerdefence/ecs/component"
)

// Parent links an entity to the entity that owns it. Destroying a parent with
// DestroyRecursive destroys the whole subtree.
type Parent struct {
	Entity Entity
}

// Children lists the entities parented under an entity, in insertion order.
type Children struct {
	Entities []Entity
}

var ParentComponent = component.NewComponent[Parent]()
var ChildrenComponent = component.NewComponent[Children]()

// SetParent attaches child under parent, detaching it from any previous
// parent first.
func SetParent(w *World, child, parent Entity) error {
	if !IsAlive(w, child) || !IsAlive(w, parent) {
		return component.ErrEntityNotAlive
	}
	if child == parent {
		return fmt.Errorf("ecs: entity %s cannot parent itself", child)
	}
	if prev, ok := Get(w, child, ParentComponent.Kind()); ok {
		if prev.Entity == parent {
			return nil
		}
		detach(w, prev.Entity, child)
	}
	if err := Add(w, child, ParentComponent.Kind(), &Parent{Entity: parent}); err != nil {
		return err
	}
	children, ok := Get(w, parent, ChildrenComponent.Kind())
	if !ok {
		children = &Children{}
		if err := Add(w, parent, ChildrenComponent.Kind(), children); err != nil {
			return err
		}
	}
	children.Entities = append(children.Entities, child)
	return nil
}

// ParentOf returns the parent of e, if any.
func ParentOf(w *World, e Entity) (Entity, bool) {
	p, ok := Get(w, e, ParentComponent.Kind())
	if !ok || !IsAlive(w, p.Entity) {
		return 0, false
	}
	return p.Entity, true
}

// DestroyRecursive destroys e and every descendant. It returns the number of
// entities destroyed.
func DestroyRecursive(w *World, e Entity) int {
	if !IsAlive(w, e) {
		return 0
	}
	if p, ok := Get(w, e, ParentComponent.Kind()); ok {
		detach(w, p.Entity, e)
	}
	return destroyTree(w, e)
}

func destroyTree(w *World, e Entity) int {
	n := 0
	if children, ok := Get(w, e, ChildrenComponent.Kind()); ok {
		for _, c := range append([]Entity(nil), children.Entities...) {
			n += destroyTree(w, c)
		}
	}
	if DestroyEntity(w, e) {
		n++
	}
	return n
}

func detach(w *World, parent, child Entity) {
	children, ok := Get(w, parent, ChildrenComponent.Kind())
	if !ok {
		return
	}
	for i, c := range children.Entities {
		if c == child {
			children.Entities = append(children.Entities[:i], children.Entities[i+1:]...)
			return
		}
	}
}
