package component

// WorldRootTag marks the single entity every level entity and spawned enemy
// hangs off. Destroying it unloads the level.
type WorldRootTag struct{}

var WorldRootTagComponent = NewComponent[WorldRootTag]()

// TowerSlotTag marks a buildable tower position.
type TowerSlotTag struct{}

var TowerSlotTagComponent = NewComponent[TowerSlotTag]()
