package entity

import "time"

// EffectiveCheckpoint picks the checkpoint a check filters against, given
// the run's global checkpoint and the item's own. When both are set the
// earlier of the two wins; when only one is set it is used as-is; when
// neither is set there is no lower bound and every update counts as new.
func EffectiveCheckpoint(global, own *time.Time) *time.Time {
	if global != nil && own != nil {
		if own.Before(*global) {
			return own
		}
		return global
	}
	if own != nil {
		return own
	}
	return global
}

// NextCheckpoint decides an item's checkpoint after a check completes:
// found updates move it to now, an item with no checkpoint of its own
// inherits the global one even when nothing was found, and otherwise it
// is left untouched. Failed checks count as "nothing found".
func NextCheckpoint(own, global *time.Time, foundUpdates bool, now time.Time) *time.Time {
	if foundUpdates {
		return &now
	}
	if own == nil {
		return global
	}
	return own
}

// Reconcile applies NextCheckpoint to the item in place. It must only be
// called by the single goroutine checking this item.
func (it *Item) Reconcile(global *time.Time, foundUpdates bool, now time.Time) {
	it.LastChecked = NextCheckpoint(it.LastChecked, global, foundUpdates, now)
}
