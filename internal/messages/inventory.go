package messages

// Inventory messages for store adapters and reconciliation.
const (
	InventoryRegistryRequired    = "inventory normalization requires a loaded game registry"
	InventoryUnknownStoreFmt     = "unknown store kind %q"
	InventoryDuplicateInStoreFmt = "store %s: entries %q and %q both resolve to game %q"

	ReconcileSameStoreTwiceFmt = "game %q appears twice for store %s"
	ReconcileGroupTooLargeFmt  = "game %q resolved to %d occurrences; at most one per store is possible"

	ReconcilePrompterFailedFmt = "resolving duplicate %q: %w"
	ReconcileUnknownChoiceFmt  = "unknown resolution choice %d for game %q"
)
