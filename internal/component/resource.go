package component

// ResourceKind identifies what a ResourceComponent yields. The original
// source (api/src/resources/minerals.rs) models this as an open enum even
// though Energy is the only variant the base spec names; kept open so a
// future kind is a data addition, not a storage migration.
type ResourceKind int

const (
	ResourceEnergy ResourceKind = iota
)

// ResourceComponent is a mineable resource's current and maximum yield.
type ResourceComponent struct {
	Kind      ResourceKind
	Energy    int32
	EnergyMax int32
}

const MineAmountPerTick = 10

// MineableAmount returns how much can be transferred this tick, capped by
// the per-tick mine rate, the resource's remaining energy, and the
// miner's free carry capacity.
func MineableAmount(resourceEnergy, carryFree int32) int32 {
	amount := int32(MineAmountPerTick)
	if resourceEnergy < amount {
		amount = resourceEnergy
	}
	if carryFree < amount {
		amount = carryFree
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
