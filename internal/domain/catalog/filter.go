package catalog

// Pool maps component id to record
type Pool map[string]*ComponentRecord

// Filter returns the records of pool whose class lies in [minClass, maxClass]
// and whose mass ceiling admits shipMass. An empty (non-nil) pool is returned
// when nothing qualifies.
func Filter(pool Pool, maxClass, minClass int, shipMass float64) Pool {
	filtered := make(Pool)
	for id, record := range pool {
		if record.Class < minClass || record.Class > maxClass {
			continue
		}
		if !record.FitsShipMass(shipMass) {
			continue
		}
		filtered[id] = record
	}
	return filtered
}

// HardpointMinClass returns the smallest class legal in a hardpoint of the
// given class: utility mounts take only class 0, weapon mounts class 1 and up.
func HardpointMinClass(slotClass int) int {
	if slotClass == 0 {
		return 0
	}
	return 1
}
