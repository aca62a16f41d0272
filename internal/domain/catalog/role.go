package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// Role identifies one of the seven common (core internal) slots every ship has.
type Role int

const (
	RolePowerPlant Role = iota
	RoleThrusters
	RoleFrameShiftDrive
	RoleLifeSupport
	RolePowerDistributor
	RoleSensors
	RoleFuelTank
)

// CommonRoleCount is the number of common slots on every ship
const CommonRoleCount = 7

type roleInfo struct {
	name  string
	group Group
	// exactClass roles only accept components whose class equals the slot class
	exactClass bool
}

var roleTable = [CommonRoleCount]roleInfo{
	RolePowerPlant:       {name: "power plant", group: GroupPowerPlant},
	RoleThrusters:        {name: "thrusters", group: GroupThrusters},
	RoleFrameShiftDrive:  {name: "frame shift drive", group: GroupFrameShiftDrive},
	RoleLifeSupport:      {name: "life support", group: GroupLifeSupport, exactClass: true},
	RolePowerDistributor: {name: "power distributor", group: GroupPowerDistributor},
	RoleSensors:          {name: "sensors", group: GroupSensors, exactClass: true},
	RoleFuelTank:         {name: "fuel tank", group: GroupFuelTank},
}

// Roles returns all common roles in canonical order
func Roles() []Role {
	roles := make([]Role, CommonRoleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// Valid reports whether r is one of the seven common roles
func (r Role) Valid() bool {
	return r >= 0 && int(r) < CommonRoleCount
}

// Group returns the component group that serves this role
func (r Role) Group() Group {
	return roleTable[r].group
}

// ExactClass reports whether the role requires an exact class match
func (r Role) ExactClass() bool {
	return roleTable[r].exactClass
}

// MinClass returns the smallest class legal in a slot of this role and class
func (r Role) MinClass(slotClass int) int {
	if r.ExactClass() {
		return slotClass
	}
	return 0
}

func (r Role) String() string {
	if !r.Valid() {
		return "unknown role"
	}
	return roleTable[r].name
}

// RoleForGroup returns the common role served by a group
func RoleForGroup(g Group) (Role, bool) {
	for i, info := range roleTable {
		if info.group == g {
			return Role(i), true
		}
	}
	return 0, false
}

// ParseRole accepts a role name ("frame shift drive", "frame_shift_drive")
// or its canonical index
func ParseRole(s string) (Role, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if Role(n).Valid() {
			return Role(n), nil
		}
		return 0, shared.NewValidationError("role", fmt.Sprintf("role index %d out of range", n))
	}
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
	for i, info := range roleTable {
		if info.name == name {
			return Role(i), nil
		}
	}
	return 0, shared.NewValidationError("role", fmt.Sprintf("unknown role %q", s))
}
