package football

// Role is the part a unit plays in the game.
type Role int

// Roles in spawn order, followed by the referee.
const (
	RoleLowDefense Role = iota
	RoleMidDefense
	RoleOffense
	RoleHiDefense
	RoleCrazyFan
	RoleReferee
)

var roleInfo = [...]struct {
	name     string
	priority Priority
}{
	RoleLowDefense: {"defense-low", PriorityLowDefense},
	RoleMidDefense: {"defense-mid", PriorityMidDefense},
	RoleOffense:    {"offense", PriorityOffense},
	RoleHiDefense:  {"defense-hi", PriorityHiDefense},
	RoleCrazyFan:   {"crazy-fan", PriorityCrazyFan},
	RoleReferee:    {"referee", PriorityReferee},
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleInfo) {
		return "unknown"
	}
	return roleInfo[r].name
}

// Priority returns the scheduling class the role runs at.
func (r Role) Priority() Priority {
	return roleInfo[r].priority
}
