package component

import "strings"

// Owner is the side an entity fights for.
type Owner uint8

const (
	Nature Owner = iota
	Player
	Cpu
)

func (o Owner) String() string {
	switch o {
	case Nature:
		return "Nature"
	case Player:
		return "Player"
	case Cpu:
		return "Cpu"
	}
	return "Unknown"
}

// Kind tags what sort of object an entity is.
type Kind uint8

const (
	KindUnit Kind = iota
	KindOrePatch
	KindOre
	KindStructure
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "Unit"
	case KindOrePatch:
		return "OrePatch"
	case KindOre:
		return "Ore"
	case KindStructure:
		return "Structure"
	}
	return "Unknown"
}

// State is the behavioral state of an entity.
//
//	Alert: idle or attack-moving, auto-engages targets in range
//	Busy:  executing an explicit order
//	Stop:  explicitly stopped, ignores targets until the next order
//	Hold:  holds position, engages only what is already in range
type State uint8

const (
	Alert State = iota
	Busy
	Stop
	Hold
)

func (s State) String() string {
	switch s {
	case Alert:
		return "Alert"
	case Busy:
		return "Busy"
	case Stop:
		return "Stop"
	case Hold:
		return "Hold"
	}
	return "Unknown"
}

// ParseOwner maps an owner name ("player", "cpu", "nature"), ignoring case.
func ParseOwner(s string) (Owner, bool) {
	switch strings.ToLower(s) {
	case "nature":
		return Nature, true
	case "player":
		return Player, true
	case "cpu":
		return Cpu, true
	}
	return 0, false
}
