package combat

import "fmt"

// ActionType identifies what the player does on their turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionUseItem
	ActionFlee
)

// String returns the human-readable name of the ActionType.
// Postcondition: returns "attack", "use", "flee", or "unknown".
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionUseItem:
		return "use"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is one player choice. ItemName is only read for ActionUseItem.
type Action struct {
	Type     ActionType
	ItemName string
}

// Attack returns an attack action.
func Attack() Action { return Action{Type: ActionAttack} }

// UseItem returns an action that uses the named item.
func UseItem(name string) Action { return Action{Type: ActionUseItem, ItemName: name} }

// Flee returns a flee attempt.
func Flee() Action { return Action{Type: ActionFlee} }

func (a Action) String() string {
	if a.Type == ActionUseItem {
		return fmt.Sprintf("use %q", a.ItemName)
	}
	return a.Type.String()
}
