package editor

import (
	"fmt"
	"strings"
)

// Action is an edit the user can pick after clicking on the ground.
type Action int

// Edit actions. Insert actions are offered when the click lands inside the
// path; add actions when it lands outside.
const (
	ActionInsertPoint Action = iota
	ActionInsertControlPoint
	ActionAddStart
	ActionAddEnd
)

var actionNames = map[Action]string{
	ActionInsertPoint:        "insert-point",
	ActionInsertControlPoint: "insert-control",
	ActionAddStart:           "add-start",
	ActionAddEnd:             "add-end",
}

// String returns the action's command-line name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction looks up an action by its command-line name.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if strings.EqualFold(s, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
