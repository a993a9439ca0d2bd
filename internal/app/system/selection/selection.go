// internal/app/system/selection/selection.go
package selection

import (
	"github.com/dalemusser/domainhub/internal/app/system/hierarchy"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// State is the full state of a multi-select hierarchical picker: which nodes
// are chosen and which are expanded. It is a value passed into and returned
// from pure transition functions, so picker behavior is testable without a
// UI harness. Selection and expansion are independent sets: selecting a
// parent never selects children, and collapse hides but never deselects.
type State struct {
	Selected map[primitive.ObjectID]bool
	Expanded map[primitive.ObjectID]bool
}

// NewState returns an empty picker state.
func NewState() State {
	return State{
		Selected: map[primitive.ObjectID]bool{},
		Expanded: map[primitive.ObjectID]bool{},
	}
}

func (s State) clone() State {
	next := State{
		Selected: make(map[primitive.ObjectID]bool, len(s.Selected)),
		Expanded: make(map[primitive.ObjectID]bool, len(s.Expanded)),
	}
	for id := range s.Selected {
		next.Selected[id] = true
	}
	for id := range s.Expanded {
		next.Expanded[id] = true
	}
	return next
}

// ToggleSelect flips the selection of id and returns the new state.
//
// When a node with children is newly selected it is also expanded, revealing
// the sub-locations of a just-chosen category. Deselecting never collapses
// anything. The input state is not modified.
func ToggleSelect(st State, forest []*hierarchy.Node, id primitive.ObjectID) State {
	next := st.clone()
	if next.Selected[id] {
		delete(next.Selected, id)
		return next
	}
	next.Selected[id] = true
	if n := find(forest, id); n != nil && len(n.Children) > 0 {
		next.Expanded[id] = true
	}
	return next
}

// ToggleExpand flips the expansion of id and returns the new state. Purely
// presentational; selection is untouched.
func ToggleExpand(st State, id primitive.ObjectID) State {
	next := st.clone()
	if next.Expanded[id] {
		delete(next.Expanded, id)
	} else {
		next.Expanded[id] = true
	}
	return next
}

// Row is one rendered line of the picker.
type Row struct {
	ID          primitive.ObjectID `json:"id"`
	Label       string             `json:"label"`
	Depth       int                `json:"depth"`
	IsSelected  bool               `json:"is_selected"`
	IsExpanded  bool               `json:"is_expanded"`
	HasChildren bool               `json:"has_children"`
}

// Render flattens the forest into display rows, pre-order, parents before
// children. Children are emitted only under expanded parents.
func Render(forest []*hierarchy.Node, st State) []Row {
	var rows []Row
	var walk func(nodes []*hierarchy.Node, depth int)
	walk = func(nodes []*hierarchy.Node, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{
				ID:          n.ID,
				Label:       hierarchy.Label(n.Domain),
				Depth:       depth,
				IsSelected:  st.Selected[n.ID],
				IsExpanded:  st.Expanded[n.ID],
				HasChildren: len(n.Children) > 0,
			})
			if st.Expanded[n.ID] {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(forest, 0)
	return rows
}

// Chosen returns the selected nodes in pre-order, regardless of expansion.
// This backs the aggregated "N domains chosen" display above the picker.
func Chosen(forest []*hierarchy.Node, st State) []Row {
	var rows []Row
	var walk func(nodes []*hierarchy.Node, depth int)
	walk = func(nodes []*hierarchy.Node, depth int) {
		for _, n := range nodes {
			if st.Selected[n.ID] {
				rows = append(rows, Row{
					ID:          n.ID,
					Label:       hierarchy.Label(n.Domain),
					Depth:       depth,
					IsSelected:  true,
					IsExpanded:  st.Expanded[n.ID],
					HasChildren: len(n.Children) > 0,
				})
			}
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
	return rows
}

func find(nodes []*hierarchy.Node, id primitive.ObjectID) *hierarchy.Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}
