// internal/app/system/hierarchy/hierarchy.go
package hierarchy

import (
	"strings"

	"github.com/dalemusser/domainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PathUnavailable is what FullPath returns when the requested domain is not
// in the map. It is a display value, not an error; callers show it as-is.
const PathUnavailable = "path unavailable"

// PathSeparator joins the labels of a root-to-node walk.
const PathSeparator = " > "

// Node is a Domain decorated with its children. Nodes are transient: the
// forest is rebuilt from the flat stored list on every fetch and never
// mutated in place across fetches.
type Node struct {
	models.Domain
	Children []*Node `json:"children"`
}

// MapByID indexes a flat domain list by id.
func MapByID(domains []models.Domain) map[primitive.ObjectID]models.Domain {
	byID := make(map[primitive.ObjectID]models.Domain, len(domains))
	for _, d := range domains {
		byID[d.ID] = d
	}
	return byID
}

// Build converts a flat domain list into a forest of nested nodes.
//
// Two passes: allocate a node per domain, then link each non-root node into
// its parent's children list. A domain whose parent_id does not resolve
// within the input is an orphan and is dropped from the forest: neither
// promoted to root nor reported as an error.
//
// Input order is preserved: feed the list sorted by level then order_index
// and both roots and children come out in display order.
func Build(domains []models.Domain) []*Node {
	nodes := make(map[primitive.ObjectID]*Node, len(domains))
	for _, d := range domains {
		nodes[d.ID] = &Node{Domain: d}
	}

	var roots []*Node
	for _, d := range domains {
		n := nodes[d.ID]
		if d.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := nodes[*d.ParentID]
		if !ok {
			continue // orphan
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// Label is the display label of a domain: icon and name, trimmed and
// space-joined.
func Label(d models.Domain) string {
	return strings.TrimSpace(strings.TrimSpace(d.Icon) + " " + strings.TrimSpace(d.Name))
}

// FullPath walks from the target domain up through parent references and
// returns the root-to-node labels joined with PathSeparator, e.g.
// "🏀 Sport > Location 1". Unknown ids yield PathUnavailable. A broken
// parent reference ends the walk at the last resolvable ancestor.
func FullPath(byID map[primitive.ObjectID]models.Domain, id primitive.ObjectID) string {
	d, ok := byID[id]
	if !ok {
		return PathUnavailable
	}

	labels := []string{Label(d)}
	seen := map[primitive.ObjectID]bool{d.ID: true}
	for d.ParentID != nil {
		p, ok := byID[*d.ParentID]
		if !ok || seen[p.ID] {
			break
		}
		labels = append([]string{Label(p)}, labels...)
		seen[p.ID] = true
		d = p
	}
	return strings.Join(labels, PathSeparator)
}

// IsDescendant reports whether walking up from candidateID via parent
// references ever reaches ancestorID. A domain is not its own descendant, so
// IsDescendant(x, x) is false; self-parenting must be rejected separately.
func IsDescendant(byID map[primitive.ObjectID]models.Domain, candidateID, ancestorID primitive.ObjectID) bool {
	d, ok := byID[candidateID]
	if !ok {
		return false
	}
	seen := map[primitive.ObjectID]bool{d.ID: true}
	for d.ParentID != nil {
		pid := *d.ParentID
		if pid == ancestorID {
			return true
		}
		if seen[pid] {
			return false
		}
		seen[pid] = true
		p, ok := byID[pid]
		if !ok {
			return false
		}
		d = p
	}
	return false
}

// EligibleParents returns the domains that may become the new parent of the
// given domain: everything except the domain itself and its descendants.
// Moving a domain under its own subtree would create a parent cycle.
func EligibleParents(domains []models.Domain, id primitive.ObjectID) []models.Domain {
	byID := MapByID(domains)
	out := make([]models.Domain, 0, len(domains))
	for _, d := range domains {
		if d.ID == id || IsDescendant(byID, d.ID, id) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Group returns the id set used to answer "this category or any of its
// sub-locations": the domain itself plus its direct children. Callers pass
// the result into a membership query against contact assignments.
func Group(domains []models.Domain, rootID primitive.ObjectID) []primitive.ObjectID {
	ids := []primitive.ObjectID{rootID}
	for _, d := range domains {
		if d.ParentID != nil && *d.ParentID == rootID {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Descendants returns every transitive descendant of id, breadth-first.
// Used when re-parenting to re-derive levels across the moved subtree.
func Descendants(domains []models.Domain, id primitive.ObjectID) []models.Domain {
	children := make(map[primitive.ObjectID][]models.Domain)
	for _, d := range domains {
		if d.ParentID != nil {
			children[*d.ParentID] = append(children[*d.ParentID], d)
		}
	}

	var out []models.Domain
	queue := []primitive.ObjectID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			out = append(out, c)
			queue = append(queue, c.ID)
		}
	}
	return out
}
