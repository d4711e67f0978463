package model

import (
	"sort"
	"strings"

	"netbelge/internal/storagepath"
)

// Department is a node in the organization tree. Path is derived from Name and
// Parent, when loaded, links to the parent node so FullPath can be computed.
type Department struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ParentID    *string `json:"parent_id"`
	Path        string  `json:"path"`
	Description string  `json:"description"`
	Audit

	Parent *Department `json:"-"`
}

// RefreshPath recomputes Path from the current Name.
func (d *Department) RefreshPath() {
	d.Path = storagepath.Normalize(d.Name)
}

// FullPath joins the Path of every ancestor, root first, with "/". Ancestors
// that were not loaded are missing from the result.
func (d *Department) FullPath() string {
	var segments []string
	seen := make(map[*Department]bool)
	for n := d; n != nil && !seen[n]; n = n.Parent {
		seen[n] = true
		segments = append(segments, n.Path)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}

// LinkDepartments indexes departments by ID and points each one at its parent
// when the parent is part of the same slice.
func LinkDepartments(departments []Department) map[string]*Department {
	index := make(map[string]*Department, len(departments))
	for i := range departments {
		index[departments[i].ID] = &departments[i]
	}
	for _, d := range index {
		if d.ParentID != nil {
			d.Parent = index[*d.ParentID]
		}
	}
	return index
}

// DepartmentNode is a department with its children, used for tree listings.
type DepartmentNode struct {
	*Department
	FullPath string            `json:"full_path"`
	Children []*DepartmentNode `json:"children"`
}

// BuildDepartmentTree links a flat list into a forest. Siblings are ordered by
// name. Departments whose parent is missing from the list become roots.
func BuildDepartmentTree(departments []Department) []*DepartmentNode {
	index := LinkDepartments(departments)

	nodes := make(map[string]*DepartmentNode, len(index))
	for id, d := range index {
		nodes[id] = &DepartmentNode{Department: d, FullPath: d.FullPath(), Children: []*DepartmentNode{}}
	}

	roots := make([]*DepartmentNode, 0)
	for _, n := range nodes {
		if n.Parent == nil {
			roots = append(roots, n)
			continue
		}
		parent := nodes[n.Parent.ID]
		parent.Children = append(parent.Children, n)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*DepartmentNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Name != nodes[j].Name {
			return nodes[i].Name < nodes[j].Name
		}
		return nodes[i].ID < nodes[j].ID
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// IsDescendant reports whether candidate sits below ancestorID in the tree
// described by index.
func IsDescendant(index map[string]*Department, ancestorID, candidateID string) bool {
	seen := make(map[string]bool)
	for id := candidateID; id != "" && !seen[id]; {
		seen[id] = true
		d, ok := index[id]
		if !ok || d.ParentID == nil {
			return false
		}
		if *d.ParentID == ancestorID {
			return true
		}
		id = *d.ParentID
	}
	return false
}
