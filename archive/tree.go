// Package archive implements the `darc` container codec: a tree of
// named directories and files, addressable by path, with byte-exact
// binary round-trip.
//
// The entry tree is modeled as an arena of nodes indexed by EntryID
// rather than pointer-linked nodes, per the Design Notes in spec.md
// §9: this avoids cyclic parent/child ownership that a direct port
// of the source's parent-pointer tree would require. Traversals
// yield borrowed Entry views over (*Tree, EntryID).
package archive

import (
	"iter"
	"strings"

	"github.com/msgstudio/lms/errs"
)

// EntryID indexes a node within a Tree's arena. The zero value
// (RootID) always refers to the tree's root directory.
type EntryID uint32

// RootID is the EntryID of the tree's root directory.
const RootID EntryID = 0

type node struct {
	name      string
	isDir     bool
	parent    EntryID
	hasParent bool
	children  []EntryID
	data      []byte
}

// Tree owns the full entry arena and is the root container parsed
// from, or emitted to, `darc` bytes.
type Tree struct {
	nodes []node
}

// NewTree returns an empty tree containing only the root directory.
func NewTree() *Tree {
	t := &Tree{nodes: make([]node, 0, 1)}
	t.nodes = append(t.nodes, node{name: "", isDir: true})
	return t
}

// Entry is a borrowed view over one node of a Tree.
type Entry struct {
	tree *Tree
	id   EntryID
}

// Root returns a view over the tree's root directory.
func (t *Tree) Root() Entry { return Entry{tree: t, id: RootID} }

// Entry returns a view over the node with the given id.
func (t *Tree) Entry(id EntryID) Entry { return Entry{tree: t, id: id} }

func (e Entry) n() *node { return &e.tree.nodes[e.id] }

// ID returns this entry's arena index.
func (e Entry) ID() EntryID { return e.id }

// Name returns the entry's own name (no path separators).
func (e Entry) Name() string { return e.n().name }

// IsDir reports whether this entry is a directory.
func (e Entry) IsDir() bool { return e.n().isDir }

// Data returns a file entry's raw payload. Calling this on a
// directory returns errs.ErrInvalidEntry.
func (e Entry) Data() ([]byte, error) {
	n := e.n()
	if n.isDir {
		return nil, errs.ErrInvalidEntry
	}
	return n.data, nil
}

// SetData overwrites a file entry's payload. Calling this on a
// directory returns errs.ErrInvalidEntry.
func (e Entry) SetData(data []byte) error {
	n := e.n()
	if n.isDir {
		return errs.ErrInvalidEntry
	}
	n.data = data
	return nil
}

// Length mirrors spec.md's ArchiveEntry.length: for a directory it's
// the count of its subtree nodes including itself; for a file it's
// the payload size.
func (e Entry) Length() int {
	n := e.n()
	if n.isDir {
		return e.subtreeSize()
	}
	return len(n.data)
}

func (e Entry) subtreeSize() int {
	total := 1
	for _, childID := range e.n().children {
		total += e.tree.Entry(childID).subtreeSize()
	}
	return total
}

// Parent returns the entry's parent and true, or the zero Entry and
// false if this is the root.
func (e Entry) Parent() (Entry, bool) {
	n := e.n()
	if !n.hasParent {
		return Entry{}, false
	}
	return e.tree.Entry(n.parent), true
}

// Children returns the ordered child IDs of a directory entry. Calling
// this on a file returns errs.ErrInvalidEntry.
func (e Entry) Children() ([]EntryID, error) {
	n := e.n()
	if !n.isDir {
		return nil, errs.ErrInvalidEntry
	}
	return n.children, nil
}

// Path returns the `/`-joined sequence of ancestor names down to and
// including this entry, per spec.md §3.
func (e Entry) Path() string {
	var parts []string
	cur := e
	for {
		parts = append(parts, cur.Name())
		p, ok := cur.Parent()
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Preorder walks the tree depth-first, root first then children in
// order — the layout order spec.md §4.1 requires for the file table.
func (t *Tree) Preorder() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		var walk func(id EntryID) bool
		walk = func(id EntryID) bool {
			e := t.Entry(id)
			if !yield(e) {
				return false
			}
			if e.IsDir() {
				for _, c := range e.n().children {
					if !walk(c) {
						return false
					}
				}
			}
			return true
		}
		walk(RootID)
	}
}

// Entries is the public iterator named in spec.md §6
// (Archive.entries()): a full pre-order walk of the tree.
func (t *Tree) Entries() iter.Seq[Entry] { return t.Preorder() }

// addChild appends child as the last child of dir and returns its
// new EntryID.
func (t *Tree) addChild(dirID EntryID, n node) EntryID {
	n.parent = dirID
	n.hasParent = true
	id := EntryID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.nodes[dirID].children = append(t.nodes[dirID].children, id)
	return id
}

// AddFile inserts a file at path, creating any missing intermediate
// directories, mirroring original_source/lib/darc.py's add_file.
// path is `/`-separated and may have a leading slash.
func (t *Tree) AddFile(path string, data []byte) Entry {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	dirID := RootID
	for _, part := range parts[:len(parts)-1] {
		dirID = t.ensureDir(dirID, part)
	}

	fileName := parts[len(parts)-1]
	id := t.addChild(dirID, node{name: fileName, isDir: false, data: data})
	return t.Entry(id)
}

func (t *Tree) ensureDir(parent EntryID, name string) EntryID {
	for _, c := range t.nodes[parent].children {
		if t.nodes[c].isDir && t.nodes[c].name == name {
			return c
		}
	}
	return t.addChild(parent, node{name: name, isDir: true})
}

// Remove detaches an entry from its parent's child list. Supplements
// the distilled spec with original_source/lib/darc.py's
// remove_child, useful when an editor collaborator deletes a file
// from an already-parsed tree before re-emitting it.
func (e Entry) Remove() error {
	p, ok := e.Parent()
	if !ok {
		return errs.ErrInvalidEntry
	}
	pn := p.n()
	for i, c := range pn.children {
		if c == e.id {
			pn.children = append(pn.children[:i], pn.children[i+1:]...)
			return nil
		}
	}
	return errs.ErrInvalidEntry
}
