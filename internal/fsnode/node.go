// Package fsnode models the entries of the simulated file tree.
//
// A Node is either a *File or a *Directory. Only directories carry children,
// so a file can never gain entries. The parent link is a plain back-pointer
// used for path reconstruction; ownership runs from the root downwards.
package fsnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOperation is returned when a child is added to a file.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrNegativeSize is returned by NewFile for sizes below zero.
	ErrNegativeSize = errors.New("negative file size")
)

type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "Dir"
	}
	return "File"
}

// Node is implemented by *File and *Directory only.
type Node interface {
	Name() string
	Kind() Kind
	Parent() *Directory
	Path() string
	// Size is in KB. For directories it is the recursive sum of all files.
	Size() int64
	Metadata() map[string]string
	AddChild(child Node) error

	setParent(parent *Directory)
}

type base struct {
	name     string
	metadata map[string]string
	parent   *Directory
}

func (b *base) Name() string { return b.name }
func (b *base) Parent() *Directory { return b.parent }
func (b *base) Metadata() map[string]string { return b.metadata }
func (b *base) setParent(parent *Directory) { b.parent = parent }

func (b *base) path() string {
	if b.parent == nil {
		return b.name
	}
	return b.parent.Path() + "/" + b.name
}

// File is a leaf carrying a size and free-form metadata.
type File struct {
	base
	size int64
}

// NewFile creates a detached file. A nil metadata map is replaced by an
// empty one.
func NewFile(name string, size int64, metadata map[string]string) (*File, error) {
	if size < 0 {
		return nil, fmt.Errorf("file %q: %w", name, ErrNegativeSize)
	}
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return &File{
		base: base{name: name, metadata: metadata},
		size: size,
	}, nil
}

func (f *File) Kind() Kind { return KindFile }
func (f *File) Size() int64 { return f.size }
func (f *File) Path() string { return f.path() }

// Extension returns the "extension" metadata value, if any.
func (f *File) Extension() (string, bool) {
	ext, ok := f.metadata["extension"]
	return ext, ok
}

func (f *File) AddChild(child Node) error {
	return fmt.Errorf("cannot add %q to file %q: %w", child.Name(), f.name, ErrInvalidOperation)
}

// Directory is an interior node. Children are kept in insertion order.
type Directory struct {
	base
	children map[string]Node
	order    []string
}

func NewDirectory(name string) *Directory {
	return &Directory{
		base:     base{name: name, metadata: make(map[string]string)},
		children: make(map[string]Node),
	}
}

func (d *Directory) Kind() Kind { return KindDirectory }
func (d *Directory) Path() string { return d.path() }

// Size is recomputed on every call; nothing is cached.
func (d *Directory) Size() int64 {
	var total int64
	for _, name := range d.order {
		total += d.children[name].Size()
	}
	return total
}

// AddChild attaches child under its own name. An existing child with the
// same name is replaced in place.
func (d *Directory) AddChild(child Node) error {
	name := child.Name()
	if _, exists := d.children[name]; !exists {
		d.order = append(d.order, name)
	}
	d.children[name] = child
	child.setParent(d)
	return nil
}

// Child returns the direct child with the given name.
func (d *Directory) Child(name string) (Node, bool) {
	child, ok := d.children[name]
	return child, ok
}

// Children returns the direct children in insertion order.
func (d *Directory) Children() []Node {
	nodes := make([]Node, 0, len(d.order))
	for _, name := range d.order {
		nodes = append(nodes, d.children[name])
	}
	return nodes
}

func (d *Directory) Len() int {
	return len(d.order)
}

// JoinPath joins segments the same way Path does.
func JoinPath(segments []string) string {
	return strings.Join(segments, "/")
}
