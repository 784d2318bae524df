// Package fs implements the in-memory filesystem the terminal operates on.
//
// The tree has no upward links: every operation takes a path, normalizes it
// with [Resolve] and walks down from the root. Operations that can fail
// validate the whole path before they mutate anything.
package fs

import (
	"sort"
	"time"
)

type FileSystem struct {
	root *Node
	now  func() time.Time
}

// Entry is one row of a directory listing.
type Entry struct {
	Name string
	Type FileType
}

type Option func(*FileSystem)

// WithClock sets the time source used for modification times.
func WithClock(now func() time.Time) Option {
	return func(fs *FileSystem) { fs.now = now }
}

// New returns a filesystem holding only an empty root directory.
func New(opts ...Option) *FileSystem {
	fs := &FileSystem{now: time.Now}
	for _, opt := range opts {
		opt(fs)
	}
	fs.root = NewDirectory("root", fs.now())
	return fs
}

// Node returns the node at path. Missing segments and segments that pass
// through a regular file are reported as ErrNotExist.
func (fs *FileSystem) Node(path string) (*Node, error) {
	cur := fs.root
	for _, seg := range segments(path) {
		if !cur.IsDir() {
			return nil, pathErr("stat", Resolve("/", path), ErrNotExist)
		}
		child, ok := cur.Children[seg]
		if !ok {
			return nil, pathErr("stat", Resolve("/", path), ErrNotExist)
		}
		cur = child
	}
	return cur, nil
}

// List returns the entries of the directory at path sorted by name.
func (fs *FileSystem) List(path string) ([]Entry, error) {
	dir, err := fs.Node(path)
	if err != nil {
		return nil, pathErr("ls", Resolve("/", path), ErrNotExist)
	}
	if !dir.IsDir() {
		return nil, pathErr("ls", Resolve("/", path), ErrNotDir)
	}

	entries := make([]Entry, 0, len(dir.Children))
	for name, child := range dir.Children {
		entries = append(entries, Entry{Name: name, Type: child.Type})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ReadFile returns the content of the regular file at path.
func (fs *FileSystem) ReadFile(path string) (string, error) {
	n, err := fs.Node(path)
	if err != nil {
		return "", pathErr("read", Resolve("/", path), ErrNotExist)
	}
	if n.IsDir() {
		return "", pathErr("read", Resolve("/", path), ErrIsDir)
	}
	return n.Content, nil
}

// WriteFile creates, overwrites or appends to the file at path, creating
// missing parent directories. A new file is owned by owner ("root" when
// empty); an existing file keeps its owner.
func (fs *FileSystem) WriteFile(path, content string, appendMode bool, owner string) error {
	p := Resolve("/", path)
	if p == "/" {
		return pathErr("write", p, ErrIsDir)
	}
	if err := fs.checkChain("write", p, true); err != nil {
		return err
	}
	if n, err := fs.Node(p); err == nil && n.IsDir() {
		return pathErr("write", p, ErrIsDir)
	}

	dir, name, err := fs.walkParent("write", p, true, "root")
	if err != nil {
		return err
	}
	file, ok := dir.Children[name]
	if !ok {
		file = NewFile("", ownerOrRoot(owner), fs.now())
		dir.Children[name] = file
	}
	if appendMode {
		file.Content += content
	} else {
		file.Content = content
	}
	file.ModTime = fs.now()
	return nil
}

// Touch updates the modification time of path, creating an empty file
// when nothing exists there.
func (fs *FileSystem) Touch(path, owner string) error {
	if n, err := fs.Node(path); err == nil {
		n.ModTime = fs.now()
		return nil
	}
	return fs.WriteFile(path, "", false, owner)
}

// Mkdir creates the directory at path and any missing parents. Existing
// directories along the way are left alone; nothing is created if any
// segment is a regular file.
func (fs *FileSystem) Mkdir(path, owner string) error {
	p := Resolve("/", path)
	if err := fs.checkChain("mkdir", p, false); err != nil {
		return err
	}

	cur := fs.root
	for _, seg := range segments(p) {
		child, ok := cur.Children[seg]
		if !ok {
			child = NewDirectory(ownerOrRoot(owner), fs.now())
			cur.Children[seg] = child
		}
		cur = child
	}
	return nil
}

// Rmdir removes the empty directory at path.
func (fs *FileSystem) Rmdir(path string) error {
	p := Resolve("/", path)
	if p == "/" {
		return pathErr("rmdir", p, ErrRoot)
	}
	dir, name, err := fs.walkParent("rmdir", p, false, "")
	if err != nil {
		return err
	}
	target, ok := dir.Children[name]
	switch {
	case !ok:
		return pathErr("rmdir", p, ErrNotExist)
	case !target.IsDir():
		return pathErr("rmdir", p, ErrNotDir)
	case len(target.Children) > 0:
		return pathErr("rmdir", p, ErrNotEmpty)
	}
	delete(dir.Children, name)
	return nil
}

// Remove deletes the node at path. Directories, empty or not, need
// recursive; the whole subtree goes with the entry.
func (fs *FileSystem) Remove(path string, recursive bool) error {
	p := Resolve("/", path)
	if p == "/" {
		return pathErr("rm", p, ErrRoot)
	}
	dir, name, err := fs.walkParent("rm", p, false, "")
	if err != nil {
		return err
	}
	target, ok := dir.Children[name]
	if !ok {
		return pathErr("rm", p, ErrNotExist)
	}
	if target.IsDir() && !recursive {
		return pathErr("rm", p, ErrIsDir)
	}
	delete(dir.Children, name)
	return nil
}

// Move detaches the node at src and attaches it at dst. If dst is an
// existing directory the node keeps its name inside it; otherwise dst names
// the new location and missing parents are created. Whatever already sits
// at the destination name is replaced without warning.
func (fs *FileSystem) Move(src, dst string) error {
	srcPath := Resolve("/", src)
	if srcPath == "/" {
		return pathErr("mv", srcPath, ErrRoot)
	}
	node, err := fs.Node(srcPath)
	if err != nil {
		return pathErr("mv", srcPath, ErrNotExist)
	}

	target, _ := fs.target(srcPath, dst)
	if target == srcPath {
		return nil
	}
	if Within(target, srcPath) {
		return pathErr("mv", target, ErrInvalid)
	}
	if err := fs.checkChain("mv", target, true); err != nil {
		return err
	}

	srcDir, srcName, err := fs.walkParent("mv", srcPath, false, "")
	if err != nil {
		return err
	}
	delete(srcDir.Children, srcName)

	dir, name, err := fs.walkParent("mv", target, true, "root")
	if err != nil {
		return err
	}
	dir.Children[name] = node
	return nil
}

// Copy attaches a deep clone of src at dst using the same placement rules
// as Move. Clones get fresh modification times.
func (fs *FileSystem) Copy(src, dst string) error {
	srcPath := Resolve("/", src)
	node, err := fs.Node(srcPath)
	if err != nil {
		return pathErr("cp", srcPath, ErrNotExist)
	}

	target, ok := fs.target(srcPath, dst)
	if !ok || target == "/" {
		return pathErr("cp", Resolve("/", dst), ErrInvalid)
	}
	if err := fs.checkChain("cp", target, true); err != nil {
		return err
	}

	clone := node.clone(fs.now())
	dir, name, err := fs.walkParent("cp", target, true, "root")
	if err != nil {
		return err
	}
	dir.Children[name] = clone
	return nil
}

// Chmod replaces the permission bits of the node at path.
func (fs *FileSystem) Chmod(path string, mode uint32) error {
	n, err := fs.Node(path)
	if err != nil {
		return pathErr("chmod", Resolve("/", path), ErrNotExist)
	}
	n.Permissions = mode & 0777
	return nil
}

// Chown sets the owner of the node at path.
func (fs *FileSystem) Chown(path, owner string) error {
	n, err := fs.Node(path)
	if err != nil {
		return pathErr("chown", Resolve("/", path), ErrNotExist)
	}
	n.Owner = owner
	return nil
}

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(path string, n *Node) error

// Walk visits path and everything below it, parents before children and
// siblings in name order.
func (fs *FileSystem) Walk(path string, fn WalkFunc) error {
	n, err := fs.Node(path)
	if err != nil {
		return err
	}
	return walk(Resolve("/", path), n, fn)
}

func walk(path string, n *Node, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		return err
	}
	if !n.IsDir() {
		return nil
	}
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		child := path + "/" + name
		if path == "/" {
			child = "/" + name
		}
		if err := walk(child, n.Children[name], fn); err != nil {
			return err
		}
	}
	return nil
}

// target computes where src lands when moved or copied to dst. It reports
// false when dst is a directory and src has no name to land under.
func (fs *FileSystem) target(srcPath, dst string) (string, bool) {
	dstPath := Resolve("/", dst)
	if n, err := fs.Node(dstPath); err == nil && n.IsDir() {
		name := Base(srcPath)
		if name == "" {
			return dstPath, false
		}
		return Resolve(dstPath, name), true
	}
	return dstPath, true
}

// checkChain verifies that every existing segment of path (excluding the
// last when leaf is set) is a directory, without creating anything.
func (fs *FileSystem) checkChain(op, path string, leaf bool) error {
	segs := segments(path)
	if leaf && len(segs) > 0 {
		segs = segs[:len(segs)-1]
	}
	cur := fs.root
	for _, seg := range segs {
		child, ok := cur.Children[seg]
		if !ok {
			return nil
		}
		if !child.IsDir() {
			return pathErr(op, path, ErrNotDir)
		}
		cur = child
	}
	return nil
}

// walkParent returns the directory holding the last segment of path and
// that segment's name. With create set, missing directories are made and
// owned by owner.
func (fs *FileSystem) walkParent(op, path string, create bool, owner string) (*Node, string, error) {
	segs := segments(path)
	if len(segs) == 0 {
		return nil, "", pathErr(op, "/", ErrRoot)
	}
	dirs, name := segs[:len(segs)-1], segs[len(segs)-1]

	cur := fs.root
	for _, seg := range dirs {
		child, ok := cur.Children[seg]
		if !ok {
			if !create {
				return nil, "", pathErr(op, Resolve("/", path), ErrNotExist)
			}
			child = NewDirectory(ownerOrRoot(owner), fs.now())
			cur.Children[seg] = child
		} else if !child.IsDir() {
			return nil, "", pathErr(op, Resolve("/", path), ErrNotDir)
		}
		cur = child
	}
	return cur, name, nil
}

func ownerOrRoot(owner string) string {
	if owner == "" {
		return "root"
	}
	return owner
}
