package fs

import (
	"strings"
	"time"
)

type FileType int

const (
	RegularFile FileType = iota
	Directory
)

func (t FileType) String() string {
	if t == Directory {
		return "dir"
	}
	return "file"
}

// Node is a directory or a regular file. Nodes hold no reference to their
// parent; a node is owned by exactly one entry in its parent's Children.
type Node struct {
	Type        FileType
	Content     string           // For files
	Children    map[string]*Node // For directories
	Owner       string
	Permissions uint32
	ModTime     time.Time
}

func NewDirectory(owner string, modTime time.Time) *Node {
	return &Node{
		Type:        Directory,
		Children:    make(map[string]*Node),
		Owner:       owner,
		Permissions: 0755,
		ModTime:     modTime,
	}
}

func NewFile(content, owner string, modTime time.Time) *Node {
	return &Node{
		Type:        RegularFile,
		Content:     content,
		Owner:       owner,
		Permissions: 0644,
		ModTime:     modTime,
	}
}

func (n *Node) IsDir() bool { return n.Type == Directory }

// Size is the content length in bytes; directories report 0.
func (n *Node) Size() int64 {
	if n.IsDir() {
		return 0
	}
	return int64(len(n.Content))
}

// clone deep-copies n. Every cloned node gets modTime.
func (n *Node) clone(modTime time.Time) *Node {
	c := &Node{
		Type:        n.Type,
		Content:     n.Content,
		Owner:       n.Owner,
		Permissions: n.Permissions,
		ModTime:     modTime,
	}
	if n.IsDir() {
		c.Children = make(map[string]*Node, len(n.Children))
		for name, child := range n.Children {
			c.Children[name] = child.clone(modTime)
		}
	}
	return c
}

// ModeString renders the permission bits the way ls -l does, e.g. drwxr-xr-x.
func ModeString(perm uint32, isDir bool) string {
	var sb strings.Builder
	if isDir {
		sb.WriteByte('d')
	} else {
		sb.WriteByte('-')
	}
	const rwx = "rwx"
	for i := 8; i >= 0; i-- {
		if perm&(1<<uint(i)) != 0 {
			sb.WriteByte(rwx[(8-i)%3])
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
