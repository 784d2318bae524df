package fs

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		cwd, input, want string
	}{
		{"/home/guest", "", "/home/guest"},
		{"/home/guest", "/", "/"},
		{"/home/guest", "docs", "/home/guest/docs"},
		{"/home/guest", "./docs/", "/home/guest/docs"},
		{"/home/guest", "..", "/home"},
		{"/home/guest", "../../..", "/"},
		{"/", "..", "/"},
		{"/", "/a/b/../c", "/a/c"},
		{"/x", "//a///b/./c", "/a/b/c"},
		{"/a/b", "../../../../etc", "/etc"},
		{"", "", "/"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.cwd, tt.input); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.cwd, tt.input, got, tt.want)
		}
	}
}

func TestResolveNeverEmitsDotSegments(t *testing.T) {
	inputs := []string{
		"/a/./b/../../..",
		"/../..",
		"/a/b/c/../../d/./e/..",
		"/./././",
		"/a/../a/../a",
	}
	for _, in := range inputs {
		got := Resolve("/", in)
		if got == "/" {
			continue
		}
		for _, seg := range strings.Split(got[1:], "/") {
			if seg == "" || seg == "." || seg == ".." {
				t.Errorf("Resolve(%q) = %q, contains segment %q", in, got, seg)
			}
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in, dir, name string
	}{
		{"/", "/", ""},
		{"/tmp", "/", "tmp"},
		{"/tmp/out.txt", "/tmp", "out.txt"},
		{"/a/b/../c/", "/a", "c"},
	}
	for _, tt := range tests {
		dir, name := Split(tt.in)
		if dir != tt.dir || name != tt.name {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tt.in, dir, name, tt.dir, tt.name)
		}
	}
}

func TestWithin(t *testing.T) {
	if !Within("/a/b", "/a") {
		t.Error("/a/b should be within /a")
	}
	if !Within("/a", "/a") {
		t.Error("/a should be within itself")
	}
	if Within("/ab", "/a") {
		t.Error("/ab should not be within /a")
	}
	if !Within("/anything", "/") {
		t.Error("every path is within /")
	}
}
