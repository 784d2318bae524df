package fs

import "strings"

// Resolve maps input onto an absolute path, treating it as relative to cwd
// unless it starts with "/". Empty and "." segments are dropped and ".."
// pops the previous segment; ".." at the root stays at the root.
func Resolve(cwd, input string) string {
	if input == "" {
		return Resolve("/", cwd)
	}
	if !IsAbsolute(input) {
		input = cwd + "/" + input
	}

	var segs []string
	for _, seg := range strings.Split(input, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, seg)
		}
	}
	return "/" + strings.Join(segs, "/")
}

// IsAbsolute returns true if path is absolute
func IsAbsolute(path string) bool {
	return strings.HasPrefix(path, "/")
}

// Split resolves path against the root and returns its parent directory
// and base name. The root splits into ("/", "").
func Split(path string) (dir, name string) {
	p := Resolve("/", path)
	if p == "/" {
		return "/", ""
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}

// Base returns the last segment of the resolved path.
func Base(path string) string {
	_, name := Split(path)
	return name
}

// Within reports whether path is dir itself or lies beneath it.
func Within(path, dir string) bool {
	path, dir = Resolve("/", path), Resolve("/", dir)
	if dir == "/" || path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+"/")
}

func segments(path string) []string {
	p := Resolve("/", path)
	if p == "/" {
		return nil
	}
	return strings.Split(p[1:], "/")
}
