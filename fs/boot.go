package fs

// Boot returns a filesystem populated with the standard seed layout.
func Boot(opts ...Option) *FileSystem {
	fs := New(opts...)
	root := fs.root
	now := fs.now()

	dir := func(parent *Node, name string) *Node {
		d := NewDirectory("root", now)
		parent.Children[name] = d
		return d
	}
	file := func(parent *Node, name, content, owner string) {
		parent.Children[name] = NewFile(content, owner, now)
	}

	dir(root, "bin")
	dir(dir(root, "usr"), "bin")
	home := dir(root, "home")
	file(dir(home, "guest"), "welcome.txt", "Welcome to Terminal Simulator!\nType help to get started.\n", "root")
	spark := dir(home, DemoUser)
	spark.Owner = DemoUser
	file(spark, "readme.txt", "Hello "+DemoUser+" — enjoy the simulator!\n", DemoUser)
	file(dir(root, "etc"), "hosts", "127.0.0.1 localhost\n", "root")
	dir(root, "tmp")
	return fs
}

// DemoUser is the account whose home directory ships with the seed layout.
const DemoUser = "sparkpacket"
