package scenario

import "time"

// DefaultTimeout bounds each built-in scenario.
const DefaultTimeout = 5 * time.Second

// GetAllTestCases returns the built-in scenarios with the given timeout.
func GetAllTestCases(timeout time.Duration) []TestCase {
	var all []TestCase
	for _, group := range [][]TestCase{
		navigationTests(),
		fileOpTests(),
		dirOpTests(),
		contentTests(),
		sessionTests(),
		systemTests(),
		edgeCaseTests(),
		integrationTests(),
	} {
		for _, tc := range group {
			tc.Timeout = timeout
			all = append(all, tc)
		}
	}
	return all
}

// Navigation Tests (pwd, cd)
func navigationTests() []TestCase {
	return []TestCase{
		{
			ID:          "1.1",
			Category:    "Navigation",
			Description: "Initial pwd",
			Commands:    []string{"pwd"},
			Expected:    []string{"/home/guest"},
			Validation:  []ValidationMode{ExactMatch},
		},
		{
			ID:          "1.2",
			Category:    "Navigation",
			Description: "cd absolute path",
			Commands:    []string{"cd /home", "pwd"},
			Expected:    []string{"", "/home"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "1.3",
			Category:    "Navigation",
			Description: "cd relative path",
			Commands:    []string{"cd /", "cd home", "pwd"},
			Expected:    []string{"", "", "/home"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "1.4",
			Category:    "Navigation",
			Description: "cd with ..",
			Commands:    []string{"cd /home/guest", "cd ..", "pwd"},
			Expected:    []string{"", "", "/home"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "1.5",
			Category:    "Navigation",
			Description: "cd past the root",
			Commands:    []string{"cd /home/guest", "cd ../../../..", "pwd"},
			Expected:    []string{"", "", "/"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "1.6",
			Category:    "Navigation",
			Description: "cd to home (~)",
			Commands:    []string{"cd /tmp", "cd ~", "pwd"},
			Expected:    []string{"", "", "/home/guest"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "1.7",
			Category:    "Navigation",
			Description: "cd non-existent",
			Commands:    []string{"cd /nonexistent"},
			Expected:    []string{"No such file or directory"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "1.8",
			Category:    "Navigation",
			Description: "cd no args",
			Commands:    []string{"cd /tmp", "cd", "pwd"},
			Expected:    []string{"", "", "/home/guest"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "1.9",
			Category:    "Navigation",
			Description: "Multiple slashes",
			Commands:    []string{"cd //home///guest//", "pwd"},
			Expected:    []string{"", "/home/guest"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
	}
}

// File Operation Tests (touch, rm, cp, mv)
func fileOpTests() []TestCase {
	return []TestCase{
		{
			ID:          "2.1",
			Category:    "File Operations",
			Description: "Create new file",
			Commands:    []string{"touch new.txt", "ls"},
			Expected:    []string{"", "new.txt"},
			Validation:  []ValidationMode{NoError, Contains},
		},
		{
			ID:          "2.2",
			Category:    "File Operations",
			Description: "Touch existing",
			Commands:    []string{"touch file.txt", "touch file.txt", "ls"},
			Expected:    []string{"", "", "file.txt\nwelcome.txt"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.3",
			Category:    "File Operations",
			Description: "Create with path",
			Commands:    []string{"mkdir dir", "touch dir/file.txt", "ls dir"},
			Expected:    []string{"", "", "file.txt"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.4",
			Category:    "File Operations",
			Description: "Remove file",
			Commands:    []string{"touch test.txt", "rm test.txt", "ls"},
			Expected:    []string{"", "", "welcome.txt"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.5",
			Category:    "File Operations",
			Description: "Remove non-existent",
			Commands:    []string{"rm nonexistent.txt"},
			Expected:    []string{"No such file or directory"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "2.6",
			Category:    "File Operations",
			Description: "Remove dir no flag",
			Commands:    []string{"mkdir dir", "rm dir"},
			Expected:    []string{"", "Is a directory"},
			Validation:  []ValidationMode{NoError, HasError},
		},
		{
			ID:          "2.7",
			Category:    "File Operations",
			Description: "Remove dir with -r",
			Commands:    []string{"mkdir dir", "touch dir/f", "rm -r dir", "ls"},
			Expected:    []string{"", "", "", "welcome.txt"},
			Validation:  []ValidationMode{NoError, NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.8",
			Category:    "File Operations",
			Description: "Copy file",
			Commands:    []string{"echo test > src.txt", "cp src.txt dst.txt", "cat dst.txt"},
			Expected:    []string{"", "", "test"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.9",
			Category:    "File Operations",
			Description: "Copy to dir",
			Commands:    []string{"touch file.txt", "mkdir dir", "cp file.txt dir/", "ls dir"},
			Expected:    []string{"", "", "", "file.txt"},
			Validation:  []ValidationMode{NoError, NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.10",
			Category:    "File Operations",
			Description: "Copy overwrite",
			Commands:    []string{"echo content2 > file2.txt", "echo content1 > file1.txt", "cp file1.txt file2.txt", "cat file2.txt"},
			Expected:    []string{"", "", "", "content1"},
			Validation:  []ValidationMode{NoError, NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.11",
			Category:    "File Operations",
			Description: "Rename file",
			Commands:    []string{"touch old.txt", "mv old.txt new.txt", "ls"},
			Expected:    []string{"", "", "new.txt\nwelcome.txt"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.12",
			Category:    "File Operations",
			Description: "Move to dir",
			Commands:    []string{"mkdir dir", "touch f.txt", "mv f.txt dir/", "ls dir"},
			Expected:    []string{"", "", "", "f.txt"},
			Validation:  []ValidationMode{NoError, NoError, NoError, ExactMatch},
		},
		{
			ID:          "2.13",
			Category:    "File Operations",
			Description: "Move non-existent",
			Commands:    []string{"mv nofile.txt dst.txt"},
			Expected:    []string{"cannot stat"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "2.14",
			Category:    "File Operations",
			Description: "Move into itself",
			Commands:    []string{"mkdir a", "mv a a/b", "ls"},
			Expected:    []string{"", "subdirectory of itself", "a/\nwelcome.txt"},
			Validation:  []ValidationMode{NoError, HasError, ExactMatch},
		},
	}
}

// Directory Operation Tests (mkdir, rmdir, ls)
func dirOpTests() []TestCase {
	return []TestCase{
		{
			ID:          "3.1",
			Category:    "Directory Operations",
			Description: "Create directory",
			Commands:    []string{"mkdir testdir", "ls"},
			Expected:    []string{"", "testdir/\nwelcome.txt"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "3.2",
			Category:    "Directory Operations",
			Description: "mkdir creates parents",
			Commands:    []string{"mkdir parent/child", "ls parent"},
			Expected:    []string{"", "child/"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "3.3",
			Category:    "Directory Operations",
			Description: "mkdir with -p",
			Commands:    []string{"mkdir -p a/b", "ls a"},
			Expected:    []string{"", "b/"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "3.4",
			Category:    "Directory Operations",
			Description: "mkdir existing",
			Commands:    []string{"mkdir dir", "mkdir dir"},
			Expected:    []string{"", ""},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "3.5",
			Category:    "Directory Operations",
			Description: "Remove empty dir",
			Commands:    []string{"mkdir empty", "rmdir empty", "ls"},
			Expected:    []string{"", "", "welcome.txt"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "3.6",
			Category:    "Directory Operations",
			Description: "rmdir non-empty",
			Commands:    []string{"mkdir dir", "touch dir/file", "rmdir dir", "ls dir"},
			Expected:    []string{"", "", "Directory not empty", "file"},
			Validation:  []ValidationMode{NoError, NoError, HasError, ExactMatch},
		},
		{
			ID:          "3.7",
			Category:    "Directory Operations",
			Description: "rmdir non-existent",
			Commands:    []string{"rmdir nodir"},
			Expected:    []string{"No such file or directory"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "3.8",
			Category:    "Directory Operations",
			Description: "List empty dir",
			Commands:    []string{"mkdir empty", "cd empty", "ls"},
			Expected:    []string{"", "", ""},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "3.9",
			Category:    "Directory Operations",
			Description: "List non-existent",
			Commands:    []string{"ls /nodir"},
			Expected:    []string{"cannot access"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "3.10",
			Category:    "Directory Operations",
			Description: "List with -a",
			Commands:    []string{"touch .hidden", "ls", "ls -a"},
			Expected:    []string{"", "welcome.txt", ".hidden\nwelcome.txt"},
			Validation:  []ValidationMode{NoError, ExactMatch, ExactMatch},
		},
		{
			ID:          "3.11",
			Category:    "Directory Operations",
			Description: "List with -l",
			Commands:    []string{"ls -l /etc"},
			Expected:    []string{`^-rw-r--r-- 1 root\s+root\s+20 \w{3} \d{2} \d{2}:\d{2} hosts$`},
			Validation:  []ValidationMode{RegexMatch},
		},
	}
}

// Content Operation Tests (cat, echo, redirection, text utilities)
func contentTests() []TestCase {
	return []TestCase{
		{
			ID:          "4.1",
			Category:    "Content Operations",
			Description: "Cat single line",
			Commands:    []string{"echo Hello > f.txt", "cat f.txt"},
			Expected:    []string{"", "Hello"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "4.2",
			Category:    "Content Operations",
			Description: "Echo append",
			Commands:    []string{"echo L1 > f.txt", "echo L2 >> f.txt", "cat f.txt"},
			Expected:    []string{"", "", "L1\nL2"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "4.3",
			Category:    "Content Operations",
			Description: "Echo overwrite",
			Commands:    []string{"echo Old > f.txt", "echo New > f.txt", "cat f.txt"},
			Expected:    []string{"", "", "New"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "4.4",
			Category:    "Content Operations",
			Description: "Cat non-existent",
			Commands:    []string{"cat nofile.txt"},
			Expected:    []string{"No such file or directory"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "4.5",
			Category:    "Content Operations",
			Description: "Cat directory",
			Commands:    []string{"mkdir dir", "cat dir"},
			Expected:    []string{"", "Is a directory"},
			Validation:  []ValidationMode{NoError, HasError},
		},
		{
			ID:          "4.6",
			Category:    "Content Operations",
			Description: "Redirect without spaces",
			Commands:    []string{"echo 12345>numbers.txt", "cat numbers.txt"},
			Expected:    []string{"", "12345"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "4.7",
			Category:    "Content Operations",
			Description: "grep",
			Commands:    []string{"echo apple > f", "echo banana >> f", "grep an f"},
			Expected:    []string{"", "", "banana"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "4.8",
			Category:    "Content Operations",
			Description: "wc",
			Commands:    []string{"echo one two > f", "wc f"},
			Expected:    []string{"", "2 2 8 f"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "4.9",
			Category:    "Content Operations",
			Description: "sort and uniq",
			Commands:    []string{"echo b > f", "echo a >> f", "echo b >> f", "sort f", "uniq f"},
			Expected:    []string{"", "", "", "a\nb\nb", "b\na"},
			Validation:  []ValidationMode{NoError, NoError, NoError, ExactMatch, ExactMatch},
		},
		{
			ID:          "4.10",
			Category:    "Content Operations",
			Description: "head and tail",
			Commands:    []string{"echo 1 > f", "echo 2 >> f", "echo 3 >> f", "head -n 1 f", "tail -n 2 f"},
			Expected:    []string{"", "", "", "1", "3"},
			Validation:  []ValidationMode{NoError, NoError, NoError, ExactMatch, ExactMatch},
		},
	}
}

// Session Tests (alias, env, history)
func sessionTests() []TestCase {
	return []TestCase{
		{
			ID:          "5.1",
			Category:    "Session",
			Description: "Define and list alias",
			Commands:    []string{"alias la2='ls -a'", "alias"},
			Expected:    []string{"", "la2='ls -a'"},
			Validation:  []ValidationMode{NoError, ExactMatch},
		},
		{
			ID:          "5.2",
			Category:    "Session",
			Description: "Alias with arguments",
			Commands:    []string{"alias l='ls -a'", "touch /tmp/.h", "l /tmp"},
			Expected:    []string{"", "", ".h"},
			Validation:  []ValidationMode{NoError, NoError, ExactMatch},
		},
		{
			ID:          "5.3",
			Category:    "Session",
			Description: "export and env",
			Commands:    []string{"export FOO=bar", "env"},
			Expected:    []string{"", "FOO=bar"},
			Validation:  []ValidationMode{NoError, Contains},
		},
		{
			ID:          "5.4",
			Category:    "Session",
			Description: "history",
			Commands:    []string{"echo a", "history"},
			Expected:    []string{"a", "echo a\nhistory"},
			Validation:  []ValidationMode{ExactMatch, ExactMatch},
		},
		{
			ID:          "5.5",
			Category:    "Session",
			Description: "whoami",
			Commands:    []string{"whoami"},
			Expected:    []string{"guest"},
			Validation:  []ValidationMode{ExactMatch},
		},
		{
			ID:          "5.6",
			Category:    "Session",
			Description: "Unknown command",
			Commands:    []string{"frobnicate"},
			Expected:    []string{"frobnicate: command not found"},
			Validation:  []ValidationMode{ExactMatch},
		},
		{
			ID:          "5.7",
			Category:    "Session",
			Description: "Redirect failure",
			Commands:    []string{"echo x > /etc/hosts/y"},
			Expected:    []string{"Failed to write to /etc/hosts/y"},
			Validation:  []ValidationMode{ExactMatch},
		},
	}
}

// System Command Tests
func systemTests() []TestCase {
	return []TestCase{
		{
			ID:          "6.1",
			Category:    "System",
			Description: "Help command",
			Commands:    []string{"help"},
			Expected:    []string{"ls           - List directory"},
			Validation:  []ValidationMode{Contains},
		},
		{
			ID:          "6.2",
			Category:    "System",
			Description: "Manual page",
			Commands:    []string{"man ls"},
			Expected:    []string{"LS(1)"},
			Validation:  []ValidationMode{Contains},
		},
		{
			ID:          "6.3",
			Category:    "System",
			Description: "calc",
			Commands:    []string{"calc 2*(3+4)"},
			Expected:    []string{"14"},
			Validation:  []ValidationMode{ExactMatch},
		},
		{
			ID:          "6.4",
			Category:    "System",
			Description: "ping",
			Commands:    []string{"ping localhost"},
			Expected:    []string{`4 packets transmitted, 4 received, 0% packet loss$`},
			Validation:  []ValidationMode{RegexMatch},
		},
		{
			ID:          "6.5",
			Category:    "System",
			Description: "date",
			Commands:    []string{"date"},
			Expected:    []string{`^\w{3} \w{3} \d{2} \d{4} \d{2}:\d{2}:\d{2} GMT[+-]\d{4} \(.+\)$`},
			Validation:  []ValidationMode{RegexMatch},
		},
		{
			ID:          "6.6",
			Category:    "System",
			Description: "Clear screen",
			Commands:    []string{"clear"},
			Expected:    []string{""},
			Validation:  []ValidationMode{NoError},
		},
	}
}

// Edge Case Tests
func edgeCaseTests() []TestCase {
	return []TestCase{
		{
			ID:          "7.1",
			Category:    "Edge Cases",
			Description: "rm -r /",
			Commands:    []string{"rm -r /", "ls /"},
			Expected:    []string{"refusing", "bin/\netc/\nhome/\ntmp/\nusr/"},
			Validation:  []ValidationMode{HasError, ExactMatch},
		},
		{
			ID:          "7.2",
			Category:    "Edge Cases",
			Description: "rmdir /",
			Commands:    []string{"rmdir /"},
			Expected:    []string{"refusing to remove root"},
			Validation:  []ValidationMode{HasError},
		},
		{
			ID:          "7.3",
			Category:    "Edge Cases",
			Description: "Blank line",
			Commands:    []string{"   ", "history"},
			Expected:    []string{"", "history"},
			Validation:  []ValidationMode{ExactMatch, ExactMatch},
		},
		{
			ID:          "7.4",
			Category:    "Edge Cases",
			Description: "Trailing spaces",
			Commands:    []string{"pwd   "},
			Expected:    []string{"/home/guest"},
			Validation:  []ValidationMode{ExactMatch},
		},
	}
}

// Integration Tests
func integrationTests() []TestCase {
	return []TestCase{
		{
			ID:          "8.1",
			Category:    "Integration",
			Description: "Basic structure",
			Commands: []string{
				"mkdir project",
				"cd project",
				"echo Title > README.md",
				"ls",
				"pwd",
			},
			Expected:   []string{"", "", "", "README.md", "/home/guest/project"},
			Validation: []ValidationMode{NoError, NoError, NoError, ExactMatch, ExactMatch},
		},
		{
			ID:          "8.2",
			Category:    "Integration",
			Description: "Copy and move",
			Commands: []string{
				"mkdir source",
				"echo content > source/file.txt",
				"cp -r source backup",
				"mv backup/file.txt backup/renamed.txt",
				"ls backup",
				"cat source/file.txt",
			},
			Expected:   []string{"", "", "", "", "renamed.txt", "content"},
			Validation: []ValidationMode{NoError, NoError, NoError, NoError, ExactMatch, ExactMatch},
		},
	}
}
