package commands

var manuals = map[string]string{
	"ls": "LS(1) User Commands\n\nls - list directory contents\n\nUsage: ls [directory]\n\nOptions: (simulated)\n",
	"git": "GIT(1)\n\nSimulated git commands: status, clone, commit, log\n",
	"cat": "CAT(1) User Commands\n\ncat - concatenate files and print on the standard output\n\nUsage: cat <file>...\n",
	"cd":  "CD(1) Shell Builtins\n\ncd - change the working directory\n\nUsage: cd [dir]\n\nWithout an argument cd goes to $HOME. ~ stands for $HOME.\n",
	"cp":  "CP(1) User Commands\n\ncp - copy files and directories\n\nUsage: cp <source> <dest>\n\nDirectories are copied with everything below them.\n",
	"mv":  "MV(1) User Commands\n\nmv - move (rename) files\n\nUsage: mv <source> <dest>\n\nAn existing file at dest is replaced.\n",
	"rm":  "RM(1) User Commands\n\nrm - remove files or directories\n\nUsage: rm [-r] <file>...\n\nOptions:\n  -r, -rf, -fr  remove directories and their contents\n",
	"mkdir": "MKDIR(1) User Commands\n\nmkdir - make directories\n\nUsage: mkdir <dir>...\n\nMissing parent directories are created.\n",
	"rmdir": "RMDIR(1) User Commands\n\nrmdir - remove empty directories\n\nUsage: rmdir <dir>...\n",
	"touch": "TOUCH(1) User Commands\n\ntouch - change file timestamps\n\nUsage: touch <file>...\n\nA missing file is created empty.\n",
	"chmod": "CHMOD(1) User Commands\n\nchmod - change file mode bits\n\nUsage: chmod <octal-mode> <file>\n",
	"grep": "GREP(1) User Commands\n\ngrep - print lines that match patterns\n\nUsage: grep <pattern> <file>\n",
}

func (b *builtins) registerManuals() {
	for name, man := range manuals {
		b.reg.SetManual(name, man)
	}
}
