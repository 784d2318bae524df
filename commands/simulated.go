package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"termsim/shell"
)

// simulatedLeaves are commands that only print canned text.
var simulatedLeaves = []struct {
	name, short, out string
}{
	{"ps", "Report process status", "PID TTY          TIME CMD\n1 ?        00:00:00 init\n12 ?       00:00:01 node\n34 ?       00:00:00 bash"},
	{"top", "Display real-time system info (simulated)", "top - Simulated load. CPU 1% MEM 42%\nPID USER  %CPU %MEM CMD\n12  guest   0.1  0.5  node\n34  guest   0.0  0.1  bash"},
	{"df", "Report filesystem disk space usage (simulated)", "/dev/sim 100G 42G 58G 42% /"},
	{"mount", "Show mounted filesystems (simulated)", "/dev/sim on / type ext4 (rw,relatime)"},
	{"route", "Show / manipulate the IP routing table (simulated)", "Kernel IP routing table (simulated)"},
	{"netstat", "Network connections (simulated)", "Proto Recv-Q Send-Q Local Address        Foreign Address      State\ntcp        0      0 0.0.0.0:22         0.0.0.0:*            LISTEN"},
	{"ifconfig", "Configure network interfaces (simulated)", "eth0: flags=4163<UP,BROADCAST,RUNNING,MULTICAST>  mtu 1500\ninet 192.168.1.100  netmask 255.255.255.0"},
	{"ip", "Show/manipulate routing, devices, policy routing and tunnels (simulated)", "ip (simulated) - try ip addr"},
	{"shutdown", "Halt, power-off, or reboot the machine (simulated)", "Shutdown scheduled (simulated)"},
	{"reboot", "Reboot the system (simulated)", "Rebooting (simulated)..."},
}

func (b *builtins) registerSimulated() {
	for _, l := range simulatedLeaves {
		b.reg.Register(l.name, static(l.out), shell.Meta{Short: l.short})
	}
	for _, name := range []string{"lsblk", "mountpoint", "nice", "renice"} {
		b.reg.Register(name, static(name+": simulated helper command"), shell.Meta{Short: "Simulated " + name})
	}

	b.handle("ping", "Ping network host (simulated)", b.ping)
	b.handle("kill", "Send signal to process (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		if len(args) == 0 {
			return "", shell.Usage("kill <pid>")
		}
		return fmt.Sprintf("kill: (%s) - process terminated (simulated)", args[0]), nil
	})
	b.handle("ssh", "Open SSH connection (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		if len(args) == 0 {
			return "", shell.Failf("ssh: usage: ssh user@host")
		}
		return fmt.Sprintf("Connecting to %s... (simulated)\nPermission denied (publickey).", args[0]), nil
	})
	b.handle("wget", "Download files (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		if len(args) == 0 {
			return "", shell.Failf("wget: missing URL")
		}
		return fmt.Sprintf("--%d-- Downloading from %s (simulated)\nSaved to ./index.html (simulated)", b.opts.Now().Year(), args[0]), nil
	})
	b.handle("curl", "Transfer data from URL (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		if len(args) == 0 {
			return "", shell.Failf("curl: try 'curl <url>'")
		}
		return fmt.Sprintf("HTTP/1.1 200 OK\nContent-Type: text/html\n\n<html><body><h1>Simulated %s</h1></body></html>", args[0]), nil
	})
	b.handle("git", "Git (simulated)", git)
	b.handle("nano", "Text editor (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		return fmt.Sprintf("Opening nano editor for %s (simulated). Type content then run :wq to save (not implemented).", argOr(args, "newfile")), nil
	})
	b.handle("vi", "Text editor (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		return fmt.Sprintf("vi: %s opened (simulated).", argOr(args, "")), nil
	})
	b.handle("sudo", "Execute a command as another user (simulated)", func(_ context.Context, s *shell.Session, args []string) (string, error) {
		if len(args) == 0 {
			return "", shell.Failf("sudo: usage: sudo <command>")
		}
		return fmt.Sprintf("sudo: a password is required (simulated)\nSorry, user %s is not allowed to run sudo on this system.", s.Username()), nil
	})
	b.handle("su", "Switch user (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		return fmt.Sprintf("Password: (simulated) \nsu: Authentication failure for %s", argOr(args, "root")), nil
	})
	b.handle("umount", "Unmount filesystem (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		return fmt.Sprintf("umount: %s: not mounted", argOr(args, "")), nil
	})
	b.handle("traceroute", "Trace route to host (simulated)", func(_ context.Context, _ *shell.Session, args []string) (string, error) {
		host := argOr(args, "example.com")
		return fmt.Sprintf("traceroute to %s (simulated)\n 1  192.168.0.1 ...\n 2  10.1.0.1  ...\n 3  %s ...", host, host), nil
	})
}

// ping prints four replies with random latency. With a PingDelay set it
// waits between replies and stops early when ctx is done.
func (b *builtins) ping(ctx context.Context, _ *shell.Session, args []string) (string, error) {
	host := argOr(args, "127.0.0.1")
	var sb strings.Builder
	for i := 1; i <= 4; i++ {
		if b.opts.PingDelay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(b.opts.PingDelay):
			}
		}
		fmt.Fprintf(&sb, "64 bytes from %s: icmp_seq=%d ttl=64 time=%.2f ms\n", host, i, 10+rand.Float64()*80)
	}
	fmt.Fprintf(&sb, "\n--- %s ping statistics ---\n4 packets transmitted, 4 received, 0%% packet loss\n", host)
	return sb.String(), nil
}

func git(_ context.Context, _ *shell.Session, args []string) (string, error) {
	switch argOr(args, "help") {
	case "status":
		return "On branch main\nnothing to commit, working tree clean (simulated)", nil
	case "log":
		return "commit abcdef12345 - Initial commit", nil
	case "commit":
		return "[main abcdef1] simulated commit", nil
	case "clone":
		repo := "repo"
		if len(args) > 1 {
			repo = args[1]
		}
		return fmt.Sprintf("Cloning into '%s'... done (simulated)", repo), nil
	default:
		return "git (simulated) — supported: status, log, commit, clone", nil
	}
}

func argOr(args []string, def string) string {
	if len(args) == 0 {
		return def
	}
	return args[0]
}
