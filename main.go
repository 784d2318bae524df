package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"termsim/accounts"
	"termsim/commands"
	"termsim/config"
	"termsim/fs"
	"termsim/logging"
	"termsim/metrics"
	"termsim/scenario"
	"termsim/shell"
)

var (
	configPath   = flag.String("config", "", "path to "+config.FileName+" (default: next to the executable, then the working directory)")
	userName     = flag.String("user", "", "log in as this user instead of prompting")
	password     = flag.String("password", "", "password for -user")
	scenarioPath = flag.String("scenario", "", `run the scenarios in this file ("builtin" for the built-in suite) and exit`)
	reportPath   = flag.String("report", "", "with -scenario, also write an HTML report to this path")
	logLevel     = flag.String("log-level", "", "override the configured log level")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configPath)
	if err != nil {
		color.Red("[ERROR] Failed to load configuration: %v", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.Output,
	}); err != nil {
		color.Red("[ERROR] Failed to initialize logging: %v", err)
		return 1
	}
	defer logging.Sync()
	if !cfg.Terminal.Color {
		color.NoColor = true
	}
	logging.L().Info("configuration loaded", zap.String("file", cfg.File))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	newTerminal := func() *shell.Interpreter {
		reg := shell.NewRegistry()
		commands.Register(reg, commands.Options{PingDelay: cfg.PingDelay()})
		sess := shell.NewSession(fs.Boot())
		sess.Host = cfg.Terminal.Hostname
		return shell.NewInterpreter(reg, sess)
	}

	if *scenarioPath != "" {
		return runScenarios(ctx, newTerminal, *scenarioPath, *reportPath)
	}

	store, err := accounts.Open(cfg.AccountsPath())
	if err != nil {
		logging.L().Error("open accounts", zap.Error(err))
		color.Red("[ERROR] %v", err)
		return 1
	}

	in := newTerminal()
	tty := term.IsTerminal(int(os.Stdin.Fd()))
	stdin := bufio.NewReader(os.Stdin)
	if err := signIn(store, in.Session(), stdin, tty); err != nil {
		if errors.Is(err, io.EOF) {
			return 0
		}
		color.Red("[ERROR] %v", err)
		return 1
	}
	fmt.Printf("Welcome %s! This is a simulated terminal. Type 'help' to see commands.\n", in.Session().Username())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	if addr := cfg.Metrics.Addr; addr != "" {
		g.Go(func() error {
			logging.L().Info("metrics listening", zap.String("addr", addr))
			return metrics.Serve(gctx, addr)
		})
	}
	g.Go(func() error {
		defer cancel()
		if tty {
			return interactive(gctx, in, cfg.Terminal.HistoryLimit)
		}
		return piped(gctx, in, stdin)
	})
	if err := g.Wait(); err != nil {
		logging.L().Error("terminal stopped", zap.Error(err))
		color.Red("[ERROR] %v", err)
		return 1
	}
	return 0
}

func runScenarios(ctx context.Context, newTerminal scenario.Factory, path, report string) int {
	var cases []scenario.TestCase
	if path == "builtin" {
		cases = scenario.GetAllTestCases(scenario.DefaultTimeout)
	} else {
		var err error
		if cases, err = scenario.LoadFile(path); err != nil {
			color.Red("[ERROR] %v", err)
			return 1
		}
	}
	fmt.Printf("Running %d scenarios\n\n", len(cases))

	r := &scenario.Runner{NewTerminal: newTerminal, Out: os.Stdout}
	summary := r.Run(ctx, cases)
	fmt.Println()
	scenario.PrintSummary(os.Stdout, summary)

	if report != "" {
		if err := scenario.GenerateHTMLReport(summary, report); err != nil {
			color.Red("[ERROR] Failed to write report: %v", err)
			return 1
		}
		fmt.Printf("Report written to %s\n", report)
	}
	if summary.TotalFailed > 0 {
		return 1
	}
	return 0
}

// signIn logs the session in from the flags or, on a terminal, by asking.
// An empty username at the prompt and piped input without -user continue
// as guest.
func signIn(store *accounts.Store, sess *shell.Session, stdin *bufio.Reader, tty bool) error {
	if *userName != "" {
		pw := *password
		if pw == "" {
			var err error
			if pw, err = readPassword(stdin, tty); err != nil {
				return err
			}
		}
		return store.Login(sess, *userName, pw)
	}
	if !tty {
		return nil
	}

	for {
		fmt.Print("Username (empty for guest): ")
		name, err := readLine(stdin)
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		pw, err := readPassword(stdin, tty)
		if err != nil {
			return err
		}
		fmt.Print("[l]ogin or [s]ign up? ")
		choice, err := readLine(stdin)
		if err != nil {
			return err
		}

		if strings.HasPrefix(strings.ToLower(choice), "s") {
			err = store.Signup(sess, name, pw)
		} else {
			err = store.Login(sess, name, pw)
		}
		switch {
		case err == nil:
			return nil
		case errors.Is(err, accounts.ErrInvalidCredentials):
			color.Red("Invalid username or password")
		case errors.Is(err, accounts.ErrEmpty):
			color.Red("Provide username and password to sign up")
		case errors.Is(err, accounts.ErrExists):
			color.Red("User already exists")
		default:
			return err
		}
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(r *bufio.Reader, tty bool) (string, error) {
	fmt.Print("Password: ")
	if !tty {
		return readLine(r)
	}
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// completer offers command and alias names for the first word of the line.
type completer struct {
	in *shell.Interpreter
}

func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	word := strings.TrimLeft(string(line[:pos]), " \t")
	if strings.ContainsAny(word, " \t") {
		return nil, 0
	}
	var out [][]rune
	for _, name := range c.in.Complete(word) {
		out = append(out, []rune(name[len(word):]+" "))
	}
	return out, len([]rune(word))
}

func interactive(ctx context.Context, in *shell.Interpreter, historyLimit int) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(in.Session()),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    historyLimit,
		AutoComplete:    completer{in: in},
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		rl.SetPrompt(prompt(in.Session()))
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}
		if done := execute(ctx, in, line, rl.Stdout()); done {
			return nil
		}
	}
}

func piped(ctx context.Context, in *shell.Interpreter, stdin *bufio.Reader) error {
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if done := execute(ctx, in, scanner.Text(), os.Stdout); done {
			return nil
		}
	}
	return scanner.Err()
}

func prompt(s *shell.Session) string {
	return color.GreenString(s.Prompt()) + " "
}

// execute runs one line and prints its result. It reports whether the
// session ended.
func execute(ctx context.Context, in *shell.Interpreter, line string, w io.Writer) bool {
	if err := ctx.Err(); err != nil {
		return true
	}
	out, err := in.Run(ctx, line)
	if errors.Is(err, shell.ErrExit) {
		return true
	}
	if err != nil {
		fmt.Fprintln(w, color.RedString(err.Error()))
		return false
	}
	if out == "" {
		return false
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if strings.HasPrefix(out, "Error executing ") {
		out = color.RedString(out)
	}
	fmt.Fprint(w, out)
	return false
}
