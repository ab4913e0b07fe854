package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/akeshr/autifyme/internal/audit"
	"github.com/akeshr/autifyme/internal/config"
	"github.com/akeshr/autifyme/internal/credential"
	"github.com/akeshr/autifyme/internal/logging"
)

type app struct {
	cfg   config.Config
	log   logging.Logger
	store *credential.Store
	audit *audit.Log
}

func configPath() string {
	if p := os.Getenv("AUTIFYME_CONFIG"); p != "" {
		return p
	}
	return "autifyme.yaml"
}

// openApp loads .env and config, then opens the audit log and the store.
func openApp() *app {
	godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		fatal("load config: %v", err)
	}
	logger := logging.New(cfg)

	auditLog, err := audit.Open(cfg.Paths.AuditDB)
	if err != nil {
		fatal("open audit log: %v", err)
	}

	store, err := credential.Open(credential.Options{
		CredentialsPath: cfg.Paths.CredentialsFile,
		KeyPath:         cfg.Paths.KeyFile,
		Logger:          logger,
		Audit:           auditLog,
	})
	if err != nil {
		auditLog.Close()
		fatal("open credential store: %v", err)
	}

	return &app{cfg: cfg, log: logger, store: store, audit: auditLog}
}

func (a *app) close() {
	a.audit.Close()
}

// promptSecret reads a value without echo when stdin is a terminal, falling
// back to a plain line read for piped input.
func promptSecret(label string) (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(os.Stderr, label)
		value, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// hasFlag reports whether --name appears in the arguments.
func hasFlag(name string) bool {
	for _, arg := range os.Args[2:] {
		if arg == "--"+name {
			return true
		}
	}
	return false
}

// intFlag returns the integer following --name, or the fallback.
func intFlag(name string, fallback int) int {
	args := os.Args[2:]
	for i, arg := range args {
		if arg == "--"+name && i+1 < len(args) {
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				fatal("--%s expects a number, got %q", name, args[i+1])
			}
			return n
		}
	}
	return fallback
}

// positional returns the nth non-flag argument after the command, skipping
// flag values.
func positional(n int) (string, bool) {
	args := os.Args[2:]
	idx := 0
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "--") {
			// Flags taking a value consume the next argument.
			if args[i] == "--expires-days" || args[i] == "--days" || args[i] == "--limit" {
				i++
			}
			continue
		}
		if idx == n {
			return args[i], true
		}
		idx++
	}
	return "", false
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func fatal(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
