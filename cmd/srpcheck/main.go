// Package main provides srpcheck, a self-test for SRP-6a deployments.
//
// srpcheck reproduces the RFC 5054 test vector and runs loopback handshakes with the
// configured group and digest, without any network transport.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

const loopbackClientID = "loopback"

var (
	// version is set by build flags
	version = "dev"
	// commit is set by build flags
	commit = "none"
)

type options struct {
	configPath   string
	verifierPath string
	identity     string
	password     string
	output       string
	showVersion  bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Printf("srpcheck version %s (%s)\n", version, commit)
		return
	}

	report, err := run(context.Background(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	format, _ := ParseFormat(opts.output)
	out, err := report.Format(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)

	if !report.Passed() {
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("srpcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to configuration file (defaults are used when empty)")
	fs.StringVar(&opts.verifierPath, "verifiers", "", "path to a verifier file to check against")
	fs.StringVar(&opts.identity, "identity", "srpcheck", "identity used for the loopback handshake")
	fs.StringVar(&opts.password, "password", "", "password of the identity (random when empty and no verifier file is given)")
	fs.StringVar(&opts.output, "output", "yaml", "report format: yaml or json")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if _, err := ParseFormat(opts.output); err != nil {
		fmt.Fprintln(stderr, err)
		return nil, err
	}
	if opts.verifierPath != "" && opts.password == "" {
		err := fmt.Errorf("-password is required with -verifiers")
		fmt.Fprintln(stderr, err)
		return nil, err
	}

	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, config.Validate(cfg)
	}
	return config.Load(path)
}

func run(ctx context.Context, opts *options) (*Report, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.FromConfig(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	// Keep stdout for the report
	logger.SetOutput(os.Stderr, os.Stderr)

	group, err := cfg.SRPGroup()
	if err != nil {
		return nil, err
	}
	digest, err := cfg.SRPDigest()
	if err != nil {
		return nil, err
	}

	logger.Info("srpcheck starting", map[string]any{
		"version": version,
		"group":   group.Name,
		"digest":  digest.String(),
	})

	verifiers, password, err := loadVerifiers(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("verifiers loaded", map[string]any{"count": verifiers.Len()})

	authenticator, err := auth.NewAuthenticator(cfg, verifiers, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}
	defer authenticator.Close()

	report := &Report{Group: group.Name, Digest: digest.String(), Verifiers: verifiers.Len()}
	report.Add("rfc5054-vector", knownAnswerCheck())
	report.Add("loopback-handshake", loopbackCheck(authenticator, loopbackClientID, opts.identity, password, false))
	report.Add("loopback-wrong-password", loopbackCheck(authenticator, loopbackClientID+"-negative", opts.identity, password, true))

	logger.Info("srpcheck finished", map[string]any{
		"passed":             report.Passed(),
		"pending_handshakes": authenticator.PendingHandshakes(),
		"tracked_clients":    authenticator.TrackedClients(),
	})

	return report, nil
}

// loadVerifiers returns the verifier source for the loopback checks and the password to use.
// Without a verifier file, the identity is registered in memory.
func loadVerifiers(ctx context.Context, cfg *config.Config, opts *options) (*auth.MemoryVerifiers, []byte, error) {
	group, err := cfg.SRPGroup()
	if err != nil {
		return nil, nil, err
	}
	digest, err := cfg.SRPDigest()
	if err != nil {
		return nil, nil, err
	}

	if opts.verifierPath != "" {
		verifiers, err := auth.LoadVerifierFile(ctx, opts.verifierPath, group, digest)
		if err != nil {
			return nil, nil, err
		}
		return verifiers, []byte(opts.password), nil
	}

	password := []byte(opts.password)
	if len(password) == 0 {
		raw, err := srp.GenerateSalt(nil, 24)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate password: %w", err)
		}
		password = []byte(base64.RawURLEncoding.EncodeToString(raw))
	}

	verifiers := auth.NewMemoryVerifiers(group, digest)
	if _, err := verifiers.Register(opts.identity, password, cfg.SRP.SaltLength); err != nil {
		return nil, nil, fmt.Errorf("failed to register %s: %w", opts.identity, err)
	}

	return verifiers, password, nil
}
