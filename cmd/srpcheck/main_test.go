package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer

	opts, err := parseFlags([]string{"-identity", "bob", "-output", "json"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "bob", opts.identity)
	assert.Equal(t, "json", opts.output)
	assert.Empty(t, opts.configPath)

	_, err = parseFlags([]string{"-output", "xml"}, &stderr)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-verifiers", "/tmp/v.json"}, &stderr)
	assert.ErrorContains(t, err, "-password is required")
}

func TestKnownAnswerCheck(t *testing.T) {
	assert.NoError(t, knownAnswerCheck())
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `srp:
  group: rfc5054-1024
  digest: sha256
logging:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_InMemoryIdentity(t *testing.T) {
	report, err := run(context.Background(), &options{
		configPath: writeTestConfig(t),
		identity:   "srpcheck",
		output:     "yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "rfc5054-1024", report.Group)
	assert.Equal(t, "sha256", report.Digest)
	assert.Equal(t, 1, report.Verifiers)
	require.Len(t, report.Checks, 3)
	assert.True(t, report.Passed(), "%+v", report.Checks)
}

func TestRun_VerifierFile(t *testing.T) {
	verifiers := auth.NewMemoryVerifiers(srp.RFC5054Group1024, srp.SHA256)
	_, err := verifiers.Register("device", []byte("s3cret"), 16)
	require.NoError(t, err)
	_, err = verifiers.Register("spare", []byte("other"), 16)
	require.NoError(t, err)
	verifierPath := filepath.Join(t.TempDir(), "verifiers.json")
	require.NoError(t, verifiers.Save(verifierPath))

	report, err := run(context.Background(), &options{
		configPath:   writeTestConfig(t),
		verifierPath: verifierPath,
		identity:     "device",
		password:     "s3cret",
	})
	require.NoError(t, err)
	assert.True(t, report.Passed(), "%+v", report.Checks)
	assert.Equal(t, 2, report.Verifiers)

	// A password that does not match the stored verifier fails the positive loopback check.
	report, err = run(context.Background(), &options{
		configPath:   writeTestConfig(t),
		verifierPath: verifierPath,
		identity:     "device",
		password:     "guess",
	})
	require.NoError(t, err)
	assert.False(t, report.Passed())
	assert.False(t, report.Checks[1].Passed)
	assert.Contains(t, report.Checks[1].Error, "AUTHENTICATION_FAILED")
}

func TestRun_InvalidConfig(t *testing.T) {
	_, err := run(context.Background(), &options{configPath: "/nonexistent/config.yaml"})
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestRun_InvalidConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("srp:\n  salt_length: -1\n"), 0o600))

	_, err := run(context.Background(), &options{configPath: path})
	assert.ErrorContains(t, err, "srp.salt_length must be between")
}

func TestReport_Format(t *testing.T) {
	report := &Report{Group: "rfc5054-2048", Digest: "sha256", Verifiers: 3}
	report.Add("ok", nil)
	report.Add("broken", errors.New("boom"))
	assert.False(t, report.Passed())

	out, err := report.Format(FormatJSON)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *report, decoded)

	out, err = report.Format(FormatYAML)
	require.NoError(t, err)
	decoded = Report{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *report, decoded)

	_, err = report.Format(Format("xml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"yaml": FormatYAML, "YML": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("table")
	assert.Error(t, err)
}
