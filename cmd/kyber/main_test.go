package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSelfTestCommand(t *testing.T) {

	t.Run("Seeded", func(t *testing.T) {
		_, stderr, err := execute(t, "selftest", "--trials", "8", "--seed", "6b79626572", "--log-level", "info")
		require.NoError(t, err)
		require.Contains(t, stderr, "mismatches: 0/8")
		require.Contains(t, stderr, "fingerprint")
		require.NotContains(t, stderr, "DEBU")
	})

	t.Run("Reproducible", func(t *testing.T) {
		fingerprint := func() string {
			_, stderr, err := execute(t, "selftest", "--trials", "2", "--seed", "00", "--log-level", "info")
			require.NoError(t, err)
			for _, line := range strings.Split(stderr, "\n") {
				if i := strings.Index(line, "fingerprint: "); i >= 0 {
					return line[i:]
				}
			}
			t.Fatal("no fingerprint logged")
			return ""
		}
		require.Equal(t, fingerprint(), fingerprint())
	})

	t.Run("ConfigFile", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "kyber.toml")
		require.NoError(t, os.WriteFile(f, []byte("[SelfTest]\nTrials = 3\nSeed = \"01\"\n\n[Logging]\nLevel = \"NOTICE\"\n"), 0600))

		_, stderr, err := execute(t, "selftest", "--config", f)
		require.NoError(t, err)
		require.Contains(t, stderr, "mismatches: 0/3")

		// flags take precedence over the file
		_, stderr, err = execute(t, "selftest", "--config", f, "--trials", "4")
		require.NoError(t, err)
		require.Contains(t, stderr, "mismatches: 0/4")
	})

	t.Run("LogFile", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "kyber.log")
		_, stderr, err := execute(t, "selftest", "--trials", "1", "--seed", "02", "--log-file", f)
		require.NoError(t, err)
		require.Empty(t, stderr)
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		require.Contains(t, string(b), "mismatches: 0/1")
	})

	t.Run("Invalid", func(t *testing.T) {
		for name, args := range map[string][]string{
			"Trials":        {"--trials", "-2"},
			"ZeroTrials":    {"--trials", "0"},
			"Seed":          {"--seed", "zz"},
			"MaxMismatches": {"--max-mismatches", "-1"},
			"Level":         {"--log-level", "chatty"},
			"Config":        {"--config", filepath.Join(t.TempDir(), "missing.toml")},
			"Args":          {"extra"},
		} {
			t.Run(name, func(t *testing.T) {
				_, _, err := execute(t, append([]string{"selftest"}, args...)...)
				require.Error(t, err)
				require.NotErrorIs(t, err, errMismatch)
			})
		}
	})
}

func TestSchemesCommand(t *testing.T) {
	stdout, _, err := execute(t, "schemes")
	require.NoError(t, err)
	require.Contains(t, stdout, "Kyber512-CPA")
	require.Contains(t, stdout, "public key 2304 B")
	require.Contains(t, stdout, "ciphertext 1152 B")
	require.Contains(t, stdout, "shared key 32 B")
}
