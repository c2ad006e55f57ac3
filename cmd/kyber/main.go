// Command kyber runs the KEM self-test: repeated KeyGen, Encapsulate and
// Decapsulate rounds. The exit status is 0 if and only if the number of
// mismatching shared secrets is within the configured bound.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/tuneinsight/kyber/core/kem"
	"github.com/tuneinsight/kyber/internal/selftest"
	"github.com/tuneinsight/kyber/schemes"
	"github.com/tuneinsight/kyber/utils/log"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// Flag name constants to avoid duplication
const (
	flagConfig        = "config"
	flagTrials        = "trials"
	flagSeed          = "seed"
	flagMaxMismatches = "max-mismatches"
	flagLogLevel      = "log-level"
	flagLogFile       = "log-file"
)

// errMismatch is returned when more shared secrets mismatch than tolerated.
var errMismatch = errors.New("shared secret mismatch")

const (
	exitError    = 1
	exitMismatch = 2
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(versioninfo.Short()),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		if errors.Is(err, errMismatch) {
			os.Exit(exitMismatch)
		}
		os.Exit(exitError)
	}
}

func errorHandler(w io.Writer, styles fang.Styles, err error) {
	_, _ = fmt.Fprintln(w, styles.ErrorHeader.String())
	_, _ = fmt.Fprintln(w, styles.ErrorText.Render(err.Error()+"."))
	_, _ = fmt.Fprintln(w)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "kyber",
		Short:         "Kyber KEM tools",
		Long:          "Tools for the Kyber-style lattice key-encapsulation mechanism.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newSelfTestCommand(), newSchemesCommand())
	return root
}

func newSelfTestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run KeyGen, Encapsulate and Decapsulate rounds",
		Long: `Run repeated KeyGen, Encapsulate and Decapsulate rounds and report the
mismatch rate and the decryption noise statistics.

The command fails if more than --max-mismatches shared secrets differ.

Examples:
  # 1000 rounds from the operating system's randomness
  kyber selftest

  # reproducible rounds from a fixed seed
  kyber selftest --trials 100 --seed 00112233`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runSelfTest(cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringP(flagConfig, "f", "", "path to an optional TOML config file")
	cmd.Flags().Int(flagTrials, defaultTrials, "number of rounds, must be positive")
	cmd.Flags().String(flagSeed, "", "hex encoded seed of a deterministic randomness source (at most 64 bytes)")
	cmd.Flags().Int(flagMaxMismatches, 0, "number of mismatching shared secrets tolerated")
	cmd.Flags().String(flagLogLevel, defaultLogLevel, "log level: ERROR, WARNING, NOTICE, INFO or DEBUG")
	cmd.Flags().String(flagLogFile, "", "log file, stderr if empty")

	return cmd
}

// loadConfig reads the config file, if any, and overrides its values with
// the flags set on the command line.
func loadConfig(cmd *cobra.Command) (cfg *Config, err error) {
	flags := cmd.Flags()

	if f, _ := flags.GetString(flagConfig); f != "" {
		if cfg, err = LoadFile(f); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = new(Config)
		if err = cfg.FixupAndValidate(); err != nil {
			return nil, err
		}
	}

	if flags.Changed(flagTrials) {
		trials, _ := flags.GetInt(flagTrials)
		if trials <= 0 {
			return nil, fmt.Errorf("--%s must be positive, got %d", flagTrials, trials)
		}
		cfg.SelfTest.Trials = trials
	}
	if flags.Changed(flagSeed) {
		cfg.SelfTest.Seed, _ = flags.GetString(flagSeed)
	}
	if flags.Changed(flagMaxMismatches) {
		cfg.SelfTest.MaxMismatches, _ = flags.GetInt(flagMaxMismatches)
	}
	if flags.Changed(flagLogLevel) {
		cfg.Logging.Level, _ = flags.GetString(flagLogLevel)
	}
	if flags.Changed(flagLogFile) {
		cfg.Logging.File, _ = flags.GetString(flagLogFile)
	}

	if err = cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogBackend(cfg *Logging, stderr io.Writer) (*log.Backend, error) {
	if cfg.Disable || cfg.File != "" {
		return log.New(cfg.File, cfg.Level, cfg.Disable)
	}
	return log.NewWriter(stderr, cfg.Level)
}

func runSelfTest(cfg *Config, stderr io.Writer) (err error) {

	backend, err := newLogBackend(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	defer backend.Close()

	logger := backend.GetLogger("selftest")

	params, err := kem.NewParametersFromLiteral(*cfg.Parameters)
	if err != nil {
		return err
	}

	seed, err := cfg.SelfTest.SeedBytes()
	if err != nil {
		return err
	}

	var prng sampling.PRNG
	if seed != nil {
		if prng, err = sampling.NewKeyedPRNG(seed); err != nil {
			return err
		}
		logger.Noticef("deterministic randomness from a %d-byte seed", len(seed))
	} else {
		if prng, err = sampling.NewPRNG(); err != nil {
			return err
		}
	}

	logger.Noticef("parameters %s, %d trials", params, cfg.SelfTest.Trials)

	report, err := selftest.Run(params, prng, selftest.Options{
		Trials: cfg.SelfTest.Trials,
		OnTrial: func(trial int, match bool) {
			if !match {
				logger.Warningf("trial %d: shared secret mismatch", trial)
			} else {
				logger.Debugf("trial %d: ok", trial)
			}
		},
	})
	if err != nil {
		return err
	}

	logger.Infof("first public key fingerprint: %s", report.Fingerprint)
	logger.Infof("noise: max |e| = %.0f, std dev = %.2f, p99 = %.0f, decoding threshold = %.0f",
		report.MaxNoise, report.NoiseStdDev, report.NoiseP99, report.NoiseThreshold)
	logger.Infof("keygen %.3f ms, encapsulate %.3f ms, decapsulate %.3f ms (mean)",
		report.KeyGen.Mean, report.Encapsulate.Mean, report.Decapsulate.Mean)
	logger.Noticef("mismatches: %d/%d (rate %g), %d wrong bits",
		report.Mismatches, report.Trials, report.MismatchRate(), report.MismatchedBits)

	if report.Mismatches > cfg.SelfTest.MaxMismatches {
		logger.Errorf("%d mismatches exceed the tolerated %d", report.Mismatches, cfg.SelfTest.MaxMismatches)
		return fmt.Errorf("%w: %d of %d trials", errMismatch, report.Mismatches, report.Trials)
	}
	return nil
}

func newSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List the KEM schemes and their sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, s := range schemes.All() {
				if _, err := fmt.Fprintf(w, "%s\tpublic key %d B\tprivate key %d B\tciphertext %d B\tshared key %d B\n",
					s.Name(), s.PublicKeySize(), s.PrivateKeySize(), s.CiphertextSize(), s.SharedKeySize()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
