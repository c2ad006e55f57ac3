package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tuneinsight/kyber/core/kem"
	"github.com/tuneinsight/kyber/utils/sampling"
)

const (
	defaultTrials   = 1000
	defaultLogLevel = "NOTICE"
	maxSeedSize     = sampling.MaxKeySize
)

// SelfTest is the selftest configuration.
type SelfTest struct {
	// Trials is the number of KeyGen, Encapsulate and Decapsulate rounds.
	// Zero, or an absent key, selects the default of 1000.
	Trials int

	// Seed is the hex encoded key of the deterministic randomness source.
	// If empty, the operating system's randomness is used.
	Seed string

	// MaxMismatches is the number of mismatching shared secrets tolerated
	// before the command fails.
	MaxMismatches int
}

func (sCfg *SelfTest) validate() error {
	if sCfg.Trials == 0 {
		sCfg.Trials = defaultTrials
	}
	if sCfg.Trials < 0 {
		return fmt.Errorf("config: SelfTest: Trials %d is invalid", sCfg.Trials)
	}
	if sCfg.MaxMismatches < 0 {
		return fmt.Errorf("config: SelfTest: MaxMismatches %d is invalid", sCfg.MaxMismatches)
	}
	if _, err := sCfg.SeedBytes(); err != nil {
		return err
	}
	return nil
}

// SeedBytes returns the decoded seed, or nil if no seed is set.
func (sCfg *SelfTest) SeedBytes() ([]byte, error) {
	if sCfg.Seed == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(sCfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("config: SelfTest: Seed is not hex: %w", err)
	}
	if len(b) > maxSeedSize {
		return nil, fmt.Errorf("config: SelfTest: Seed has %d bytes, at most %d are supported", len(b), maxSeedSize)
	}
	return b, nil
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stderr will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl // Force uppercase.
	return nil
}

// Config is the top level kyber configuration.
type Config struct {
	SelfTest   *SelfTest
	Parameters *kem.ParametersLiteral
	Logging    *Logging
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration. Most people should call one of the Load variants
// instead.
func (cfg *Config) FixupAndValidate() error {
	if cfg.SelfTest == nil {
		cfg.SelfTest = &SelfTest{}
	}
	if cfg.Parameters == nil {
		lit := kem.Kyber512
		cfg.Parameters = &lit
	}
	if cfg.Logging == nil {
		cfg.Logging = &Logging{}
	}
	if err := cfg.SelfTest.validate(); err != nil {
		return err
	}
	if _, err := kem.NewParametersFromLiteral(*cfg.Parameters); err != nil {
		return fmt.Errorf("config: Parameters: %w", err)
	}
	return cfg.Logging.validate()
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	if b == nil {
		return nil, errors.New("no nil buffer as config file")
	}

	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: unknown keys %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
