// Package selftest runs repeated KeyGen, Encapsulate and Decapsulate trials
// and reports the mismatch rate along with noise and timing statistics.
package selftest

import (
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/zeebo/blake3"

	"github.com/tuneinsight/kyber/core/kem"
	"github.com/tuneinsight/kyber/ring"
	"github.com/tuneinsight/kyber/utils"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// FingerprintSize is the size in bytes of a public key fingerprint.
const FingerprintSize = 16

// Options configures a run.
type Options struct {
	// Trials is the number of key pairs generated, each with one encapsulation.
	Trials int
	// OnTrial, if not nil, is called after each trial.
	OnTrial func(trial int, match bool)
}

// Durations summarizes the running time of one operation, in milliseconds.
type Durations struct {
	Mean   float64
	Median float64
	StdDev float64
}

// Report is the outcome of a run.
type Report struct {
	Trials     int
	Mismatches int
	// MismatchedBits is the total number of wrongly decoded message bits.
	MismatchedBits int

	// Fingerprint is the fingerprint of the first public key.
	Fingerprint string

	// Statistics of the decryption noise w - Encode(m), centered in (-Q/2, Q/2].
	MaxNoise    float64
	NoiseStdDev float64
	NoiseP99    float64
	// NoiseThreshold is the largest absolute noise that always decodes
	// correctly, [ring.DecodingBound].
	NoiseThreshold float64

	KeyGen      Durations
	Encapsulate Durations
	Decapsulate Durations
}

// MismatchRate returns the fraction of trials whose shared secrets differ.
func (r Report) MismatchRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Mismatches) / float64(r.Trials)
}

// Fingerprint returns the hex encoding of the first FingerprintSize bytes
// of the BLAKE3 digest of the serialized public key.
func Fingerprint(pk *kem.PublicKey) (string, error) {
	data, err := pk.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("cannot Fingerprint: %w", err)
	}
	hasher := blake3.New()
	if _, err = hasher.Write(data); err != nil {
		return "", fmt.Errorf("cannot Fingerprint: %w", err)
	}
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:FingerprintSize]), nil
}

// Run performs opts.Trials trials with randomness read from prng.
// Mismatches are counted in the report; an error is only returned if an
// operation fails.
func Run(params kem.Parameters, prng sampling.PRNG, opts Options) (r *Report, err error) {

	if opts.Trials < 1 {
		return nil, fmt.Errorf("cannot Run: trials=%d must be positive", opts.Trials)
	}

	r = &Report{
		Trials:         opts.Trials,
		NoiseThreshold: float64(ring.DecodingBound),
	}

	noise := make([]float64, 0, opts.Trials*params.N())
	absNoise := make([]float64, 0, opts.Trials*params.N())
	var tKeyGen, tEnc, tDec []float64

	for trial := 0; trial < opts.Trials; trial++ {

		start := time.Now()
		pk, sk, err := kem.KeyGen(params, prng)
		if err != nil {
			return nil, fmt.Errorf("cannot Run: trial %d: %w", trial, err)
		}
		tKeyGen = append(tKeyGen, milliseconds(time.Since(start)))

		if trial == 0 {
			if r.Fingerprint, err = Fingerprint(pk); err != nil {
				return nil, err
			}
		}

		start = time.Now()
		ct, ss, err := kem.Encapsulate(params, pk, prng)
		if err != nil {
			return nil, fmt.Errorf("cannot Run: trial %d: %w", trial, err)
		}
		tEnc = append(tEnc, milliseconds(time.Since(start)))

		dec := kem.NewDecapsulator(params, sk)

		start = time.Now()
		ssHave, err := dec.DecapsulateNew(ct)
		if err != nil {
			return nil, fmt.Errorf("cannot Run: trial %d: %w", trial, err)
		}
		tDec = append(tDec, milliseconds(time.Since(start)))

		match := ss.Equal(ssHave)
		if !match {
			r.Mismatches++
			r.MismatchedBits += ss.Distance(ssHave)
		}

		var w, mPoly ring.Poly
		if err = dec.Decrypt(ct, &w); err != nil {
			return nil, fmt.Errorf("cannot Run: trial %d: %w", trial, err)
		}
		ring.EncodeMessage((*[kem.MessageSize]byte)(ss), &mPoly)
		ring.Sub(&w, &mPoly, &w)

		for _, c := range w {
			v := float64(utils.CenterMod(c, ring.Q))
			noise = append(noise, v)
			absNoise = append(absNoise, math.Abs(v))
		}

		if opts.OnTrial != nil {
			opts.OnTrial(trial, match)
		}
	}

	if r.MaxNoise, err = stats.Max(absNoise); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}
	if r.NoiseStdDev, err = stats.StandardDeviation(noise); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}
	if r.NoiseP99, err = stats.Percentile(absNoise, 99); err != nil {
		return nil, fmt.Errorf("cannot Run: %w", err)
	}

	if r.KeyGen, err = summarize(tKeyGen); err != nil {
		return nil, err
	}
	if r.Encapsulate, err = summarize(tEnc); err != nil {
		return nil, err
	}
	if r.Decapsulate, err = summarize(tDec); err != nil {
		return nil, err
	}

	return r, nil
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func summarize(values []float64) (d Durations, err error) {
	if d.Mean, err = stats.Mean(values); err != nil {
		return d, fmt.Errorf("cannot summarize durations: %w", err)
	}
	if d.Median, err = stats.Median(values); err != nil {
		return d, fmt.Errorf("cannot summarize durations: %w", err)
	}
	if d.StdDev, err = stats.StandardDeviation(values); err != nil {
		return d, fmt.Errorf("cannot summarize durations: %w", err)
	}
	return
}
