// Package schemes contains the implemented cryptosystems.
package schemes

import (
	"strings"

	"github.com/katzenpost/hpqc/kem"

	"github.com/tuneinsight/kyber/schemes/kyber512"
)

var all = []kem.Scheme{
	kyber512.Scheme(),
}

// All returns the implemented KEM schemes.
func All() []kem.Scheme {
	return append([]kem.Scheme(nil), all...)
}

// ByName returns the scheme with the given name, case-insensitively, or nil.
func ByName(name string) kem.Scheme {
	for _, s := range all {
		if strings.EqualFold(s.Name(), name) {
			return s
		}
	}
	return nil
}
