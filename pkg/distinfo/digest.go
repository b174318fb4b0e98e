// SPDX-License-Identifier: MPL-2.0

package distinfo

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// DigestHex writes lowercase hexadecimal digests.
	DigestHex DigestEncoding = "hex"
	// DigestBase64URL writes unpadded URL-safe base64 digests, the form pip
	// and installer verify against.
	DigestBase64URL DigestEncoding = "base64url"

	// DigestAlgorithm prefixes every RECORD digest.
	DigestAlgorithm = "sha256"
)

// ErrInvalidDigestEncoding is returned when a DigestEncoding is not recognized.
var ErrInvalidDigestEncoding = errors.New("invalid digest encoding")

// DigestEncoding selects how RECORD digests are written.
type DigestEncoding string

// Validate returns an error if the encoding is not recognized.
func (e DigestEncoding) Validate() error {
	switch e {
	case DigestHex, DigestBase64URL:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidDigestEncoding, string(e), DigestHex, DigestBase64URL)
	}
}

// Encode renders a raw digest. The zero value encodes as hex.
func (e DigestEncoding) Encode(sum []byte) string {
	if e == DigestBase64URL {
		return base64.RawURLEncoding.EncodeToString(sum)
	}
	return hex.EncodeToString(sum)
}
