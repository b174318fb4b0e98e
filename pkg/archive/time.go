// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"io/fs"
	"time"
)

// FixedZipTime is the earliest timestamp a zip header can hold (1980-01-01 UTC).
var FixedZipTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// FromEpoch converts a SOURCE_DATE_EPOCH value to a timestamp. Zero or
// negative values mean "unset" and return the zero time.
func FromEpoch(epoch int64) time.Time {
	if epoch <= 0 {
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

// normalizeMode reduces a file mode to 0o755 (any execute bit set) or 0o644
// so archives do not depend on the builder's umask.
func normalizeMode(mode fs.FileMode) fs.FileMode {
	if mode&0o111 != 0 {
		return 0o755
	}
	return 0o644
}
