package gondarray

import (
	logpkg "github.com/echa/log"
)

// log is the library logger. Output is disabled by default until the
// caller requests it with UseLogger.
var log logpkg.Logger = logpkg.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	log = logpkg.Disabled
}

// UseLogger routes library logging (registry debug, warn-level mark
// mismatches) to the given logger.
func UseLogger(logger logpkg.Logger) {
	log = logger
}
