package opus

/*
#cgo pkg-config: opus
#include <opus.h>
*/
import "C"

// Version returns the libopus version string, e.g. "libopus 1.4".
func Version() string {
	return C.GoString(C.opus_get_version_string())
}
