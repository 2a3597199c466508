// FILE: lixenwraith/appconfig/timing.go
package appconfig

import "time"

// File watching timing
const (
	MinDebounce     = 10 * time.Millisecond  // Floor applied to WatchOptions.Debounce
	DefaultDebounce = 500 * time.Millisecond // File change coalescence period
)
