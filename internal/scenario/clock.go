package scenario

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider used for generated defaults (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }
