package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Time starts a timer for the named operation and returns a func that logs
// its duration. Call it deferred with a pointer to the operation's named
// error result:
//
//	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)
//
// The logger is taken from ctx, so request-scoped fields such as req_id are
// carried over.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		logger := zerolog.Ctx(ctx)
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Warn().Err(*errp).Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("operation failed")
			return
		}
		logger.Debug().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("operation completed")
	}
}
