package sideeffect

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Run executes a best-effort side effect such as a notification or audit
// insert. A failure is logged and discarded so the primary mutation that
// triggered it is never rolled back or surfaced as an error to the caller.
func Run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		log.Error().Err(err).Str("side_effect", name).Msg("Side effect failed, continuing")
	}
}
