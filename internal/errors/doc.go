// Package errors provides structured errors for the combat tracker.
//
// Combat intents never fail: stale IDs, degenerate orders and malformed
// snapshots all have silent recoveries. The errors in this package cover the
// edges around the engine instead: invalid component configuration, storage
// backends that cannot be reached, and bad CLI input.
//
// Creating errors:
//
//	err := errors.InvalidArgument("session ID is required")
//	err := errors.InvalidArgumentf("initiative must be a whole number: %q", arg)
//
// Wrapping keeps the code of an existing *Error:
//
//	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
//	    return nil, errors.Wrapf(err, "failed to save snapshot for session %s", sessionID)
//	}
//
// Config validation collects every missing field before failing:
//
//	vb := errors.NewValidationBuilder()
//	if c.Repository == nil {
//	    vb.RequiredField("Repository")
//	}
//	return vb.Build()
package errors
