// Package domain implements project and task mutations, the access policy,
// and the derived-status synchronization that follows task writes.
package domain

import (
	"context"
	"errors"
	"time"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
)

// defaultStoreTimeout bounds every store round-trip issued by the services.
const defaultStoreTimeout = 5 * time.Second

func boundedCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeFailure classifies a store error that is neither not-found nor a
// conflict: deadline expiry maps to Timeout, everything else to
// StoreUnavailable.
func storeFailure(message string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(errs.CodeTimeout, message+" timed out", err)
	}
	return errs.Wrap(errs.CodeStoreUnavailable, message, err)
}
