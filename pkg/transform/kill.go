// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"context"
	"os"
)

// killFunc builds the signal handler every transformer Script shares:
// the first signal cancels the read side (forcing fn's Read calls to
// fail) and marks the outcome as signaled; later signals report that the
// transform already accepted one.
func killFunc(cancel context.CancelFunc, signaled chan struct{}) func(os.Signal) bool {
	return func(os.Signal) bool {
		select {
		case signaled <- struct{}{}:
			cancel()
			return true
		default:
			return false
		}
	}
}
