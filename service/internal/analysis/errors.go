// internal/analysis/errors.go
package analysis

import (
	"errors"

	engine "github.com/jason-s-yu/gangoffour/engine"
)

var (
	ErrEmptyHand    = errors.New("hand is empty")
	ErrHandTooLarge = errors.New("hand exceeds the maximum size")
	ErrOpponents    = errors.New("opponent hand sizes must be at most 3 values between 0 and 16")
	ErrLogits       = errors.New("too many logits")
)

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	var pe *engine.ParseError
	var ce *engine.CopyError
	switch {
	case errors.As(err, &pe), errors.As(err, &ce):
		return true
	case errors.Is(err, ErrEmptyHand), errors.Is(err, ErrHandTooLarge),
		errors.Is(err, ErrOpponents), errors.Is(err, ErrLogits):
		return true
	}
	return false
}
