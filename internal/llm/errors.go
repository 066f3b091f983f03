package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFatalAPI marks provider failures that retrying cannot fix: exhausted
// credits, rate limits, bad credentials. Callers running batches should stop
// instead of burning through the remaining work. Check with errors.Is().
var ErrFatalAPI = errors.New("fatal API error")

// fatalPatterns are matched case-insensitively against provider error text.
var fatalPatterns = []string{
	"credit balance",
	"rate limit",
	"quota",
	"billing",
	"api key",
	"authentication",
	"unauthorized",
	"401",
	"403",
}

// isFatalAPIError reports whether err looks like a non-retryable provider
// failure. Provider SDKs expose these only as message text, so this is a
// substring heuristic.
func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range fatalPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// wrapFatalError tags fatal provider errors with ErrFatalAPI and passes
// everything else through unchanged.
func wrapFatalError(err error) error {
	if err == nil {
		return nil
	}
	if isFatalAPIError(err) {
		return fmt.Errorf("%w: %v", ErrFatalAPI, err)
	}
	return err
}
