package fetcher

import (
	"errors"
	"fmt"
)

var ErrEmptyTopic = errors.New("topic must not be empty")

// InvocationError is returned when the model call itself failed.
// The provider error is available through errors.Unwrap.
type InvocationError struct {
	Topic string
	Err   error
}

func (e InvocationError) Error() string {
	return fmt.Sprintf("model invocation for topic '%s' failed: %v", e.Topic, e.Err)
}

func (e InvocationError) Unwrap() error {
	return e.Err
}
