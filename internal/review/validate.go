package review

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNoPayload          = errors.New("result holds no payload")
	ErrSchemaMismatch     = errors.New("payload does not match the search result schema")
	ErrTotalCountMismatch = errors.New("total_count does not match the number of reviews")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate decodes the payload of r into a [SearchResult] and checks it.
// The decoded value is returned whenever decoding succeeded, even if
// validation reported problems. r itself is never changed.
func Validate(r Result) (*SearchResult, error) {
	if r.Failed() {
		return nil, ErrNoPayload
	}

	var sr SearchResult
	if err := json.Unmarshal(r.payload, &sr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}

	var errs []error
	if err := validate.Struct(sr); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrSchemaMismatch, err))
	}

	if sr.TotalCount != len(sr.Reviews) {
		errs = append(errs, fmt.Errorf("%w: total_count is %d, got %d reviews",
			ErrTotalCountMismatch, sr.TotalCount, len(sr.Reviews)))
	}

	return &sr, errors.Join(errs...)
}
