package spotify

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

// ErrTotalChanged reports that a collection's advertised total moved while
// its pages were being fetched, so the assembled listing cannot be trusted.
var ErrTotalChanged = errors.New("spotify: collection changed while paging")

// APIError is the error body returned by the Spotify Web API.
type APIError struct {
	Inner struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify api error: %d %s", e.Inner.Status, e.Inner.Message)
}

// handleAPIError folds the transport error and the API error response of a
// request into a single error, nil when the call succeeded.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("%s: %w", operation, requestErr)
	}

	// got a response, but the api returned an error
	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok {
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("%s: unexpected response %s", operation, resp.Status)
	}

	return nil
}
