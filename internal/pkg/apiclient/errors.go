package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const genericFailure = "Request failed. Please try again."

var ErrNotSignedIn = errors.New("not signed in")

// RequestFailedError is returned for any non-2xx answer or transport failure.
// StatusCode is 0 when no response arrived.
type RequestFailedError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// messageFrom picks the server's message out of a failed response body.
// Accepted shapes: {"error":{"message"}}, {"message"} and {"error":"..."}.
func messageFrom(body []byte) (code, message string) {
	var env struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return "", ""
	}

	if len(env.Error) > 0 {
		var nested struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Error, &nested); err == nil && nested.Message != "" {
			return nested.Code, nested.Message
		}
		code = nested.Code
	}
	if strings.TrimSpace(env.Message) != "" {
		return code, env.Message
	}
	var plain string
	if len(env.Error) > 0 && json.Unmarshal(env.Error, &plain) == nil && plain != "" {
		return code, plain
	}
	return code, ""
}
