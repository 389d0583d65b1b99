package models

import "github.com/gofiber/fiber/v2"

// ResultType tags an envelope as a success or a failure.
type ResultType string

const (
	Success ResultType = "SUCCESS"
	Failure ResultType = "FAILURE"
)

// StatusCode is the application-level outcome carried on every envelope.
// It travels inside the body; HTTPStatus maps it onto the transport.
type StatusCode string

const (
	StatusOK            StatusCode = "OK"
	StatusNotFound      StatusCode = "NOT_FOUND"
	StatusConflict      StatusCode = "CONFLICT"
	StatusInternalError StatusCode = "INTERNAL_ERROR"
)

// HTTPStatus maps the application status onto an HTTP status code.
func (s StatusCode) HTTPStatus() int {
	switch s {
	case StatusOK:
		return fiber.StatusOK
	case StatusNotFound:
		return fiber.StatusNotFound
	case StatusConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// UserResponse is the uniform envelope returned by every user directory
// operation. It is always returned by value; operations never raise.
type UserResponse struct {
	Message string     `json:"message"`
	Code    StatusCode `json:"status"`
	Type    ResultType `json:"result"`
	Users   []User     `json:"users,omitempty"`
}

// TweetResponse is the uniform envelope returned by every tweet engine
// operation.
type TweetResponse struct {
	Message string     `json:"message"`
	Code    StatusCode `json:"status"`
	Type    ResultType `json:"result"`
	Tweets  []Tweet    `json:"tweets,omitempty"`
}

// UserSuccess builds an OK envelope carrying the given users.
func UserSuccess(message string, users ...User) *UserResponse {
	return &UserResponse{Message: message, Code: StatusOK, Type: Success, Users: users}
}

// UserFailure builds a failure envelope with no payload.
func UserFailure(code StatusCode, message string) *UserResponse {
	return &UserResponse{Message: message, Code: code, Type: Failure}
}

// TweetSuccess builds an OK envelope carrying the given tweets.
func TweetSuccess(message string, tweets ...Tweet) *TweetResponse {
	return &TweetResponse{Message: message, Code: StatusOK, Type: Success, Tweets: tweets}
}

// TweetFailure builds a failure envelope with no payload.
func TweetFailure(code StatusCode, message string) *TweetResponse {
	return &TweetResponse{Message: message, Code: code, Type: Failure}
}
