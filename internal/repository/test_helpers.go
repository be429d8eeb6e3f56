package repository

import "net/http"

// RoundTripperFunc lets tests stub the Dark Sky upstream by mocking
// http.Client responses.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}
