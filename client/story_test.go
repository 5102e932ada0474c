// story_test.go
//go:build !integration
// +build !integration

package client

import "testing"

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "title is required"}
	if err.Error() != "title is required" {
		t.Fail()
	}
}

func TestAPIErrorFallback(t *testing.T) {
	err := &APIError{StatusCode: 500}
	if err.Error() != "unexpected status 500" {
		t.Fail()
	}
}
