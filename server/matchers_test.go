package server_test

import (
	"fmt"
	"strings"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

type MatchBackendErrorMatcher struct {
	Error error
}

func (matcher *MatchBackendErrorMatcher) Match(actual interface{}) (success bool, err error) {
	body, ok := actual.(map[string]interface{})
	if !ok {
		return false, fmt.Errorf("MatchBackendError matcher requires a decoded response body, Got:\n%s", format.Object(actual, 1))
	}

	detail, ok := body["detail"].(string)
	if !ok {
		return false, nil
	}

	return strings.Contains(detail, matcher.Error.Error()), nil
}

func (matcher *MatchBackendErrorMatcher) FailureMessage(actual interface{}) (message string) {
	return format.Message(actual, "to carry detail", matcher.Error.Error())
}

func (matcher *MatchBackendErrorMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	return format.Message(actual, "not to carry detail", matcher.Error.Error())
}

func MatchBackendError(error error) types.GomegaMatcher {
	return &MatchBackendErrorMatcher{
		Error: error,
	}
}
