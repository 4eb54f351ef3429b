package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "a combat is already running",
			expected: "FAILED_PRECONDITION: a combat is already running",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "session ID is required",
			expected: "INVALID_ARGUMENT: session ID is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.InvalidArgument("session ID is required").
		WithMeta("session_id", "table-1").
		WithMeta("backend", "redis")

	s.Equal("table-1", err.Meta["session_id"])
	s.Equal("redis", err.Meta["backend"])
}

func (s *ErrorsTestSuite) TestWrap() {
	base := fmt.Errorf("connection refused")

	wrapped := errors.Wrap(base, "failed to save snapshot")
	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Contains(wrapped.Error(), "connection refused")
	s.ErrorIs(wrapped, base)

	s.Nil(errors.Wrap(nil, "ignored"))
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.InvalidArgument("session ID is required").WithMeta("backend", "sqlite")

	wrapped := errors.Wrapf(base, "failed to load %s", "snapshot")
	s.Equal(errors.CodeInvalidArgument, wrapped.Code)
	s.Equal("sqlite", wrapped.Meta["backend"])
	s.True(errors.IsInvalidArgument(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := fmt.Errorf("dial tcp: timeout")

	wrapped := errors.WrapWithCode(base, errors.CodeUnavailable, "redis unavailable")
	s.Equal(errors.CodeUnavailable, errors.GetCode(wrapped))
	s.Equal("redis unavailable", wrapped.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err := errors.FailedPrecondition("no one is acting right now")
	s.True(errors.Is(err, errors.FailedPrecondition("anything")))
	s.False(errors.Is(err, errors.Internal("anything")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(errors.InvalidArgumentf("count must be positive: %d", 0)))
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(errors.FailedPrecondition("no combat")))
}
