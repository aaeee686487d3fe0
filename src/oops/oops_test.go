package oops

import (
	"errors"
	"testing"
)

var sampleErrorValue = errors.New("some error occurred that you should handle")

type sampleErrorType struct {
	Message string
}

func (s sampleErrorType) Error() string {
	return s.Message
}

func TestNew(t *testing.T) {
	t.Run("errors.Is", func(t *testing.T) {
		err := New(sampleErrorValue, "test error")
		if !errors.Is(err, sampleErrorValue) {
			t.Fatal("error did not appear to wrap the sample value")
		}
	})
	t.Run("errors.As", func(t *testing.T) {
		err := New(sampleErrorType{Message: "some fancy error type has occurred"}, "test error")
		var sErr sampleErrorType
		if !errors.As(err, &sErr) {
			t.Fatal("error did not appear to wrap the sample error type")
		}
	})
	t.Run("stack is captured", func(t *testing.T) {
		err := New(nil, "test error").(*Error)
		if len(err.Stack) == 0 {
			t.Fatal("expected a call stack")
		}
	})
}
