package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "usage sentinel", err: ErrUsage, want: ExitOK},
		{name: "argument parse", err: Newf(ErrArgumentParse, ExitFailure, "bad rank %q", "abc"), want: ExitFailure},
		{name: "fetch", err: Fetch("https://example.com", errors.New("connection refused")), want: ExitFetch},
		{name: "wrapped fetch", err: fmt.Errorf("run: %w", Fetch("x", errors.New("boom"))), want: ExitFetch},
		{name: "bare fetch sentinel", err: fmt.Errorf("oops: %w", ErrFetch), want: ExitFetch},
		{name: "unknown", err: errors.New("something else"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := Fetch("https://example.com", errors.New("timeout"))
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, "fetch error: https://example.com: timeout", err.Error())
}

func TestFetchKeepsCause(t *testing.T) {
	urlErr := &url.Error{Op: "Get", URL: "https://example.com", Err: context.Canceled}
	err := fmt.Errorf("run: %w", Fetch("https://example.com", urlErr))

	assert.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, context.Canceled)

	var target *url.Error
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "Get", target.Op)
	assert.Equal(t, ExitFetch, ExitCode(err))
}

func TestNewMessage(t *testing.T) {
	err := New(ErrUsage, ExitOK, "unknown flag: --bogus")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Equal(t, "usage error: unknown flag: --bogus", err.Error())
}
