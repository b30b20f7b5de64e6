package api

import (
	"errors"
	"strings"
	"testing"
)

func TestInvalidRequestMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := newInvalidRequest("pmf: at least one row required")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected %v to match ErrInvalidRequest", err)
	}
	if got := err.Error(); got != "pmf: at least one row required" {
		t.Fatalf("message: got %q", got)
	}
}

func TestDecodeJSONWrapsInvalidRequest(t *testing.T) {
	t.Parallel()

	_, err := decodeJSON[QuantizeRequest](strings.NewReader(`{"precision":`))
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected decode error to match ErrInvalidRequest, got %v", err)
	}
}
