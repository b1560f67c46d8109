package api

import (
	"fmt"
	"io"
	"testing"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade"
	"github.com/elevatehq/palisade/store"
)

func TestMapError(t *testing.T) {
	scopeErr := fmt.Errorf("%w %q, want one of own, team, department, businessUnit, all", palisade.ErrUnknownScope, "region")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", store.ErrNotFound, forge.NotFound(store.ErrNotFound.Error())},
		{"access denied", palisade.ErrAccessDenied, forge.Forbidden(palisade.ErrAccessDenied.Error())},
		{"not authenticated", palisade.ErrNotAuthenticated, forge.Forbidden(palisade.ErrNotAuthenticated.Error())},
		{"unknown scope", scopeErr, forge.BadRequest(scopeErr.Error())},
		{"passthrough", io.ErrUnexpectedEOF, io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if got.Error() != tt.want.Error() {
				t.Fatalf("mapError(%v) = %q, want %q", tt.in, got.Error(), tt.want.Error())
			}
		})
	}

	if got := mapError(nil); got != nil {
		t.Fatalf("mapError(nil) = %v, want nil", got)
	}
}

func TestDefaultLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 50},
		{-5, 50},
		{25, 25},
		{1000, 1000},
		{5000, 1000},
	}
	for _, tt := range tests {
		if got := defaultLimit(tt.in); got != tt.want {
			t.Fatalf("defaultLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
