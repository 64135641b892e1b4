package gmail

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestIsSystemic(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "unauthorized", err: &googleapi.Error{Code: 401}, want: true},
		{name: "forbidden", err: &googleapi.Error{Code: 403}, want: true},
		{name: "quota exceeded", err: &googleapi.Error{Code: 429}, want: true},
		{name: "not found", err: &googleapi.Error{Code: 404}, want: false},
		{name: "server error", err: &googleapi.Error{Code: 500}, want: false},
		{name: "wrapped unauthorized", err: fmt.Errorf("get: %w", &googleapi.Error{Code: 401}), want: true},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSystemic(tt.err); got != tt.want {
				t.Errorf("isSystemic(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
