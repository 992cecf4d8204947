package model

import (
	"encoding/json"
	"testing"
)

// TestStatusString tests the human-readable status representation.
func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{name: "ok", status: StatusOk, want: "OK"},
		{name: "warning", status: StatusWarning, want: "WARNING"},
		{name: "error", status: StatusError, want: "ERROR"},
		{name: "unknown value", status: Status(99), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.status.String(); got != tt.want {
				t.Errorf("Status.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestStatusMarshalJSON tests that statuses serialize as strings.
func TestStatusMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{name: "ok", status: StatusOk, want: `"OK"`},
		{name: "warning", status: StatusWarning, want: `"WARNING"`},
		{name: "error", status: StatusError, want: `"ERROR"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.status)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("json.Marshal(%v) = %s, want %s", tt.status, data, tt.want)
			}
		})
	}
}

// TestStatusUnmarshalJSON tests round-tripping of the string form.
func TestStatusUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Status
	}{
		{name: "ok", input: `"OK"`, want: StatusOk},
		{name: "warning", input: `"WARNING"`, want: StatusWarning},
		{name: "error", input: `"ERROR"`, want: StatusError},
		{name: "unknown defaults to ok", input: `"SOMETHING"`, want: StatusOk},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got Status
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unmarshal %s = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
