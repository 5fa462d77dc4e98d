package cmd

import (
	"testing"
	"time"
)

func TestFilterFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   filterFlags
		wantErr bool
		zero    bool
	}{
		{name: "empty", flags: filterFlags{}, zero: true},
		{name: "range", flags: filterFlags{from: "2024-03-01", to: "2024-03-31"}},
		{name: "same day", flags: filterFlags{from: "2024-03-01", to: "2024-03-01"}},
		{name: "categories only", flags: filterFlags{categories: []string{"errors"}}},
		{name: "bad from", flags: filterFlags{from: "01.03.2024"}, wantErr: true},
		{name: "bad to", flags: filterFlags{to: "2024-13-01"}, wantErr: true},
		{name: "reversed", flags: filterFlags{from: "2024-04-01", to: "2024-03-01"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.flags.filter()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.IsZero() != tt.zero {
				t.Fatalf("expected IsZero=%v, got %+v", tt.zero, got)
			}
		})
	}
}

func TestFilterFlags_ParsesDaysInUTC(t *testing.T) {
	t.Parallel()

	got, err := filterFlags{from: "2024-03-01"}.filter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.From.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.From)
	}
}
