package importer

import (
	"testing"
	"time"
)

func TestParseMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "empty", input: "", wantErr: true},
		{name: "integer minutes", input: "90", want: 90},
		{name: "decimal dot", input: "7.5", want: 7.5},
		{name: "decimal comma", input: "7,5", want: 7.5},
		{name: "surrounding space", input: " 30 ", want: 30},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "NaN", wantErr: true},
		{name: "invalid", input: "abc", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseMinutes(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected minutes for %q: want %v, got %v", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "rfc3339", input: "2024-03-04T09:15:00Z", want: time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)},
		{name: "space with offset", input: "2024-03-04 09:15:00+00:00", want: time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)},
		{name: "fractional with offset", input: "2024-03-04 09:15:00.5+00:00", want: time.Date(2024, 3, 4, 9, 15, 0, 500000000, time.UTC)},
		{name: "naive seconds", input: "2024-03-04 09:15:00", want: time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)},
		{name: "naive minutes", input: "2024-03-04 09:15", want: time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)},
		{name: "date only", input: "2024-03-04", want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "us date", input: "03/04/2024", want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
		{name: "german", input: "04.03.2024 09:15", want: time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseTimestamp(tc.input)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("unexpected time for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "yesterday", "2024-13-45"} {
		if _, err := parseTimestamp(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
