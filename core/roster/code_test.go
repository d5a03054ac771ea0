package roster

import "testing"

func TestNextCode(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
		wantErr  error
	}{
		{name: "empty roster", base: "A001", want: "A001"},
		{name: "sequence extends", base: "A001", existing: []string{"A001", "A002"}, want: "A003"},
		{name: "gap filled first", base: "A001", existing: []string{"A001", "A003", "A004"}, want: "A002"},
		{name: "gap at the front", base: "A005", existing: []string{"A002", "A003"}, want: "A001"},
		{name: "width follows base", base: "EST01", existing: []string{"EST01"}, want: "EST02"},
		{name: "overflow widens", base: "A1", existing: []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9"}, want: "A10"},
		{name: "foreign prefixes ignored", base: "A001", existing: []string{"B001", "A001", "C001"}, want: "A002"},
		{name: "malformed existing ignored", base: "A001", existing: []string{"A001", "lol", "A-2"}, want: "A002"},
		{name: "malformed base", base: "001", wantErr: ErrMalformedCode},
		{name: "no digits", base: "ABC", wantErr: ErrMalformedCode},
		{name: "empty base", base: "", wantErr: ErrMalformedCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextCode(tt.base, tt.existing)
			if err != tt.wantErr {
				t.Fatalf("NextCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NextCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
