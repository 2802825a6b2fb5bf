package studentid_test

import (
	"testing"

	"hwcheck/internal/studentid"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"single run", "123456789_hw.py", "123456789", true},
		{"embedded", "hw1-987654321-final.docx", "987654321", true},
		{"no run", "randomfile.txt", "", false},
		{"too short", "12345678.py", "", false},
		{"two runs leftmost wins", "201912345report2020.pdf", "201912345", true},
		{"two full ids", "111111111_222222222.zip", "111111111", true},
		{"ten digits yields first nine", "1234567890.py", "123456789", true},
		{"full width digits", "１２３４５６７８９作业.py", "123456789", true},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := studentid.Extract(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tc.input, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("Extract(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtractDoesNotSpliceAcrossRuns(t *testing.T) {
	got, ok := studentid.Extract("201912345report2020.pdf")
	if !ok {
		t.Fatal("expected a match")
	}
	if got == "123452020" {
		t.Fatalf("extracted a spliced substring %q", got)
	}
}
