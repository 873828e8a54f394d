package cmd

import "testing"

func TestReadRangesParsesClassStartEndLines(t *testing.T) {
	path := writeTemp(t, "ranges.txt", `
# a comment, and a blank line above
gp 0 10
gp 5 15
fp 20 30
`)
	ranges, err := readRanges(path)
	if err != nil {
		t.Fatalf("readRanges: %v", err)
	}
	if len(ranges) != 3 {
		t.Fatalf("expected 3 ranges, got %d", len(ranges))
	}
	if ranges[0].Start != 0 || ranges[0].End != 10 {
		t.Fatalf("unexpected first range: %+v", ranges[0])
	}
	if ranges[0].Class == ranges[2].Class {
		t.Fatalf("expected gp and fp lines to parse to distinct classes")
	}
}

func TestReadRangesRejectsMalformedLine(t *testing.T) {
	path := writeTemp(t, "bad-ranges.txt", "gp 0\n")
	if _, err := readRanges(path); err == nil {
		t.Fatalf("expected an error for a malformed line")
	}
}

func TestReadRangesRejectsUnknownClass(t *testing.T) {
	path := writeTemp(t, "bad-class.txt", "vec 0 10\n")
	if _, err := readRanges(path); err == nil {
		t.Fatalf("expected an error for an unknown register class")
	}
}
