package chrpos

import (
	"strings"
	"testing"
)

func TestParseRegion(t *testing.T) {
	for _, v := range []struct {
		Region string
		Chrom  string
		Start  uint32
		End    uint32
		OK     bool
	}{
		{"1:100-200", "1", 99, 200, true},
		{"chrX:1,000-2,000", "chrX", 999, 2000, true},
		{"7:5000", "7", 4999, 5000, true},
		{"HLA-A*01:01:1-5", "HLA-A*01:01", 0, 5, true},
		{"1:200-100", "", 0, 0, false},
		{"1:abc", "", 0, 0, false},
		{":1-5", "", 0, 0, false},
		{"", "", 0, 0, false},
	} {
		got, err := ParseRegion(v.Region)
		if (err == nil) != v.OK {
			t.Errorf("%q: expected ok=%t, got error %v", v.Region, v.OK, err)
			continue
		}
		if !v.OK {
			continue
		}
		if got.Chrom() != v.Chrom || got.Start() != v.Start || got.End() != v.End {
			t.Errorf("%q: expected %s:%d-%d, got %s:%d-%d", v.Region, v.Chrom, v.Start, v.End, got.Chrom(), got.Start(), got.End())
		}
	}
}

func TestWholeChromosome(t *testing.T) {
	got, err := ParseRegion("2")
	if err != nil {
		t.Fatal(err)
	}
	if got.Chrom() != "2" || got.Start() != 0 || !got.Contains("2", 200000000) {
		t.Errorf("expected all of chromosome 2, got %v", got)
	}
}

func TestContains(t *testing.T) {
	locus := MakeTabixLocus("1", 99, 200)

	for pos, expected := range map[int]bool{99: false, 100: true, 200: true, 201: false} {
		if got := locus.Contains("1", pos); got != expected {
			t.Errorf("1:%d: expected %t, got %t", pos, expected, got)
		}
	}
	if locus.Contains("2", 150) {
		t.Error("matched the wrong chromosome")
	}
}

func TestReadTabixLoci(t *testing.T) {
	bed := "track name=genes\n# comment\n1\t0\t100\tGENE1\n2\t50\t60\n3\t10\n"

	loci, err := ReadTabixLoci(strings.NewReader(bed))
	if err != nil {
		t.Fatal(err)
	}
	if len(loci) != 2 {
		t.Fatalf("expected 2 loci, got %d", len(loci))
	}
	if loci[1] != MakeTabixLocus("2", 50, 60) {
		t.Errorf("unexpected second locus %v", loci[1])
	}

	if _, err := ReadTabixLoci(strings.NewReader("# nothing\n")); err == nil {
		t.Error("expected an error for a file without loci")
	}
}

func TestMergeTabixLoci(t *testing.T) {
	loci := []TabixLocus{
		MakeTabixLocus("2", 10, 20),
		MakeTabixLocus("1", 300, 400),
		MakeTabixLocus("2", 0, 5),
		MakeTabixLocus("1", 100, 200),
		MakeTabixLocus("1", 150, 300),
		MakeTabixLocus("1", 500, 600),
	}

	expected := []TabixLocus{
		MakeTabixLocus("2", 0, 5),
		MakeTabixLocus("2", 10, 20),
		MakeTabixLocus("1", 100, 400),
		MakeTabixLocus("1", 500, 600),
	}

	got := MergeTabixLoci(loci)
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("locus %d: expected %v, got %v", i, expected[i], got[i])
		}
	}

	if loci[0] != MakeTabixLocus("2", 10, 20) {
		t.Error("input was modified")
	}
}
