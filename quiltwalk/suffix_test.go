package quiltwalk

import "testing"

func TestFindCommonPatchSuffix(t *testing.T) {
	names := []string{"0001-foo.patch", "0002-bar.patch", "0003-baz.patch", "0004-qux.patch"}
	suffix, ok := FindCommonPatchSuffix(names)
	if !ok || suffix != ".patch" {
		t.Fatalf("got %q ok=%v, want .patch true", suffix, ok)
	}
}

func TestFindCommonPatchSuffixMixed(t *testing.T) {
	names := []string{"0001-foo.patch", "0002-bar.patch", "0003-baz.patch", "0004-qux"}
	suffix, ok := FindCommonPatchSuffix(names)
	if !ok || suffix != ".patch" {
		t.Fatalf("got %q ok=%v, want .patch true", suffix, ok)
	}
}

func TestFindCommonPatchSuffixSkipsReadmeAndSeries(t *testing.T) {
	names := []string{"README", "series", "00list", "0001-foo.patch", "0002-bar.patch", "0003-baz.patch"}
	suffix, ok := FindCommonPatchSuffix(names)
	if !ok || suffix != ".patch" {
		t.Fatalf("got %q ok=%v, want .patch true", suffix, ok)
	}
}

func TestFindCommonPatchSuffixEmpty(t *testing.T) {
	if _, ok := FindCommonPatchSuffix(nil); ok {
		t.Fatalf("expected no suffix for empty input")
	}
}
