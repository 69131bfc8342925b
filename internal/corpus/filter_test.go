package corpus

import "testing"

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op", ""} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterLettersForOtherLangs(t *testing.T) {
	filter := FilterForLang("de")
	for _, word := range []string{"straße", "löwe"} {
		if !filter(word) {
			t.Fatalf("expected %q to pass", word)
		}
	}
	for _, word := range []string{"co-op", "a1", ""} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	got := Filter([]string{"bake", "co-op", "bark"}, FilterForLang("en"))
	if len(got) != 2 || got[0] != "bake" || got[1] != "bark" {
		t.Fatalf("unexpected filter output: %v", got)
	}
}
