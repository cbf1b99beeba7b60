package layout

import (
	"math"
	"strings"
	"testing"

	"persian-translator/internal/config"
)

func TestStringWidthClasses(t *testing.T) {
	size := 10.0
	tests := []struct {
		s    string
		want float64
	}{
		{" ", 2.5},
		{"7", 5.5},
		{"a", 5.0},
		{"م", 7.0},
		{"ab", 10.0},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.s, size); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("StringWidth(%q, 10) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestFitEmptyText(t *testing.T) {
	res := Fit("   ", 100, 20, 12)
	if len(res.Lines) != 0 {
		t.Errorf("expected no lines for blank text, got %v", res.Lines)
	}
	if res.Overflow {
		t.Error("blank text must not overflow")
	}
}

func TestFitSingleLineNoShrink(t *testing.T) {
	// "hello" at size 12: 5 * 0.5 * 12 = 30 wide, one 14.4pt line.
	res := Fit("hello", 100, 20, 12)
	if res.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", res.FontSize)
	}
	if res.Overflow {
		t.Error("unexpected overflow")
	}
	if len(res.Lines) != 1 || res.Lines[0] != "hello" {
		t.Errorf("Lines = %v", res.Lines)
	}
}

func TestFitWrapsAtWordBoundaries(t *testing.T) {
	// Each word is 30 wide at size 12; box fits one word per line.
	res := Fit("alpha bravo", 40, 100, 12)
	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", res.Lines)
	}
	if res.Lines[0] != "alpha" || res.Lines[1] != "bravo" {
		t.Errorf("Lines = %v", res.Lines)
	}
}

func TestFitCharFallbackForWideWord(t *testing.T) {
	// A single word wider than the box must split mid-word.
	res := Fit(strings.Repeat("x", 40), 60, 1000, 10)
	if len(res.Lines) < 2 {
		t.Fatalf("expected character-level split, got %v", res.Lines)
	}
	if res.Overflow {
		t.Error("tall box must not overflow")
	}
	joined := strings.Join(res.Lines, "")
	if joined != strings.Repeat("x", 40) {
		t.Errorf("characters lost in split: %q", joined)
	}
}

func TestFitShrinksToFit(t *testing.T) {
	// 30 Persian characters in a 100x20 box starting at 12pt. The text
	// needs two 17-character lines, which first fits at 8pt.
	text := strings.Repeat("م", 30)
	res := Fit(text, 100, 20, 12)
	if res.Overflow {
		t.Fatal("text should fit after shrinking")
	}
	if res.FontSize != 8.0 {
		t.Errorf("FontSize = %v, want 8.0", res.FontSize)
	}
	if len(res.Lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(res.Lines))
	}
}

func TestFitOverflowAtMinimum(t *testing.T) {
	res := Fit(strings.Repeat("م", 200), 50, 10, 12)
	if !res.Overflow {
		t.Fatal("expected overflow")
	}
	if res.FontSize != config.MinFontSize {
		t.Errorf("FontSize = %v, want minimum %v", res.FontSize, config.MinFontSize)
	}
	if len(res.Lines) == 0 {
		t.Error("overflow result must still carry best-effort lines")
	}
}

func TestFitNeverGrowsFont(t *testing.T) {
	res := Fit("hi", 1000, 1000, 9)
	if res.FontSize > 9 {
		t.Errorf("FontSize grew to %v", res.FontSize)
	}
}

func TestFitRaisesTinyInputSize(t *testing.T) {
	res := Fit("hi", 1000, 1000, 2)
	if res.FontSize != config.MinFontSize {
		t.Errorf("FontSize = %v, want clamped minimum %v", res.FontSize, config.MinFontSize)
	}
}

func TestLineHeightUsesConfiguredRatio(t *testing.T) {
	if got := LineHeight(10); math.Abs(got-10*config.LineHeightRatio) > 1e-9 {
		t.Errorf("LineHeight(10) = %v, want %v", got, 10*config.LineHeightRatio)
	}
}

func TestFitDeterministic(t *testing.T) {
	text := "نتایج آزمایش در جدول ۲ آمده است"
	first := Fit(text, 120, 40, 11)
	for i := 0; i < 10; i++ {
		got := Fit(text, 120, 40, 11)
		if got.FontSize != first.FontSize || got.Overflow != first.Overflow {
			t.Fatal("Fit is not deterministic")
		}
		if len(got.Lines) != len(first.Lines) {
			t.Fatal("line count differs between runs")
		}
		for j := range got.Lines {
			if got.Lines[j] != first.Lines[j] {
				t.Fatal("line content differs between runs")
			}
		}
	}
}

func TestFitPersianLinesAreVisualOrder(t *testing.T) {
	// Two non-joining letters come back reversed and shaped.
	res := Fit("اب", 100, 20, 12)
	if len(res.Lines) != 1 {
		t.Fatalf("Lines = %v", res.Lines)
	}
	if res.Lines[0] != "ﺏﺍ" {
		t.Errorf("line = %q, want visual-order shaped text", res.Lines[0])
	}
}
