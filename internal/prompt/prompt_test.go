package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		wantBrief bool
	}{
		{"short question", "Hi", true},
		{"explain keyword", "Please explain relativity in depth", false},
		{"short with explain", "Explain Go", false},
		{"short with essay", "Essay on cats", false},
		{"short with describe", "DESCRIBE a cat", false},
		{"exactly 29 runes", strings.Repeat("a", 29), true},
		{"exactly 30 runes", strings.Repeat("a", 30), false},
		{"multibyte counted by rune", strings.Repeat("é", 29), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.question)
			if d.Brief != tt.wantBrief {
				t.Errorf("Decide(%q).Brief = %v, want %v", tt.question, d.Brief, tt.wantBrief)
			}
			if tt.wantBrief {
				if d.Text != BriefPrefix+tt.question {
					t.Errorf("Decide(%q).Text = %q, want prefixed prompt", tt.question, d.Text)
				}
			} else if d.Text != tt.question {
				t.Errorf("Decide(%q).Text = %q, want unmodified question", tt.question, d.Text)
			}
		})
	}
}

func TestDecide_Deterministic(t *testing.T) {
	if Decide("What is Go?") != Decide("What is Go?") {
		t.Error("Decide() should be deterministic")
	}
}

func TestDecisionCap(t *testing.T) {
	long := strings.Repeat("x", 450)
	exact := strings.Repeat("y", BriefAnswerCap)

	brief := Decision{Brief: true}
	got := brief.Cap(long)
	if len(got) != 303 {
		t.Errorf("Cap() length = %d, want 303", len(got))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("Cap() = %q, want ellipsis suffix", got)
	}
	if got[:300] != long[:300] {
		t.Error("Cap() should keep the first 300 characters")
	}

	if brief.Cap(exact) != exact {
		t.Error("Cap() should not modify answers of exactly 300 characters")
	}
	if brief.Cap("short") != "short" {
		t.Error("Cap() should not modify short answers")
	}

	full := Decision{Brief: false}
	if full.Cap(long) != long {
		t.Error("Cap() should not modify non-brief answers")
	}
}

func TestDecisionCap_Runes(t *testing.T) {
	long := strings.Repeat("ü", 301)
	got := Decision{Brief: true}.Cap(long)
	if n := utf8.RuneCountInString(got); n != 303 {
		t.Errorf("Cap() rune count = %d, want 303", n)
	}
	if !utf8.ValidString(got) {
		t.Error("Cap() must not split a multibyte character")
	}
}

func TestFollowUp(t *testing.T) {
	answer := `Go is a "compiled" language.`
	got := FollowUp(answer)

	if !strings.Contains(got, answer) {
		t.Errorf("FollowUp() should include the answer verbatim, got %q", got)
	}
	if !strings.Contains(got, "3 short and simple follow-up questions") {
		t.Errorf("FollowUp() missing instruction: %q", got)
	}
	if !strings.HasSuffix(got, "Give them as a plain list.") {
		t.Errorf("FollowUp() missing list instruction: %q", got)
	}
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered list",
			text: "1. What is X?\n2. Why use X?\n3. How does X work?",
			want: []string{"What is X?", "Why use X?", "How does X work?"},
		},
		{
			name: "blank lines and whitespace",
			text: "\n1.   First one  \n\n2.Second\n   \n",
			want: []string{"First one", "Second"},
		},
		{
			name: "windows line endings",
			text: "1. A?\r\n2. B?\r\n",
			want: []string{"A?", "B?"},
		},
		{
			name: "count not enforced",
			text: "1. a\n2. b\n3. c\n4. d\n5. e",
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name: "no dedup and bullets kept",
			text: "- same\n- same",
			want: []string{"- same", "- same"},
		},
		{
			name: "multi digit enumerator",
			text: "10. Tenth?",
			want: []string{"Tenth?"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSuggestions(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSuggestions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
