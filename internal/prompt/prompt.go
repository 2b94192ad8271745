// Package prompt decides how a question is sent to the model and how the
// follow-up suggestion exchange is phrased and parsed.
package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// BriefPrefix is prepended to questions answered in brief mode.
	BriefPrefix = "Answer this briefly and to the point: "

	// BriefQuestionLimit is the exclusive rune length under which a
	// question may be answered briefly.
	BriefQuestionLimit = 30

	// BriefAnswerCap is the rune length a brief answer is cut to.
	BriefAnswerCap = 300

	// Ellipsis is appended to capped answers.
	Ellipsis = "..."
)

// explanatoryWords disable brief mode when found in the question.
var explanatoryWords = []string{"essay", "explain", "describe"}

// Decision is the prompt policy outcome for one submission.
type Decision struct {
	// Text is the prompt sent to the model.
	Text string
	// Brief means the answer is capped at BriefAnswerCap runes.
	Brief bool
}

// Decide applies the prompt policy to a trimmed question.
func Decide(question string) Decision {
	brief := utf8.RuneCountInString(question) < BriefQuestionLimit
	if brief {
		lower := strings.ToLower(question)
		for _, w := range explanatoryWords {
			if strings.Contains(lower, w) {
				brief = false
				break
			}
		}
	}

	if !brief {
		return Decision{Text: question}
	}
	return Decision{Text: BriefPrefix + question, Brief: true}
}

// Cap truncates a brief answer. Non-brief answers pass through unchanged.
func (d Decision) Cap(answer string) string {
	if !d.Brief || utf8.RuneCountInString(answer) <= BriefAnswerCap {
		return answer
	}
	runes := []rune(answer)
	return string(runes[:BriefAnswerCap]) + Ellipsis
}

// FollowUp builds the prompt asking for follow-up questions about answer.
// The "3 questions" wording is a hint to the model, not a guarantee.
func FollowUp(answer string) string {
	return fmt.Sprintf(
		"Suggest 3 short and simple follow-up questions only in 4-6 words each for this answer: \"%s\". Give them as a plain list.",
		answer,
	)
}

var enumerator = regexp.MustCompile(`^\d+\.\s*`)

// ParseSuggestions turns the model's list into suggestion strings, keeping
// line order. Leading "1. " style enumerators are stripped and blank lines
// dropped; the count is not enforced.
func ParseSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(enumerator.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
