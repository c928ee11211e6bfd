// Package normalize canonicalizes free text so answers and prompts can be
// compared deterministically.
package normalize

import "strings"

// Answer lower-cases s, replaces every character outside [a-z0-9 ] with a
// space, collapses whitespace runs and trims the result.
func Answer(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, strings.ToLower(s))
	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize returns the set of tokens in the normalized form of s.
func Tokenize(s string) map[string]struct{} {
	fields := strings.Fields(Answer(s))
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

// Prompt is the looser form used to detect duplicate question prompts:
// lower-cased with whitespace collapsed, punctuation kept.
func Prompt(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
