package usecase

import "strings"

// SpeechRule replaces an acronym with the way it should be pronounced.
type SpeechRule struct {
	Acronym string
	Spoken  string
}

// speechRules are applied in this order. No Spoken value contains any
// Acronym, which keeps ApplySpeechRules idempotent.
var speechRules = []SpeechRule{
	{Acronym: "SQL", Spoken: "esse quê ele"},
	{Acronym: "API", Spoken: "a p i"},
	{Acronym: "AI", Spoken: "ei ai"},
	{Acronym: "HTTP", Spoken: "agá tê tê pê"},
	{Acronym: "GPT", Spoken: "gê pê tê"},
}

// SpeechRules returns a copy of the rule table in application order.
func SpeechRules() []SpeechRule {
	return append([]SpeechRule(nil), speechRules...)
}

// ApplySpeechRules replaces every occurrence of each acronym, case-sensitively,
// one rule at a time in table order.
func ApplySpeechRules(text string) string {
	for _, rule := range speechRules {
		text = strings.ReplaceAll(text, rule.Acronym, rule.Spoken)
	}
	return text
}
