// Package classifier is the heuristic pre-filter in front of the generation
// call: small-talk gets a canned reply, clearly off-topic messages get a
// fixed rejection, everything else goes to the model.
package classifier

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindGreeting Kind = "greeting"
	KindThanks   Kind = "thanks"
	KindFarewell Kind = "farewell"
	KindOffTopic Kind = "off_topic"
	KindLegal    Kind = "legal"
)

const (
	GreetingReply = "Hi — I'm your Legal Compliance Assistant for Startups. How can I help you with your business's legal needs today?"
	ThanksReply   = "You're welcome — happy to help. If you have any legal compliance questions for your startup, ask away!"
	FarewellReply = "Goodbye — feel free to come back when you have questions about startup legal compliance."

	OffTopicReply = "I'm a specialized legal compliance assistant for startups. I can only help with business legal matters such as company formation, contracts, intellectual property, employment law, privacy policies, and regulatory compliance. How can I assist you with your startup's legal needs?"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

type vocabulary struct {
	Greetings     []string `yaml:"greetings"`
	Thanks        []string `yaml:"thanks"`
	Farewells     []string `yaml:"farewells"`
	LegalKeywords []string `yaml:"legal_keywords"`
	Overrides     []string `yaml:"overrides"`
}

var vocab vocabulary

func init() {
	if err := yaml.Unmarshal(vocabularyYAML, &vocab); err != nil {
		panic("classifier: invalid vocabulary.yaml: " + err.Error())
	}
}

// Result carries the kind plus the individual small-talk matches, since a
// message can be a greeting, thanks and farewell at once and the canned
// reply joins every matched part.
type Result struct {
	Kind     Kind
	Greeting bool
	Thanks   bool
	Farewell bool
}

func (r Result) SmallTalk() bool {
	return r.Greeting || r.Thanks || r.Farewell
}

// Classify inspects a message with no file attached. Small-talk checks take
// priority over the legal vocabulary.
func Classify(text string) Result {
	lower := strings.ToLower(text)

	var res Result
	res.Greeting = matchesAny(lower, vocab.Greetings)
	res.Thanks = matchesAny(lower, vocab.Thanks)
	res.Farewell = matchesAny(lower, vocab.Farewells)

	switch {
	case res.Greeting:
		res.Kind = KindGreeting
		return res
	case res.Thanks:
		res.Kind = KindThanks
		return res
	case res.Farewell:
		res.Kind = KindFarewell
		return res
	}

	if ContainsLegalTerm(lower) {
		res.Kind = KindLegal
	} else {
		res.Kind = KindOffTopic
	}
	return res
}

// matchesAny matches multi-word phrases by containment and single words on
// word boundaries, so "ty" does not fire inside "entity" and "hi" does not
// fire inside "this".
func matchesAny(lower string, phrases []string) bool {
	var words []string
	for _, phrase := range phrases {
		if lower == phrase {
			return true
		}
		if strings.Contains(phrase, " ") {
			if strings.Contains(lower, phrase) {
				return true
			}
			continue
		}
		if words == nil {
			words = strings.FieldsFunc(lower, func(r rune) bool {
				return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
			})
		}
		for _, w := range words {
			if w == phrase {
				return true
			}
		}
	}
	return false
}

// ContainsLegalTerm reports whether the text mentions any term of the legal
// vocabulary or one of the unconditional overrides.
func ContainsLegalTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range vocab.LegalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, o := range vocab.Overrides {
		if strings.Contains(lower, o) {
			return true
		}
	}
	return false
}

// CannedReply joins the canned responses for every matched small-talk part,
// greeting first. Empty when the result is not small-talk.
func CannedReply(res Result) string {
	var parts []string
	if res.Greeting {
		parts = append(parts, GreetingReply)
	}
	if res.Thanks {
		parts = append(parts, ThanksReply)
	}
	if res.Farewell {
		parts = append(parts, FarewellReply)
	}
	return strings.Join(parts, " ")
}
