package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/AksChougule/lairn/internal/domain/quiz"
)

//go:embed bank.yaml
var embeddedBank []byte

// Bank holds one canned question per (topic, question type) pair.
type Bank struct {
	topics map[quiz.Topic]bankTopic
}

type bankDocument struct {
	Topics []bankTopic `yaml:"topics"`
}

type bankTopic struct {
	Topic          quiz.Topic `yaml:"topic"`
	MultipleChoice *bankEntry `yaml:"mcq"`
	ShortAnswer    *bankEntry `yaml:"short_answer"`
}

type bankEntry struct {
	Prompt             string   `yaml:"prompt"`
	Options            []string `yaml:"options"`
	CorrectOptionIndex *int     `yaml:"correct_option_index"`
	ExpectedAnswer     string   `yaml:"expected_answer"`
	AcceptableVariants []string `yaml:"acceptable_variants"`
	GradingRubric      string   `yaml:"grading_rubric"`
	Explanation        string   `yaml:"explanation"`
}

var defaultBank = sync.OnceValue(func() *Bank {
	b, err := LoadBank(bytes.NewReader(embeddedBank))
	if err != nil {
		panic("generator: embedded question bank is invalid: " + err.Error())
	}
	return b
})

// DefaultBank returns the question bank compiled into the binary.
func DefaultBank() *Bank {
	return defaultBank()
}

// LoadBankFile reads a bank from a YAML file with the same layout as the
// embedded one.
func LoadBankFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return LoadBank(f)
}

// LoadBank decodes and validates a bank. Every topic must appear exactly once
// with a valid entry for both concrete question types.
func LoadBank(r io.Reader) (*Bank, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc bankDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}

	b := &Bank{topics: make(map[quiz.Topic]bankTopic, len(doc.Topics))}
	for _, t := range doc.Topics {
		if !t.Topic.Valid() {
			return nil, fmt.Errorf("question bank: unknown topic %q", t.Topic)
		}
		if _, dup := b.topics[t.Topic]; dup {
			return nil, fmt.Errorf("question bank: topic %q listed twice", t.Topic)
		}
		b.topics[t.Topic] = t
	}

	for _, topic := range quiz.Topics() {
		for _, typ := range []quiz.QuestionType{quiz.TypeMultipleChoice, quiz.TypeShortAnswer} {
			q, err := b.Lookup(topic, typ, quiz.DifficultyMedium)
			if err != nil {
				return nil, err
			}
			if err := q.Validate(); err != nil {
				return nil, fmt.Errorf("question bank: %s/%s: %w", topic, typ, err)
			}
		}
	}
	return b, nil
}

// Lookup returns a fresh copy of the canned question for topic and typ,
// tagged with topic and difficulty.
func (b *Bank) Lookup(topic quiz.Topic, typ quiz.QuestionType, difficulty quiz.Difficulty) (quiz.Question, error) {
	t, ok := b.topics[topic]
	if !ok {
		return quiz.Question{}, fmt.Errorf("question bank: no entries for topic %q", topic)
	}

	var e *bankEntry
	switch typ {
	case quiz.TypeMultipleChoice:
		e = t.MultipleChoice
	case quiz.TypeShortAnswer:
		e = t.ShortAnswer
	case quiz.TypeMixed:
		return quiz.Question{}, fmt.Errorf("question bank: %q is not a concrete question type", typ)
	default:
		return quiz.Question{}, fmt.Errorf("question bank: unknown question type %q", typ)
	}
	if e == nil {
		return quiz.Question{}, fmt.Errorf("question bank: no %s entry for topic %q", typ, topic)
	}

	q := quiz.Question{
		Type:        typ,
		TopicTags:   []quiz.Topic{topic},
		Difficulty:  difficulty,
		Prompt:      e.Prompt,
		Explanation: e.Explanation,
	}
	switch typ {
	case quiz.TypeMultipleChoice:
		q.Options = append([]string(nil), e.Options...)
		if e.CorrectOptionIndex != nil {
			idx := *e.CorrectOptionIndex
			q.CorrectOptionIndex = &idx
		}
	case quiz.TypeShortAnswer:
		q.ExpectedAnswer = e.ExpectedAnswer
		q.AcceptableVariants = append([]string{}, e.AcceptableVariants...)
		q.GradingRubric = e.GradingRubric
	}
	return q, nil
}
