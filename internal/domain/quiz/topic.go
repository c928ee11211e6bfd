package quiz

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Topic is one of the fixed technical subjects a quiz can cover.
type Topic string

const (
	TopicMachineLearning Topic = "Machine Learning technical concepts"
	TopicDeepLearning    Topic = "Deep Learning technical concepts"
	TopicStatistics      Topic = "Statistics"
	TopicGenerativeAI    Topic = "Generative AI"
	TopicMLOps           Topic = "MLOps technical concepts"
	TopicAgenticAI       Topic = "Agentic AI technical concepts"
	TopicAPI             Topic = "API technical concepts"
	TopicLLM             Topic = "LLM and Foundational Model concepts"
)

// Topics lists every topic in declaration order.
func Topics() []Topic {
	return []Topic{
		TopicMachineLearning,
		TopicDeepLearning,
		TopicStatistics,
		TopicGenerativeAI,
		TopicMLOps,
		TopicAgenticAI,
		TopicAPI,
		TopicLLM,
	}
}

func (t Topic) Valid() bool {
	switch t {
	case TopicMachineLearning, TopicDeepLearning, TopicStatistics, TopicGenerativeAI,
		TopicMLOps, TopicAgenticAI, TopicAPI, TopicLLM:
		return true
	}
	return false
}

// ResolveTopic maps user input onto a Topic. Exact wire values win; anything
// else is ranked by fuzzy subsequence distance and accepted only when a
// single closest topic exists.
func ResolveTopic(s string) (Topic, bool) {
	if t := Topic(s); t.Valid() {
		return t, true
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	targets := make([]string, 0, len(Topics()))
	for _, t := range Topics() {
		targets = append(targets, string(t))
	}

	ranks := fuzzy.RankFindNormalizedFold(s, targets)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return "", false
	}
	return Topic(ranks[0].Target), true
}

// Difficulty is the requested question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionType is the kind of question. Mixed only appears in requests;
// every generated question is either multiple-choice or short-answer.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "mcq"
	TypeShortAnswer    QuestionType = "short-answer"
	TypeMixed          QuestionType = "mixed"
)

func QuestionTypes() []QuestionType {
	return []QuestionType{TypeMultipleChoice, TypeShortAnswer, TypeMixed}
}

func (qt QuestionType) Valid() bool {
	switch qt {
	case TypeMultipleChoice, TypeShortAnswer, TypeMixed:
		return true
	}
	return false
}

// Concrete reports whether qt can be the type of a single question.
func (qt QuestionType) Concrete() bool {
	switch qt {
	case TypeMultipleChoice, TypeShortAnswer:
		return true
	case TypeMixed:
		return false
	}
	return false
}
