package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/llm"
)

// ============================================================================
// Prompt builders
//
// Both prompts end with the request parameters so they are the last thing
// the model reads before answering.
// ============================================================================

func questionRules() string {
	topics := lo.Map(quiz.Topics(), func(t quiz.Topic, _ int) string { return string(t) })

	return fmt.Sprintf(`RULES:
- "type" is "mcq" or "short-answer".
- "topic_tags" only uses these values: %s. The first tag is the primary topic.
- "difficulty" is "easy", "medium" or "hard".
- mcq: exactly 4 options and a single correct_option_index from 0 to 3. Leave expected_answer, acceptable_variants and grading_rubric null.
- short-answer: expected_answer, acceptable_variants (may be an empty list) and grading_rubric are required. Leave options and correct_option_index null.
- "explanation" is 2 to 6 sentences.
- Keep questions concise, unambiguous and non-opinionated. Do not reproduce long copyrighted text.`,
		quoteList(topics))
}

func buildBatchPrompt(cfg quiz.Config) string {
	topics := lo.Map(cfg.Topics, func(t quiz.Topic, _ int) string { return string(t) })

	return fmt.Sprintf(`Generate quiz questions as strict JSON only.

Return a JSON object matching this schema, no markdown:
%s

%s
- Produce exactly %d questions. The primary topic of each question is one of the requested topics.
- For question type "mixed", choose mcq or short-answer per question.

Requested topics: %s
Difficulty: %s
Question type: %s
Number of questions: %d
`,
		llm.SchemaJSON(&questionBatch{}), questionRules(), cfg.NumQuestions,
		quoteList(topics), cfg.Difficulty, cfg.QuestionType, cfg.NumQuestions)
}

func buildRegenerationPrompt(original quiz.Question, avoid []string) string {
	return fmt.Sprintf(`Generate exactly one quiz question as strict JSON only.

Return a JSON object matching this schema, with a single entry in "questions", no markdown:
%s

%s

Required type: %s
Required difficulty: %s
Required topic tag: %s
Avoid prompts matching any of these normalized prompts: %s
`,
		llm.SchemaJSON(&questionBatch{}), questionRules(),
		original.Type, original.Difficulty, original.PrimaryTopic(), quoteList(avoid))
}

func quoteList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[" + strings.Join(items, ", ") + "]"
	}
	return string(b)
}
