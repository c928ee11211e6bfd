package generator

import (
	"context"
	"fmt"
	"slices"

	"github.com/AksChougule/lairn/internal/domain/quiz"
	"github.com/AksChougule/lairn/internal/normalize"
)

// regenerationRounds bounds the replacement requests made for one duplicate.
const regenerationRounds = 3

// dedupe walks questions in order and makes every normalized prompt unique.
// A duplicate is first replaced by a regenerated question; if that fails it
// gets a " (variation N)" suffix.
func (g *Generator) dedupe(ctx context.Context, questions []quiz.Question) []quiz.Question {
	used := make(map[string]struct{}, len(questions))
	var order []string // normalized prompts in the order they were taken

	out := make([]quiz.Question, 0, len(questions))
	for _, q := range questions {
		candidate := q
		if _, dup := used[normalize.Prompt(candidate.Prompt)]; dup {
			candidate = g.resolveDuplicate(ctx, candidate, used, order)
		}

		key := normalize.Prompt(candidate.Prompt)
		used[key] = struct{}{}
		order = append(order, key)
		out = append(out, candidate)
	}
	return out
}

func (g *Generator) resolveDuplicate(ctx context.Context, original quiz.Question, used map[string]struct{}, order []string) quiz.Question {
	for round := 1; round <= regenerationRounds; round++ {
		replacement, answered := g.regenerate(ctx, original, used, order)
		if replacement != nil {
			g.logger.Info("replaced duplicate question", "round", round, "topic", original.PrimaryTopic())
			return *replacement
		}
		// An unreachable model will not do better next round.
		if !answered {
			break
		}
	}

	for n := 2; ; n++ {
		prompt := fmt.Sprintf("%s (variation %d)", original.Prompt, n)
		if _, taken := used[normalize.Prompt(prompt)]; !taken {
			g.logger.Info("suffixed duplicate question", "variation", n, "topic", original.PrimaryTopic())
			return original.WithPrompt(prompt)
		}
	}
}

// regenerate asks for one replacement question. answered is false when the
// gateway produced nothing at all; a nil replacement with answered true means
// the model replied with an unacceptable question.
func (g *Generator) regenerate(ctx context.Context, original quiz.Question, used map[string]struct{}, order []string) (replacement *quiz.Question, answered bool) {
	var batch questionBatch
	res := g.llm.GenerateStructured(ctx, buildRegenerationPrompt(original, g.avoidList(order)), &batch, g.retries)
	if !res.OK() {
		return nil, false
	}
	if len(batch.Questions) != 1 {
		return nil, true
	}

	q := batch.Questions[0].toQuestion()
	if err := q.Validate(); err != nil {
		return nil, true
	}
	if q.Type != original.Type || !q.HasTopic(original.PrimaryTopic()) {
		return nil, true
	}
	if _, taken := used[normalize.Prompt(q.Prompt)]; taken {
		return nil, true
	}
	return &q, true
}

// avoidList is the sorted set of the most recently used prompts, capped so
// the regeneration prompt stays bounded as sessions grow.
func (g *Generator) avoidList(order []string) []string {
	recent := order
	if g.avoidLimit > 0 && len(recent) > g.avoidLimit {
		recent = recent[len(recent)-g.avoidLimit:]
	}
	list := slices.Clone(recent)
	slices.Sort(list)
	return list
}
