package quiz

// JudgePath names the decision step that produced a verdict.
type JudgePath string

const (
	PathExactOrVariant JudgePath = "exact-or-variant-match"
	PathContains       JudgePath = "normalized-contains-match"
	PathModelJudge     JudgePath = "model-judge"
	PathFallback       JudgePath = "deterministic-fallback"
)

// Trace is the machine-readable audit record attached to a verdict.
type Trace struct {
	Path     JudgePath `json:"path"`
	Overlap  *float64  `json:"overlap,omitempty"`
	Attempts int       `json:"attempts,omitempty"`
}

// Verdict is the outcome of grading one short answer.
type Verdict struct {
	IsCorrect bool   `json:"is_correct"`
	Rationale string `json:"rationale"`
	Trace     Trace  `json:"trace"`
}
