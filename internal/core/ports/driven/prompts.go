package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptCVReviewSystem is the system prompt for CV analysis.
	// This prompt has no format placeholders.
	PromptCVReviewSystem = "cv_review_system"

	// PromptCVReview is the user prompt for CV analysis.
	// The template expects two %s placeholders: the candidate summary line
	// and the normalised CV text.
	PromptCVReview = "cv_review"
)
