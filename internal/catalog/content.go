package catalog

import "github.com/polarisaistudio/ml-training-site-sub001/internal/domain"

// DefaultContent returns the stages and questions seeded on startup.
func DefaultContent() []domain.StageSeed {
	return []domain.StageSeed{
		{
			Stage: domain.Stage{Slug: "ml-fundamentals", Title: "ML Fundamentals", Description: "Core concepts every ML interview covers.", SortOrder: 1},
			Questions: []domain.Question{
				{Title: "Bias-variance tradeoff", Prompt: "Explain the bias-variance tradeoff and how it shows up in model selection.", Answer: "Bias is error from overly simple assumptions, variance is sensitivity to the training sample. Increasing capacity lowers bias and raises variance; regularization, more data and ensembling trade between them.", Difficulty: "easy", Tags: []string{"theory"}},
				{Title: "Precision vs recall", Prompt: "When would you optimize for recall over precision?", Answer: "When false negatives are costlier than false positives, e.g. fraud screening or medical triage where a human reviews positives.", Difficulty: "easy", Tags: []string{"metrics"}},
				{Title: "Data leakage", Prompt: "Give two examples of data leakage and how to detect them.", Answer: "Target-derived features and preprocessing fitted on the full dataset. Detect with suspiciously high validation scores, time-based splits and feature importance review.", Difficulty: "medium", Tags: []string{"data"}},
			},
		},
		{
			Stage: domain.Stage{Slug: "deep-learning", Title: "Deep Learning", Description: "Neural network training and architecture questions.", SortOrder: 2},
			Questions: []domain.Question{
				{Title: "Vanishing gradients", Prompt: "Why do gradients vanish in deep networks and what mitigates it?", Answer: "Repeated multiplication by small Jacobians shrinks gradients. Residual connections, normalization, ReLU-family activations and careful initialization mitigate it.", Difficulty: "medium", Tags: []string{"optimization"}},
				{Title: "Attention complexity", Prompt: "What is the time complexity of self-attention and how can it be reduced?", Answer: "O(n^2 d) in sequence length n. Sparse, windowed, low-rank or linear attention variants and KV caching reduce cost.", Difficulty: "hard", Tags: []string{"transformers"}},
			},
		},
		{
			Stage: domain.Stage{Slug: "ml-system-design", Title: "ML System Design", Description: "Designing production ML systems end to end.", SortOrder: 3},
			Questions: []domain.Question{
				{Title: "Design a feed ranking system", Prompt: "Design the ranking stage of a social media feed.", Answer: "Candidate generation, a lightweight pre-ranker, a heavy ranker trained on engagement labels, and re-ranking for diversity and policy, with online A/B evaluation.", Difficulty: "hard", Tags: []string{"ranking", "design"}},
			},
		},
	}
}
