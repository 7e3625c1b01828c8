package catalog

import "github.com/polarisaistudio/ml-training-site-sub001/internal/domain"

var defaultProjects = []domain.ProjectTemplate{
	{
		ID:         "rag-document-qa",
		Title:      "RAG Document Q&A Service",
		Summary:    "Answer questions over a private document set with retrieval-augmented generation.",
		Difficulty: "intermediate",
		Skills:     []string{"embeddings", "vector search", "prompting", "evaluation"},
		TutorialSteps: []domain.TutorialStep{
			{Title: "Chunk and embed the corpus", Body: "Split documents into overlapping chunks and embed them with a sentence-embedding model."},
			{Title: "Build the vector index", Body: "Load embeddings into a vector index and expose top-k search."},
			{Title: "Compose the answer prompt", Body: "Stuff retrieved chunks into a grounded prompt with citations."},
			{Title: "Evaluate retrieval quality", Body: "Measure recall@k and answer faithfulness on a labelled question set."},
			{Title: "Serve behind an API", Body: "Wrap retrieval and generation in an HTTP endpoint with request logging."},
		},
		ResumeBullets: map[domain.ResumeStyle][]string{
			domain.ResumeStyleTechnical: {"Built a retrieval-augmented QA service over 10k+ documents using dense embeddings and top-k vector search with cited answers."},
			domain.ResumeStyleImpact:    {"Cut time-to-answer for internal document lookups by shipping a RAG assistant with measured recall@5 above 0.9."},
			domain.ResumeStyleFullStack: {"Designed and deployed an end-to-end RAG system, from chunking and indexing to an HTTP API and evaluation harness."},
		},
	},
	{
		ID:         "churn-prediction",
		Title:      "Customer Churn Prediction",
		Summary:    "Train, calibrate and explain a tabular classifier for subscription churn.",
		Difficulty: "beginner",
		Skills:     []string{"feature engineering", "gradient boosting", "calibration", "SHAP"},
		TutorialSteps: []domain.TutorialStep{
			{Title: "Explore and clean the data", Body: "Profile columns, handle missing values, and fix leakage-prone features."},
			{Title: "Engineer features", Body: "Derive tenure, usage trends and support-ticket aggregates."},
			{Title: "Train a baseline and a GBDT", Body: "Compare logistic regression against gradient boosted trees with cross-validation."},
			{Title: "Calibrate and pick a threshold", Body: "Calibrate probabilities and choose a threshold from the retention budget."},
		},
		ResumeBullets: map[domain.ResumeStyle][]string{
			domain.ResumeStyleTechnical: {"Trained a calibrated gradient-boosted churn model (AUC 0.87) with SHAP-based feature attribution."},
			domain.ResumeStyleImpact:    {"Identified at-risk customers two billing cycles early, enabling targeted retention offers."},
			domain.ResumeStyleFullStack: {"Delivered a churn scoring pipeline from raw exports to a batch scoring job and stakeholder dashboard."},
		},
	},
	{
		ID:         "image-classifier-deploy",
		Title:      "Fine-tuned Image Classifier",
		Summary:    "Fine-tune a pretrained CNN and deploy it with monitoring.",
		Difficulty: "intermediate",
		Skills:     []string{"transfer learning", "data augmentation", "model serving", "monitoring"},
		TutorialSteps: []domain.TutorialStep{
			{Title: "Prepare the dataset", Body: "Split train/val/test by source and set up augmentation."},
			{Title: "Fine-tune a pretrained backbone", Body: "Freeze early layers, train the head, then unfreeze with a lower learning rate."},
			{Title: "Analyse errors", Body: "Inspect the confusion matrix and the worst misclassifications."},
			{Title: "Export and serve", Body: "Export to an inference format and serve with batching."},
			{Title: "Monitor drift", Body: "Track input statistics and prediction confidence in production."},
			{Title: "Write the model card", Body: "Document intended use, limitations and evaluation results."},
		},
		ResumeBullets: map[domain.ResumeStyle][]string{
			domain.ResumeStyleTechnical: {"Fine-tuned a ResNet backbone with staged unfreezing, reaching 94% top-1 accuracy on a 12-class dataset."},
			domain.ResumeStyleImpact:    {"Automated manual image triage, reducing review workload by an estimated 70%."},
			domain.ResumeStyleFullStack: {"Shipped an image classification service with batched inference, drift monitoring and a model card."},
		},
	},
	{
		ID:         "llm-eval-harness",
		Title:      "LLM Evaluation Harness",
		Summary:    "Build a reproducible harness to compare prompts and models on a task suite.",
		Difficulty: "advanced",
		Skills:     []string{"LLM evaluation", "experiment tracking", "statistics"},
		TutorialSteps: []domain.TutorialStep{
			{Title: "Define the task suite", Body: "Collect tasks with references and scoring rules."},
			{Title: "Implement scorers", Body: "Add exact-match, rubric-based and model-graded scorers."},
			{Title: "Run experiments", Body: "Sweep prompts and models with cached generations."},
			{Title: "Report with confidence intervals", Body: "Bootstrap scores and publish a comparison report."},
		},
		ResumeBullets: map[domain.ResumeStyle][]string{
			domain.ResumeStyleTechnical: {"Built an LLM evaluation harness with pluggable scorers, cached generations and bootstrap confidence intervals."},
			domain.ResumeStyleImpact:    {"Enabled data-driven model selection by replacing ad hoc prompt testing with a reproducible benchmark."},
			domain.ResumeStyleFullStack: {"Created an evaluation platform covering task curation, scoring, experiment runs and reporting."},
		},
	},
}
