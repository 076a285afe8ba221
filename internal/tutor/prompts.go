package tutor

import (
	"fmt"
	"strings"
)

// Defaults for the optional prompt parameters. These are free-text labels
// embedded into the templates, not a closed enumeration.
const (
	DefaultLevel         = "Undergraduate"
	DefaultStyle         = "gentle"
	DefaultDetailLevel   = "moderate"
	DefaultRevisionLevel = "moderate improvements"
)

// StartingPromptParams parameterize the opening explanation for a new topic.
// Zero values for Level and Style fall back to the defaults.
type StartingPromptParams struct {
	Topic string
	Level string
	Style string
}

// FactCheckPromptParams parameterize the critique request sent to a peer model.
type FactCheckPromptParams struct {
	Topic          string
	OriginalOutput string
	DetailLevel    string
}

// RevisionPromptParams parameterize the revision request sent back to the
// primary model after fact-checking.
type RevisionPromptParams struct {
	Topic          string
	OriginalOutput string
	Feedback       string
	RevisionLevel  string
}

// SocraticPromptParams parameterize the hint request.
type SocraticPromptParams struct {
	Topic string
	Level string
	Style string
}

// BuildStartingPrompt renders the opening tutoring request for a topic. The
// model is told to prioritize factual accuracy and to use Socratic questions
// only as secondary hints.
func BuildStartingPrompt(p StartingPromptParams) string {
	level := orDefault(p.Level, DefaultLevel)
	style := orDefault(p.Style, DefaultStyle)
	return fmt.Sprintf(`You are an AI tutor starting a new topic with a student.

Topic: %s
Education Level: %s
Style: %s

Rules:
- Give a clear, factually accurate introduction to the topic. Accuracy comes first.
- Use Socratic, open-ended questions only as secondary hints to invite the student to think further.
- Adjust complexity, vocabulary, and examples according to %s.
- Maintain a %s tone throughout.

Output: An opening explanation of the topic that ends with one or two questions the student could explore next.
`, p.Topic, level, style, level, style)
}

// BuildFactCheckPrompt renders the critique request for a peer model. The
// checker is explicitly forbidden from rewriting the answer; it only critiques.
func BuildFactCheckPrompt(p FactCheckPromptParams) string {
	detail := orDefault(p.DetailLevel, DefaultDetailLevel)
	return fmt.Sprintf(`You are an AI fact checker. Your task is to evaluate the accuracy, completeness, and reliability
of information produced by another AI.

Topic: %s
Original AI Output: """%s"""
Detail Level: %s

Rules:
- Identify factual inaccuracies, misinterpretations, or omissions in the original output.
- Cite evidence or reasoning that supports your assessment but keep citations brief.
- Provide constructive feedback that can be used to improve the output.
- Highlight any areas where the AI output is unclear, ambiguous, or misleading.
- Avoid rewriting the original answer entirely; focus on critique and guidance.

Output Format:
- Accurate Points: list the points that are correct.
- Inaccuracies or Issues: list the points that are wrong or misleading, with reasoning or references.
- Suggestions for Improvement: specific guidance the original AI can follow to correct or improve its response.
`, p.Topic, p.OriginalOutput, detail)
}

// BuildRevisionPrompt renders the request that asks the primary model to fold
// the combined peer feedback into one revised answer.
func BuildRevisionPrompt(p RevisionPromptParams) string {
	level := orDefault(p.RevisionLevel, DefaultRevisionLevel)
	return fmt.Sprintf(`You are the original AI that generated an answer. You have received feedback from a fact-checking AI.

Topic: %s
Revision Level: %s
Original Output: """%s"""
Feedback: """%s"""

Rules:
- Incorporate the feedback to improve accuracy, clarity, and completeness.
- Correct any factual errors identified.
- Add details or clarifications suggested, maintaining the original style where possible.
- Ensure the revised answer fully addresses the topic.
- Optionally indicate which changes were made based on the feedback.

Output: A revised answer to the original prompt.
`, p.Topic, level, p.OriginalOutput, p.Feedback)
}

// BuildSocraticPrompt renders the hint request. The model must answer only
// with open-ended, progressively narrowing questions, never a direct answer.
func BuildSocraticPrompt(p SocraticPromptParams) string {
	level := orDefault(p.Level, DefaultLevel)
	style := orDefault(p.Style, DefaultStyle)
	topic := p.Topic
	return fmt.Sprintf(`You are an AI tutor using the Socratic method. Your goal is to help the user think critically and arrive at their own conclusions.

Parameters:
- Topic: %s
- Education Level: %s
- Style: %s

Rules:
1. Respond only with open-ended questions; do not give direct answers.
2. Questions should build on the user's previous responses.
3. Encourage clarification, reasoning, and evidence-based thinking.
4. Avoid yes/no questions unless they naturally lead to deeper analysis.
5. Use progressive questioning: start broad, then narrow toward specifics.
6. Adjust complexity, vocabulary, and examples according to %s.
7. Maintain a %s tone in your questioning.

Instruction:
When I ask a question about %s, respond only with Socratic, open-ended questions that guide my reasoning.
Never provide a direct answer, explanation, or summary.
Adapt your questions to my educational level (%s) and maintain a %s tone.
`, topic, level, style, level, style, topic, level, style)
}

// BuildQuestionPrompt combines the optional topic context with the student's
// question for the primary model's first pass.
func BuildQuestionPrompt(topic, question string) string {
	var b strings.Builder
	if topic != "" {
		fmt.Fprintf(&b, "Topic %s\n", topic)
	}
	fmt.Fprintf(&b, "User question %s", question)
	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
