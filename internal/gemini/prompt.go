package gemini

import (
	"fmt"
	"strings"

	"dronaai/internal/models"
)

// quizPromptTemplate is the prompt used to generate question sets. The
// placeholders are, in order: question count, topic list, audience
// instruction, target role, resolved difficulty (three occurrences), memory
// instruction, resume context.
const quizPromptTemplate = `You must return a JSON array of exactly %d question objects.

Each object must have:
- question (string)
- options (array of exactly 4 strings)
- correct_options (array of correct option text strings)
- topic (string, one of: %s)
- difficulty (string: "Easy", "Moderate", or "Tough")
- marks (integer: Easy=3, Moderate=5, Tough=10)

Rules:
- Audience: %s
- Target role: %s
- Difficulty preference: %s
  * If "Easy": ALL questions Easy
  * If "Moderate": ALL questions Moderate
  * If "Tough": ALL questions Tough
  * If "Mixed": spread across Easy/Moderate/Tough
  * If "Adaptive (Auto)": use %s
- Easy/Moderate: exactly 1 correct option
- Tough: 2-3 correct options allowed
- Cover DIFFERENT subtopics, question styles (conceptual, code-based, scenario)
- Spread questions evenly across topics
%s
Resume/Context:
%s

Return ONLY a valid JSON array. No commentary, no markdown fences.`

// BuildQuizPrompt assembles the generation prompt from the quiz
// configuration and whatever the memory store knows about the session.
// difficulty is the already-resolved label (or "Mixed"); weakTopics and
// historySummary may be empty.
func BuildQuizPrompt(cfg models.QuizConfig, difficulty string, weakTopics []string, historySummary string) string {
	audienceInstr := "Use clear, professional interview-style language."
	if cfg.Audience == "School Student" {
		audienceInstr = "Use very simple school-level language."
	}

	var memoryInstr strings.Builder
	if len(weakTopics) > 0 {
		fmt.Fprintf(&memoryInstr,
			"\nIMPORTANT: The candidate historically struggles with: %s. "+
				"Include MORE questions on these weak areas to help them improve.\n",
			strings.Join(weakTopics, ", "))
	}
	if historySummary != "" {
		fmt.Fprintf(&memoryInstr, "\nCandidate history: %s\n", historySummary)
	}

	context := cfg.ResumeText
	if context == "" {
		context = "No resume provided."
	}

	return fmt.Sprintf(quizPromptTemplate,
		cfg.QuestionCount,
		strings.Join(cfg.Topics, ", "),
		audienceInstr,
		cfg.Role,
		difficulty,
		difficulty,
		memoryInstr.String(),
		context,
	)
}

// feedbackPromptTemplate is the prompt for the streamed performance report.
const feedbackPromptTemplate = `Create a comprehensive technical interview performance report.

Score: %.1f%%
Marks: %.1f/%d
Correct: %d/%d
Topic Performance: %s
Weak Areas: %s
Strong Areas: %s

Generate a professional, actionable assessment:
1. Overall Performance Summary (2-3 key insights)
2. Technical Strengths Demonstrated
3. Critical Improvement Areas
4. 5 Recommended Practice Projects
5. 7-Day Focused Study Plan
6. 3 Best Learning Resources

Keep it interview-focused, honest, and motivating.`

// BuildFeedbackPrompt assembles the report prompt from a finished attempt.
func BuildFeedbackPrompt(result models.AttemptResult) string {
	topicPerf := make([]string, 0, len(result.TopicPerformance))
	strengths := make([]string, 0, len(result.TopicPerformance))
	for topic, perf := range result.TopicPerformance {
		topicPerf = append(topicPerf, fmt.Sprintf("%s: %.0f%%", topic, perf.Percentage))
		if perf.Percentage >= 80 {
			strengths = append(strengths, topic)
		}
	}

	return fmt.Sprintf(feedbackPromptTemplate,
		result.ScorePercent,
		result.MarksEarned,
		result.MarksTotal,
		result.CorrectAnswers,
		result.TotalQuestions,
		strings.Join(topicPerf, ", "),
		strings.Join(result.WeakTopics, ", "),
		strings.Join(strengths, ", "),
	)
}
