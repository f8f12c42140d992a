// Package adaptive turns the stream of scored answers into a difficulty
// signal and per-topic weakness aggregates. Everything here is pure: no
// external calls, no failure modes.
package adaptive

import (
	"math"

	"dronaai/internal/models"
)

// window is the number of most recent answers considered when proposing the
// next difficulty.
const window = 3

// WeakThreshold is the topic accuracy percentage below which a topic counts
// as weak within one attempt.
const WeakThreshold = 60.0

// Score normalizes one answer to a 0-10 score, rounded to 2 decimal places.
// A zero marks total scores 0.
func Score(marksEarned float64, marksTotal int) float64 {
	if marksTotal == 0 {
		return 0
	}
	return round(marksEarned/float64(marksTotal)*10, 2)
}

// NextDifficulty proposes the difficulty for the upcoming question from the
// rolling window of recent answers. An empty history returns Moderate as the
// cold-start default. Boundary means fall to the lower bucket: the comparison
// is strictly greater-than.
func NextDifficulty(history []models.AnswerRecord) string {
	if len(history) == 0 {
		return models.DifficultyModerate
	}

	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	var sum float64
	for _, a := range recent {
		sum += Score(a.MarksEarned, a.MarksTotal)
	}
	avg := sum / float64(len(recent))

	switch {
	case avg > 8:
		return models.DifficultyTough
	case avg > 5:
		return models.DifficultyModerate
	default:
		return models.DifficultyEasy
	}
}

// PerformanceLabel maps an overall percentage to the label shown on the
// result screen.
func PerformanceLabel(percent float64) string {
	switch {
	case percent >= 85:
		return "Expert"
	case percent >= 70:
		return "Proficient"
	case percent >= 50:
		return "Developing"
	default:
		return "Needs Practice"
	}
}

// TopicWeaknessMap groups the attempt history by topic and returns each
// topic's accuracy percentage, rounded to 1 decimal place. A topic whose
// marks total is zero maps to 0.
func TopicWeaknessMap(history []models.AnswerRecord) map[string]float64 {
	type tally struct {
		earned float64
		total  int
	}
	topics := make(map[string]*tally)
	for _, a := range history {
		topic := a.Topic
		if topic == "" {
			topic = "General"
		}
		t, ok := topics[topic]
		if !ok {
			t = &tally{}
			topics[topic] = t
		}
		t.earned += a.MarksEarned
		t.total += a.MarksTotal
	}

	out := make(map[string]float64, len(topics))
	for topic, t := range topics {
		if t.total == 0 {
			out[topic] = 0
			continue
		}
		out[topic] = round(t.earned/float64(t.total)*100, 1)
	}
	return out
}

// WeakTopics returns every topic whose aggregated accuracy falls below the
// threshold. Each qualifying topic appears exactly once; order is not
// significant.
func WeakTopics(history []models.AnswerRecord, threshold float64) []string {
	weak := []string{}
	for topic, pct := range TopicWeaknessMap(history) {
		if pct < threshold {
			weak = append(weak, topic)
		}
	}
	return weak
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
