// Package memory persists per-answer records into an embedded vector store
// so weak areas survive across attempts and sessions. Writes and queries are
// a side benefit of the quiz, never a correctness requirement: every failure
// is logged and degrades to an empty or false result.
package memory

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/philippgille/chromem-go"
)

const (
	collectionName = "dronaai_memory"

	// weakProbe seeds the similarity query behind WeakAreas. The intent is
	// recall biasing, not exact aggregation: records that resemble failure
	// surface first, and topics are ranked by how often they appear among
	// the incorrect ones.
	weakProbe = "weak incorrect wrong failed struggle"

	// correctCutoff is the score percentage at or above which a stored
	// record counts as correct.
	correctCutoff = 70.0
)

// Store wraps one persistent collection holding every session's records,
// distinguished by the session_id metadata filter. A nil Store is usable:
// all reads are empty and all writes report failure.
type Store struct {
	col *chromem.Collection
}

// New opens (or creates) the vector store under persistDir. The embedding
// function turns record content into vectors; it is injected so callers
// choose the provider.
func New(persistDir string, embed chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store at %s: %w", persistDir, err)
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", collectionName, err)
	}

	return &Store{col: col}, nil
}

// Available reports whether the store was opened successfully.
func (s *Store) Available() bool {
	return s != nil && s.col != nil
}

// StoreAnswer upserts one record for the session. The document ID is derived
// from (session, question text), so resubmitting the same question replaces
// the earlier record instead of duplicating it.
func (s *Store) StoreAnswer(ctx context.Context, sessionID, question string, userAnswer, correctAnswer []string, topic, difficulty string, scorePercent float64) bool {
	if !s.Available() {
		return false
	}

	content := fmt.Sprintf(
		"Topic: %s | Difficulty: %s | Question: %s | User Answer: %s | Correct Answer: %s | Score: %.1f%%",
		topic, difficulty, question,
		strings.Join(userAnswer, "; "), strings.Join(correctAnswer, "; "),
		scorePercent,
	)

	doc := chromem.Document{
		ID:      docID(sessionID, question),
		Content: content,
		Metadata: map[string]string{
			"session_id":    sessionID,
			"topic":         topic,
			"difficulty":    difficulty,
			"score_percent": strconv.FormatFloat(scorePercent, 'f', 1, 64),
			"correct":       strconv.FormatBool(scorePercent >= correctCutoff),
		},
	}

	if err := s.col.AddDocument(ctx, doc); err != nil {
		log.Printf("WARN: memory store failed: %v", err)
		return false
	}
	return true
}

// WeakAreas returns up to topK topic names for the session, most deficient
// first. It issues a similarity query seeded with a fixed failure probe,
// retrieves up to 3*topK candidates and ranks topics by how often they
// appear among candidates marked incorrect. The result is a best-effort,
// frequency-ranked hint, not an exact aggregate; any query failure degrades
// to an empty list.
func (s *Store) WeakAreas(ctx context.Context, sessionID string, topK int) []string {
	if !s.Available() || topK <= 0 {
		return []string{}
	}

	total := s.col.Count()
	if total == 0 {
		return []string{}
	}

	n := topK * 3
	if n > total {
		n = total
	}

	results, err := s.col.Query(ctx, weakProbe, n, map[string]string{"session_id": sessionID}, nil)
	if err != nil {
		log.Printf("WARN: memory weak-area query failed: %v", err)
		return []string{}
	}

	counts := map[string]int{}
	for _, r := range results {
		if r.Metadata["correct"] == "true" {
			continue
		}
		topic := r.Metadata["topic"]
		if topic == "" {
			topic = "General"
		}
		counts[topic]++
	}

	topics := make([]string, 0, len(counts))
	for t := range counts {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})

	if len(topics) > topK {
		topics = topics[:topK]
	}
	return topics
}

// HistorySummary reports the session's stored record counts and the set of
// topics seen among incorrect records, as a prompt-ready sentence. Returns
// "" when the session has no records or the store cannot answer.
func (s *Store) HistorySummary(ctx context.Context, sessionID string) string {
	if !s.Available() {
		return ""
	}

	total := s.col.Count()
	if total == 0 {
		return ""
	}

	// Exhaustive retrieval for the session: with nResults covering the whole
	// collection and an exact session filter, the similarity ranking is
	// irrelevant to the counts.
	results, err := s.col.Query(ctx, "session history", total, map[string]string{"session_id": sessionID}, nil)
	if err != nil {
		log.Printf("WARN: memory history query failed: %v", err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	correct := 0
	weakSet := map[string]bool{}
	for _, r := range results {
		if r.Metadata["correct"] == "true" {
			correct++
			continue
		}
		topic := r.Metadata["topic"]
		if topic == "" {
			topic = "General"
		}
		weakSet[topic] = true
	}

	weak := make([]string, 0, len(weakSet))
	for t := range weakSet {
		weak = append(weak, t)
	}
	sort.Strings(weak)

	weakText := "none identified"
	if len(weak) > 0 {
		weakText = strings.Join(weak, ", ")
	}
	return fmt.Sprintf("Past performance: %d/%d correct. Weak areas from history: %s.", correct, len(results), weakText)
}

// Clear deletes every record belonging to the session. A session with no
// records is a successful no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) bool {
	if !s.Available() {
		return false
	}

	if err := s.col.Delete(ctx, map[string]string{"session_id": sessionID}, nil); err != nil {
		log.Printf("WARN: memory clear failed: %v", err)
		return false
	}
	return true
}

func docID(sessionID, question string) string {
	sum := md5.Sum([]byte(sessionID + ":" + question))
	return hex.EncodeToString(sum[:])
}
