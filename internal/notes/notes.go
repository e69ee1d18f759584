// Package notes splits narration text into sentences and groups them into
// bounded chunks for the speech model.
package notes

import "strings"

// ChunkSize is the maximum number of sentences synthesized per model call.
// Longer prompts degrade chatterbox-style models and hold more transient
// accelerator memory per call.
const ChunkSize = 3

// SplitSentences cuts text after '.', '!' or '?' followed by whitespace,
// keeping the punctuation attached. Abbreviation periods ("e.g. x") split
// too; that is a known, accepted limitation.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		// Scan past any run of terminators ("?!", "...").
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		if end+1 < len(runes) && !isSpace(runes[end+1]) {
			i = end
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = end + 1
		i = end
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// Chunk groups sentences into order-preserving groups of at most size,
// each joined by single spaces.
func Chunk(sentences []string, size int) []string {
	if size <= 0 {
		size = ChunkSize
	}
	var chunks []string
	for i := 0; i < len(sentences); i += size {
		end := i + size
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, strings.Join(sentences[i:end], " "))
	}
	return chunks
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
