package advisor

import (
	"sort"
	"strings"
	"unicode"
)

// Block is one canned answer and the words that select it.
type Block struct {
	Topic    string
	Keywords []string
	Content  string
}

// Table picks blocks by keyword, then by topic, then falls back to the general block.
type Table struct {
	blocks  []Block
	byTopic map[string]Block
}

func NewTable(blocks []Block) *Table {
	t := &Table{byTopic: make(map[string]Block, len(blocks))}
	for _, b := range blocks {
		normalized := make([]string, 0, len(b.Keywords))
		for _, k := range b.Keywords {
			normalized = append(normalized, Normalize(k))
		}
		b.Keywords = normalized
		t.blocks = append(t.blocks, b)
		if _, ok := t.byTopic[b.Topic]; !ok {
			t.byTopic[b.Topic] = b
		}
	}
	return t
}

// Match returns the first block in table order whose keyword appears in question.
func (t *Table) Match(question string, kind Kind) Block {
	q := Normalize(question)
	if q != "" {
		for _, b := range t.blocks {
			for _, k := range b.Keywords {
				if k != "" && strings.Contains(q, k) {
					return b
				}
			}
		}
	}
	if b, ok := t.byTopic[kind.Topic()]; ok {
		return b
	}
	return t.byTopic[TopicGeneral]
}

var arabicFolds = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ٱ': 'ا',
	'ة': 'ه',
	'ى': 'ي',
	'ؤ': 'و',
	'ئ': 'ي',
}

// Normalize folds a question into matching form so "الأسعار" and "الاسعار" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 0x064B && r <= 0x0652, r == 0x0640:
			continue
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			if !space && b.Len() > 0 {
				b.WriteRune(' ')
			}
			space = true
			continue
		}
		if f, ok := arabicFolds[r]; ok {
			r = f
		}
		b.WriteRune(r)
		space = false
	}
	return strings.TrimSpace(b.String())
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
