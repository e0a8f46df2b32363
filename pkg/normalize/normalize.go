// Package normalize canonicalizes free-text ingredient names into stable
// lookup keys and generates the textual variations used for fuzzy matching.
package normalize

import (
	"strings"

	"github.com/korjavin/recipematch/pkg/models"
)

// leadingQualifiers are storage/origin words stripped from the front of a
// name ("fresh basil" -> "basil").
var leadingQualifiers = map[string]bool{
	"fresh":      true,
	"dried":      true,
	"frozen":     true,
	"canned":     true,
	"organic":    true,
	"free-range": true,
}

// prepWords are preparation-state words stripped from either end of a
// name ("diced onions", "onions, diced" -> "onions").
var prepWords = map[string]bool{
	"chopped":  true,
	"diced":    true,
	"sliced":   true,
	"minced":   true,
	"grated":   true,
	"shredded": true,
	"crushed":  true,
	"ground":   true,
	"whole":    true,
	"piece":    true,
	"pieces":   true,
}

// Normalize turns a raw ingredient name into its canonical lowercase
// hyphenated key: "Fresh Diced Tomatoes" -> "tomato",
// "Chicken Breast" -> "chicken-breast". It is a pure, total function;
// the empty string normalizes to the empty string.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	// Drop a trailing parenthesized annotation: "butter (unsalted)" -> "butter".
	// A parenthetical in the middle of the name is left alone.
	if strings.HasSuffix(s, ")") {
		if idx := strings.LastIndex(s, "("); idx > 0 {
			s = strings.TrimSpace(s[:idx])
		}
	}

	words := splitWords(s)

	// Strip one leading qualifier, then one preparation-state word from
	// either end. Each strip happens at most once and never leaves the
	// name empty.
	if len(words) > 1 && leadingQualifiers[words[0]] {
		words = words[1:]
	}
	if len(words) > 1 && prepWords[words[0]] {
		words = words[1:]
	}
	if len(words) > 1 && prepWords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}

	if len(words) > 0 {
		words[len(words)-1] = singularize(words[len(words)-1])
	}

	key := strings.Join(words, "-")
	for strings.Contains(key, "--") {
		key = strings.ReplaceAll(key, "--", "-")
	}
	return key
}

// splitWords splits on runs of whitespace, underscores and commas,
// dropping empty segments. Interior hyphens are kept so that
// "free-range" stays one word for the qualifier check.
func splitWords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '_', ',':
			return true
		}
		return false
	})
	// Hyphens inside a word are kept (they are the canonical joiner),
	// but leading/trailing ones are trimmed per word.
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

// singularize applies the naive de-pluralization rules, first match
// wins, applied once: ies->y, es->"" (after sibilants and o, so
// "tomatoes"->"tomato" but "apples" falls through to the s rule),
// s->"". This intentionally mishandles irregular plurals and words
// that legitimately end in s/es/ies ("molasses" -> "molass").
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case hasEsPlural(word):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	}
	return word
}

func hasEsPlural(word string) bool {
	if !strings.HasSuffix(word, "es") || len(word) < 4 {
		return false
	}
	for _, stem := range []string{"oes", "ses", "xes", "zes", "ches", "shes"} {
		if strings.HasSuffix(word, stem) {
			return true
		}
	}
	return false
}

// pluralize is the inverse heuristic used for variation generation.
func pluralize(key string) string {
	switch {
	case strings.HasSuffix(key, "y"):
		return key[:len(key)-1] + "ies"
	case strings.HasSuffix(key, "s"):
		return key
	}
	return key + "s"
}

// GenerateVariations returns the normalized key plus the alternate
// textual forms considered equivalent for lookup: the hyphenless and
// spaced forms, a plural form, and any entries from the alternatives
// table. The result always contains the normalized key; order is not
// significant to callers.
func GenerateVariations(raw string) []string {
	key := Normalize(raw)
	if key == "" {
		return nil
	}

	vars := []string{key}
	add := func(v string) {
		if v == "" {
			return
		}
		for _, existing := range vars {
			if existing == v {
				return
			}
		}
		vars = append(vars, v)
	}

	add(strings.ReplaceAll(key, "-", ""))
	add(strings.ReplaceAll(key, "-", " "))
	add(pluralize(key))

	if alts, ok := alternatives[key]; ok {
		for _, alt := range alts {
			add(alt)
		}
	} else {
		// Substring fallback: union the alternatives of every table
		// entry whose key contains or is contained by ours. Iterate in
		// sorted key order so the result is reproducible.
		for _, tableKey := range alternativeKeys {
			if strings.Contains(key, tableKey) || strings.Contains(tableKey, key) {
				for _, alt := range alternatives[tableKey] {
					add(alt)
				}
			}
		}
	}

	return vars
}

// NewNormalizedIngredient builds the canonical view of a raw name.
func NewNormalizedIngredient(raw string) models.NormalizedIngredient {
	return models.NormalizedIngredient{
		Original:   raw,
		Normalized: Normalize(raw),
		Variations: GenerateVariations(raw),
	}
}
