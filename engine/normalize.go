/*
normalize.go - Defensive category-label normalization

PURPOSE:
  Category identifiers arrive in inconsistent forms: canonical codes from
  well-formed questionnaires, legacy labels from older records, and
  free-text display names typed into configuration screens. Normalize
  maps any of those to the canonical code, or reports a miss.

RESOLUTION ORDER:
  1. Already a valid catalog code       -> returned as-is
  2. Alias table (lower-cased, trimmed) -> mapped code
  3. Display-name scan of the catalog   -> matching category's code
  4. Miss                               -> "" and false

  Normalize never fails: a miss is an expected condition (partial or
  stale questionnaire configuration), and the caller decides whether it
  is worth surfacing.
*/
package engine

import "strings"

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Normalize maps a free-text or legacy category label to its canonical
// code. Returns "" and false when the label resolves to nothing.
func (c *Catalog) Normalize(label string) (string, bool) {
	if label == "" {
		return "", false
	}

	if _, ok := c.byCode[label]; ok {
		return label, true
	}

	key := normalizeLabel(label)
	if code, ok := c.aliases[key]; ok {
		return code, true
	}

	for _, cat := range c.ordered {
		if normalizeLabel(cat.DisplayName) == key {
			return cat.Code, true
		}
	}

	return "", false
}
