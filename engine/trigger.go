/*
trigger.go - Answer-vs-trigger matching predicate

PURPOSE:
  Pure predicate deciding whether a recorded answer satisfies a question's
  trigger specification. Four shape combinations exist:

    scalar answer vs scalar trigger   value equality
    scalar answer vs set trigger      membership (any trigger value equals)
    multi answer  vs scalar trigger   membership (trigger value in answer)
    multi answer  vs set trigger      set intersection

  Equality is value equality on trimmed strings. There is no coercion
  across scalar kinds: "1" does not match "true", "yes" does not match
  "y". Questionnaire authors own value consistency; the engine only
  normalizes whitespace.

SEE ALSO:
  - answer.go: The Answer and Trigger unions
  - eligibility.go: The only caller
*/
package engine

// Matches reports whether an answer satisfies a trigger specification.
// A zero answer or zero trigger never matches.
func Matches(answer Answer, trigger Trigger) bool {
	if answer.IsZero() || trigger.IsZero() {
		return false
	}

	answerValues := answer.Values()
	triggerValues := trigger.Values()

	// Every combination reduces to: do the two value lists intersect?
	// Scalars are one-element lists after normalization, which makes
	// equality, membership, and intersection the same loop.
	for _, tv := range triggerValues {
		for _, av := range answerValues {
			if tv == av {
				return true
			}
		}
	}
	return false
}
