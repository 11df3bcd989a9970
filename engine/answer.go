/*
answer.go - Tagged union for heterogeneous answer shapes

PURPOSE:
  Screening answers arrive in inconsistent shapes: a free-text string, a
  single choice, a yes/no flag serialized as text, or a multi-select list.
  Rather than inspecting dynamic types at match time, every answer is
  normalized into an explicit two-variant union:

    Scalar("yes")              single value
    Multi("snap", "tanf")      list of values

  The same union shape is used for trigger specifications (see Trigger),
  so the matcher in trigger.go dispatches on tags, never on reflection.

PRESENCE VS VALUE:
  "No entry recorded" (key absent from AnswerSet) is a different fact from
  "answered with an empty or negative value". The engine tracks presence
  through map membership. NOTE: the evaluator additionally skips answers
  whose value is blank-like ("", "0", "false", empty list) even when
  explicitly present - see Answer.IsSignal and the note in eligibility.go.

SEE ALSO:
  - trigger.go: Matching predicate over Answer and Trigger
  - eligibility.go: Where presence and signal checks are applied
*/
package engine

import "strings"

type valueKind int

const (
	kindNone valueKind = iota
	kindScalar
	kindMulti
)

// =============================================================================
// ANSWER
// =============================================================================

// Answer is one recorded response: a single value or a list of values.
// The zero Answer means "nothing recorded".
type Answer struct {
	kind   valueKind
	scalar string
	multi  []string
}

// Scalar builds a single-valued answer.
func Scalar(v string) Answer {
	return Answer{kind: kindScalar, scalar: v}
}

// Multi builds a multi-select answer.
func Multi(vs ...string) Answer {
	return Answer{kind: kindMulti, multi: vs}
}

// IsZero reports whether no answer was recorded at all.
func (a Answer) IsZero() bool { return a.kind == kindNone }

// IsMulti reports whether the answer is a list of values.
func (a Answer) IsMulti() bool { return a.kind == kindMulti }

// Value returns the scalar text as recorded, untrimmed. Multi and zero
// answers report "".
func (a Answer) Value() string {
	if a.kind == kindScalar {
		return a.scalar
	}
	return ""
}

// Values returns the answer's values, trimmed. A scalar answer yields a
// one-element slice; a zero answer yields nil.
func (a Answer) Values() []string {
	switch a.kind {
	case kindScalar:
		return []string{strings.TrimSpace(a.scalar)}
	case kindMulti:
		vs := make([]string, len(a.multi))
		for i, v := range a.multi {
			vs[i] = strings.TrimSpace(v)
		}
		return vs
	default:
		return nil
	}
}

// IsSignal reports whether the answer carries a qualifying signal.
// Blank-like values are treated the same as "unanswered": an empty or
// whitespace string, "0", "false", or an empty multi-select list.
//
// KNOWN AMBIGUITY: this means an explicit negative answer ("false") can
// never trigger a target group. That mirrors the historical screening
// behavior; whether an explicit "no" should be distinguishable from "not
// asked" is an open product decision, which is why presence (map
// membership) is already tracked separately from value.
func (a Answer) IsSignal() bool {
	switch a.kind {
	case kindScalar:
		v := strings.TrimSpace(a.scalar)
		return v != "" && v != "0" && !strings.EqualFold(v, "false")
	case kindMulti:
		return len(a.Values()) > 0
	default:
		return false
	}
}

// AnswerSet maps question ids to recorded answers. A missing key means no
// entry was recorded for that question.
type AnswerSet map[QuestionID]Answer

// =============================================================================
// TRIGGER
// =============================================================================

// Trigger is the answer value(s) that qualify a respondent for a linked
// target group: a single expected value, or a set where any member counts.
// The zero Trigger means "no trigger configured".
type Trigger struct {
	kind   valueKind
	scalar string
	set    []string
}

// TriggerValue builds a single-value trigger.
func TriggerValue(v string) Trigger {
	return Trigger{kind: kindScalar, scalar: v}
}

// TriggerSet builds an any-of trigger.
func TriggerSet(vs ...string) Trigger {
	return Trigger{kind: kindMulti, set: vs}
}

// IsZero reports whether no trigger is configured.
func (t Trigger) IsZero() bool { return t.kind == kindNone }

// IsSet reports whether the trigger is an any-of set.
func (t Trigger) IsSet() bool { return t.kind == kindMulti }

// Values returns the trigger's values, trimmed.
func (t Trigger) Values() []string {
	switch t.kind {
	case kindScalar:
		return []string{strings.TrimSpace(t.scalar)}
	case kindMulti:
		vs := make([]string, len(t.set))
		for i, v := range t.set {
			vs[i] = strings.TrimSpace(v)
		}
		return vs
	default:
		return nil
	}
}
