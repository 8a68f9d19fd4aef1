// Package debate implements the polling loops that drive the three
// debate modes, the turn guard, and the session registry that hosts the
// loops as background tasks.
package debate

import "strings"

// ConcludeToken is the literal text a model emits to end a debate.
const ConcludeToken = "CONCLUDE"

// SilenceToken is the reply prefix the referee uses to stay silent.
const SilenceToken = "NO"

// Verdict classifies a model reply for loop control.
type Verdict int

// Verdicts, in precedence order: a reply containing the termination
// token concludes regardless of its prefix.
const (
	// VerdictPost means the reply should be posted to the thread.
	VerdictPost Verdict = iota
	// VerdictSilent means the referee declined to intervene.
	VerdictSilent
	// VerdictConclude means the loop should end without posting.
	VerdictConclude
)

// Classify inspects a model reply for the termination token and the
// silence prefix. Matching is deliberately the exact string checks the
// prompts are written against; any hardening of the rule happens here,
// not in the loops.
func Classify(reply string) Verdict {
	if strings.Contains(reply, ConcludeToken) {
		return VerdictConclude
	}
	if Silent(reply) {
		return VerdictSilent
	}
	return VerdictPost
}

// Silent reports whether a reply carries the referee's silence prefix.
// In monitored mode the prefix is authoritative: a declining reply stays
// silent even when the termination token appears later in it.
func Silent(reply string) bool {
	return strings.HasPrefix(reply, SilenceToken)
}
