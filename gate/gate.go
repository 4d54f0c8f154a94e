// Package gate implements the guest admission check that halts AI turns
// once an unauthenticated session exhausts its quota.
package gate

import "github.com/podiumlabs/arena/types"

// DefaultGuestQuota is the number of AI-authored turns allowed before an
// unauthenticated session must sign in.
const DefaultGuestQuota = 10

// AITurnCount counts transcript messages authored by either debate side.
// Pending placeholders are excluded; only finalized turns count against
// the quota.
func AITurnCount(messages []types.Message) int {
	count := 0
	for _, m := range messages {
		if m.SenderID.IsDebater() && !m.IsThinking {
			count++
		}
	}
	return count
}

// Blocked reports whether the next AI turn must be withheld. Authenticated
// sessions are never gated; guests are blocked once the transcript holds
// quota AI turns.
func Blocked(messages []types.Message, authenticated bool, quota int) bool {
	if authenticated {
		return false
	}
	if quota <= 0 {
		quota = DefaultGuestQuota
	}
	return AITurnCount(messages) >= quota
}
