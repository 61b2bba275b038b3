package steering

import "github.com/herdsync/herdsync/internal/core/world"

// Complete reports whether every agent is Secure. It is a pure fold
// over the agent set; the latch on first true lives on the world and is
// cleared only by an external reset.
func Complete(agents []world.Agent) bool {
	for i := range agents {
		if agents[i].State != world.StateSecure {
			return false
		}
	}
	return true
}
