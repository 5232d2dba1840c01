package fizz

import (
	"fmt"
	"os"
)

// debugMaxLiveParticles is the live count above which debug mode warns.
const debugMaxLiveParticles = 50000

// debugLog prints per-tick stats to stderr.
func (s *System) debugLog(st TickStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[fizz] spawned: %d | expired: %d | reaped: %d | live: %d | tick: %v\n",
		st.Spawned, st.Expired, st.Reaped, st.Live, st.Duration)
	if st.Live > debugMaxLiveParticles {
		_, _ = fmt.Fprintf(os.Stderr,
			"[fizz] warning: %d live particles exceeds %d\n",
			st.Live, debugMaxLiveParticles)
	}
}
