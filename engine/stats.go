package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Stats counts the work done by one search.
type Stats struct {
	Nodes     uint64 // every visited node, root included
	Leaves    uint64 // depth-0 nodes scored by the evaluator
	Terminals uint64 // nodes where the side to move had no moves
	Cutoffs   uint64 // alpha-beta cutoffs
	Elapsed   time.Duration
}

func (st *Stats) reset() { *st = Stats{} }

// NPS returns nodes per second, or 0 before any time has elapsed.
func (st Stats) NPS() uint64 {
	if st.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(st.Nodes) / st.Elapsed.Seconds())
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (st Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", st.Nodes).
		Uint64("leaves", st.Leaves).
		Uint64("terminals", st.Terminals).
		Uint64("cutoffs", st.Cutoffs).
		Dur("elapsed", st.Elapsed)
}

func (st Stats) String() string {
	return fmt.Sprintf("nodes %d leaves %d terminals %d cutoffs %d time %dms",
		st.Nodes, st.Leaves, st.Terminals, st.Cutoffs, st.Elapsed.Milliseconds())
}
