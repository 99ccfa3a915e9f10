package player

// Phase is the playback state machine. Transitions:
//
//	Idle -> Loading             on RequestState with a non-empty route
//	Loading -> Playing          when the first needed segment arrives
//	Playing -> Loading          when playback outruns the fetcher
//	Playing|Loading -> Preempted  on a new target while a route is in flight
//	Preempted -> Playing        when the replacement route's segment arrives
//	any -> Idle                 on route completion or total fetch failure
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePlaying
	PhasePreempted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePreempted:
		return "preempted"
	default:
		return "unknown"
	}
}
