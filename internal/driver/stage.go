package driver

// Stage identifies one pipeline stage for progress reporting.
type Stage uint8

const (
	StageIngest Stage = iota
	StageNormalize
	StageResolve
	StageMark
	StageAggregate
	StageRates
	StageAnnual
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageIngest:
		return "ingest"
	case StageNormalize:
		return "normalize"
	case StageResolve:
		return "resolve"
	case StageMark:
		return "mark"
	case StageAggregate:
		return "aggregate"
	case StageRates:
		return "rates"
	case StageAnnual:
		return "annual"
	}
	return "unknown"
}

// Stages lists every stage in execution order.
func Stages() []Stage {
	out := make([]Stage, 0, stageCount)
	for s := StageIngest; s < stageCount; s++ {
		out = append(out, s)
	}
	return out
}

// Status reports whether a stage is running or finished.
type Status uint8

const (
	StatusWorking Status = iota
	StatusDone
	StatusError
)

// Event describes a stage boundary during a run.
type Event struct {
	Stage  Stage
	Status Status
	Note   string
}

// ProgressSink receives events emitted during Run.
type ProgressSink interface {
	Publish(Event)
}

// ChannelSink forwards events to a channel, dropping them when the channel
// is full so a slow consumer never stalls the pipeline.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Publish(ev Event) {
	select {
	case s.Ch <- ev:
	default:
	}
}
