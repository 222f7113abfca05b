package driver

// State is a step of a driver run
type State int

const (
	StateIdle State = iota
	StateEnvSelected
	StateFilesSelected
	StateTagSelected
	StateExecuted
	StateReported
	StateDone
)

var stateNames = [...]string{
	StateIdle:          "IDLE",
	StateEnvSelected:   "ENV_SELECTED",
	StateFilesSelected: "FILES_SELECTED",
	StateTagSelected:   "TAG_SELECTED",
	StateExecuted:      "EXECUTED",
	StateReported:      "REPORTED",
	StateDone:          "DONE",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}
