package domain

// Status is the judge's status enumeration for one execution attempt.
type Status int

const (
	StatusInQueue           Status = 1
	StatusProcessing        Status = 2
	StatusAccepted          Status = 3
	StatusWrongAnswer       Status = 4
	StatusTimeLimitExceeded Status = 5
	StatusCompilationError  Status = 6
	StatusRuntimeError      Status = 7
	StatusServerError       Status = 8
)

// Finished reports whether the verdict is terminal (no longer queued or
// processing).
func (s Status) Finished() bool {
	return s != StatusInQueue && s != StatusProcessing
}

// Accepted reports whether the execution completed successfully. Only an
// accepted verdict's stdout is ever compared against expected output.
func (s Status) Accepted() bool {
	return s == StatusAccepted
}

func (s Status) String() string {
	switch s {
	case StatusInQueue:
		return "In Queue"
	case StatusProcessing:
		return "Processing"
	case StatusAccepted:
		return "Accepted"
	case StatusWrongAnswer:
		return "Wrong Answer"
	case StatusTimeLimitExceeded:
		return "Time Limit Exceeded"
	case StatusCompilationError:
		return "Compilation Error"
	case StatusRuntimeError:
		return "Runtime Error"
	case StatusServerError:
		return "Server Error"
	default:
		return "Unknown"
	}
}

// ExecutionVerdict is the judge's raw response for one submission. It is
// produced exactly once per submission and never mutated afterwards.
type ExecutionVerdict struct {
	StatusID          Status
	StatusDescription string
	Stdout            *string
	Stderr            *string
	CompileOutput     *string
	TimeMs            *int64
	MemoryKb          *int64
}

// LanguageInfo is one supported-language descriptor reported by the judge.
type LanguageInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
