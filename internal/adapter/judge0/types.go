package judge0

import (
	"math"

	"gitlab.com/codeprep-2025.net/internal/domain"
)

// executeRequest is the judge's submission payload. The resource ceilings are
// fixed for every call and executed code never gets network access.
type executeRequest struct {
	SourceCode    string `json:"source_code"`
	LanguageID    int    `json:"language_id"`
	Stdin         string `json:"stdin"`
	CPUTimeLimit  int    `json:"cpu_time_limit"`
	MemoryLimit   int    `json:"memory_limit"`
	EnableNetwork bool   `json:"enable_network"`
}

type wireStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// wireVerdict mirrors the judge's verdict JSON. Time is reported in seconds,
// memory in kilobytes.
type wireVerdict struct {
	Status        wireStatus `json:"status"`
	Stdout        *string    `json:"stdout"`
	Stderr        *string    `json:"stderr"`
	CompileOutput *string    `json:"compile_output"`
	Message       *string    `json:"message"`
	Time          *float64   `json:"time"`
	Memory        *float64   `json:"memory"`
}

func (v *wireVerdict) toDomain() *domain.ExecutionVerdict {
	verdict := &domain.ExecutionVerdict{
		StatusID:          domain.Status(v.Status.ID),
		StatusDescription: v.Status.Description,
		Stdout:            v.Stdout,
		Stderr:            v.Stderr,
		CompileOutput:     v.CompileOutput,
	}
	if v.Time != nil {
		ms := int64(math.Round(*v.Time * 1000))
		verdict.TimeMs = &ms
	}
	if v.Memory != nil {
		kb := int64(*v.Memory)
		verdict.MemoryKb = &kb
	}
	return verdict
}
