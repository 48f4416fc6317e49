package pipeline

import (
	"errors"

	"segprep/internal/frame"
	"segprep/internal/schema"
	"segprep/internal/transformer/builtin"
)

// ErrStageOrder is returned when a stage is invoked before the stage it
// depends on has completed.
var ErrStageOrder = errors.New("stage invoked out of order")

// Errors surfaced by the stages, re-exported for callers that only import
// this package.
var (
	ErrSchemaMismatch   = schema.ErrSchemaMismatch
	ErrAllMissingColumn = builtin.ErrAllMissingColumn
	ErrNotNumeric       = frame.ErrNotNumeric
)

// Stage names one step of the pipeline.
type Stage int

const (
	StageClassify Stage = iota + 1
	StageMixedTypes
	StageSentinels
	StageReduce
	StageEngineer
	StageImpute
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageClassify, StageMixedTypes, StageSentinels, StageReduce, StageEngineer, StageImpute}

func (s Stage) String() string {
	switch s {
	case StageClassify:
		return "classify"
	case StageMixedTypes:
		return "mixed_types"
	case StageSentinels:
		return "sentinels"
	case StageReduce:
		return "reduce"
	case StageEngineer:
		return "engineer"
	case StageImpute:
		return "impute"
	default:
		return "unknown"
	}
}

// requires returns the stage that must have completed before s may run.
// Classification only reports and gates nothing.
func (s Stage) requires() Stage {
	switch s {
	case StageSentinels:
		return StageMixedTypes
	case StageReduce:
		return StageSentinels
	case StageEngineer:
		return StageReduce
	case StageImpute:
		return StageEngineer
	default:
		return 0
	}
}
