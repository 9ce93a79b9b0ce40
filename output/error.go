package output

import "github.com/dacapoday/rawout"

var (
	ErrOverflow            = rawout.ErrOverflow
	ErrOutOfRange          = rawout.ErrOutOfRange
	ErrInvalidBufferSize   = rawout.ErrInvalidBufferSize
	ErrInvalidGrowthFactor = rawout.ErrInvalidGrowthFactor
	ErrClosed              = rawout.ErrClosed
)

type (
	OverflowError = rawout.OverflowError
	SinkError     = rawout.SinkError
)
