package mdstrike

import (
	"errors"

	"github.com/alnah/go-mdstrike/internal/frommd"
	"github.com/alnah/go-mdstrike/internal/tomd"
)

// Sentinel errors for library operations.
var (
	ErrNotFormatted = errors.New("document is not formatted")
	ErrRoundTrip    = errors.New("reformatting changed the rendered document")
	ErrParse        = errors.New("markdown parsing failed")
	ErrFormat       = errors.New("markdown formatting failed")
)

// Errors from the tree pipeline, re-exported so callers can match them
// with errors.Is without importing internal packages.
var (
	ErrInvalidOption    = tomd.ErrInvalidOption
	ErrUnknownNode      = tomd.ErrUnknownNode
	ErrUnknownConstruct = tomd.ErrUnknownConstruct
	ErrNilNode          = tomd.ErrNilNode
	ErrUnbalancedToken  = frommd.ErrUnbalancedToken
)
