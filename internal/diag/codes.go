package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Ingest / row-level defects. These rows stay in the row count but are
	// excluded from identity resolution or aggregation as documented per code.
	IngInfo             Code = 1000
	IngMissingName      Code = 1001
	IngMissingPosition  Code = 1002
	IngMissingOrg       Code = 1003
	IngBadYear          Code = 1004
	IngBadFlag          Code = 1005
	IngYearFromFile     Code = 1006
	IngYearOutOfRange   Code = 1007

	// Marking.
	MarkInfo             Code = 2000
	MarkFlagDisagreement Code = 2001

	// Aggregation and rates.
	RateInfo           Code = 3000
	RateImpossibleCell Code = 3001
	RateClamped        Code = 3002
	RateTieBreak       Code = 3003
)

func (c Code) String() string {
	switch c {
	case IngMissingName:
		return "ING_MISSING_NAME"
	case IngMissingPosition:
		return "ING_MISSING_POSITION"
	case IngMissingOrg:
		return "ING_MISSING_ORG"
	case IngBadYear:
		return "ING_BAD_YEAR"
	case IngBadFlag:
		return "ING_BAD_FLAG"
	case IngYearFromFile:
		return "ING_YEAR_FROM_FILE"
	case IngYearOutOfRange:
		return "ING_YEAR_OUT_OF_RANGE"
	case MarkFlagDisagreement:
		return "MARK_FLAG_DISAGREEMENT"
	case RateImpossibleCell:
		return "RATE_IMPOSSIBLE_CELL"
	case RateClamped:
		return "RATE_CLAMPED"
	case RateTieBreak:
		return "RATE_TIE_BREAK"
	case IngInfo, MarkInfo, RateInfo:
		return fmt.Sprintf("INFO_%04d", uint16(c))
	}
	return fmt.Sprintf("CODE_%04d", uint16(c))
}
