package aiusage

import "errors"

// ErrInsufficientTokens is returned when a client has no generations left for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the monthly allowance used when none is configured.
const DefaultTokens = 100

// monthKey formats the month a counter belongs to.
const monthKey = "2006-01"
