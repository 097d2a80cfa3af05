package core

// NextSequenceNumbersResult is the result of bridge.NextSequenceNumbers.
type NextSequenceNumbersResult struct {
	In  uint64 `cbor:"in"`
	Out uint64 `cbor:"out"`
}

// NextSequenceNumbers reads the persisted counters (§4.5), defaulting to
// 0/0 if never written. Read-only: never mutates state.
func NextSequenceNumbers() (NextSequenceNumbersResult, error) {
	in, err := getNextInSequence()
	if err != nil {
		return NextSequenceNumbersResult{}, err
	}
	out, err := getNextOutSequence()
	if err != nil {
		return NextSequenceNumbersResult{}, err
	}
	return NextSequenceNumbersResult{In: in, Out: out}, nil
}

// QueryParameters returns the currently effective genesis Parameters
// (§4.5). Named to avoid colliding with the Parameters type itself.
func QueryParameters() (Parameters, error) {
	return getParameters()
}
