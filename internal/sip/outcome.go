package sip

import "fmt"

// OutcomeKind tags the result of reading a ConfigWord.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeNotFound
	OutcomeUnavailable
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeError:
		return "error"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ReadOutcome is the result of one attempt to read a ConfigWord.
// Word is meaningful only for OutcomeSuccess; Err explains the other kinds.
type ReadOutcome struct {
	Kind OutcomeKind
	Word ConfigWord
	Err  error
}

func Success(w ConfigWord) ReadOutcome {
	return ReadOutcome{Kind: OutcomeSuccess, Word: w}
}

func NotFound(err error) ReadOutcome {
	return ReadOutcome{Kind: OutcomeNotFound, Err: err}
}

func Unavailable(err error) ReadOutcome {
	return ReadOutcome{Kind: OutcomeUnavailable, Err: err}
}

func Failed(err error) ReadOutcome {
	return ReadOutcome{Kind: OutcomeError, Err: err}
}

func (o ReadOutcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

func (o ReadOutcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("success(%s)", o.Word)
	case OutcomeError:
		return fmt.Sprintf("error(%v)", o.Err)
	}
	return o.Kind.String()
}
