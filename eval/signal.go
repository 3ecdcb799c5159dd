/*
File    : lumen/eval/signal.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import "github.com/akashmaji946/lumen/objects"

// signalKind distinguishes the three non-local control transfers the
// language defines. They are realized as an explicit value threaded
// back through execStmt rather than by raising and catching anything
// in the host.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

// signal is returned alongside an error by every statement executor.
// A zero signal (sigNone) means "ran to completion, nothing to
// propagate". The payload is only meaningful for sigReturn.
type signal struct {
	kind  signalKind
	value objects.Value
}

var noSignal = signal{kind: sigNone}
