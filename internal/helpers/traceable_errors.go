package helpers

import (
	"github.com/ztrue/tracerr"
)

// Error carries one or more traced errors. The zero value (NilError) means
// success, so functions return Error by value the way they'd return nil.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func IsNil(err error) bool {
	if traceableErr, ok := err.(Error); ok {
		return traceableErr.First() == nil
	}
	if traceableErr, ok := err.(*Error); ok {
		return traceableErr == nil || traceableErr.First() == nil
	}
	return err == nil
}

func (e Error) Error() string {
	result := ""
	for _, err := range e.errs {
		result += Indent(tracerr.Sprint(err), ".  ") + "\n"
	}
	return result
}

// String includes source snippets around each frame.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += tracerr.SprintSourceColor(err, 3) + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if e.errs == nil {
		return nil
	}
	return e.errs[0]
}

func (e Error) Message() string {
	if first := e.First(); first != nil {
		return first.Error()
	}
	return ""
}

func (e Error) NumErrors() int {
	num := 0
	for _, err := range e.errs {
		if err != nil {
			num++
		}
	}
	return num
}

func Wrap(err error) Error {
	if err == nil {
		return NilError
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}
	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

// ErrorRef accumulates errors across a loop. Copies taken after the first
// Add share the same slot.
type ErrorRef struct {
	reference []Error
}

func (e *ErrorRef) Add(err Error) {
	if IsNil(err) {
		return
	}
	if e.reference == nil {
		e.reference = []Error{err}
	} else {
		e.reference[0] = Join(e.reference[0], err)
	}
}

func (e *ErrorRef) HasError() bool {
	return e.reference != nil && !IsNil(e.reference[0])
}

func (e *ErrorRef) NumErrors() int {
	if !e.HasError() {
		return 0
	}
	return e.reference[0].NumErrors()
}

func (e *ErrorRef) Error() Error {
	if e.reference == nil {
		return NilError
	}
	return e.reference[0]
}
