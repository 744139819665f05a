// Package resp implements the RESP2/RESP3 frame algebra and its codec:
// a tagged union of wire values plus a streaming decoder and a matching
// encoder. See decode.go for the decoder contract.
package resp

import "errors"

// ErrNotComplete signals that the buffer does not yet hold a full frame.
// It is benign backpressure, not a protocol violation: callers should read
// more bytes from the socket and retry. The buffer is left untouched.
var ErrNotComplete = errors.New("resp: frame not complete")

// FrameError is the terminal error taxonomy produced by the decoder. Every
// variant except ErrNotComplete is fatal for the byte stream that produced
// it: the connection loop closes the socket rather than attempt recovery,
// since resynchronizing a length-prefixed stream after a parse failure is
// not generally possible.
type FrameError struct {
	Kind FrameErrorKind
	Msg  string
}

func (e *FrameError) Error() string {
	return e.Msg
}

// FrameErrorKind classifies a FrameError for callers that want to branch on
// the failure category without string-matching Error().
type FrameErrorKind int

const (
	// KindInvalidFrameType means the first byte didn't match any known
	// RESP prefix.
	KindInvalidFrameType FrameErrorKind = iota
	// KindInvalidFrameLength means a declared length was syntactically
	// invalid or negative outside of the -1 null sentinel.
	KindInvalidFrameLength
	// KindInvalidFrame means a structural mismatch was found, such as a
	// missing CRLF terminator where one was required.
	KindInvalidFrame
	// KindParseInt means an Integer frame's value could not be parsed as
	// an integer. (An unparsable length header is KindInvalidFrameLength.)
	KindParseInt
	// KindParseFloat means a Double field could not be parsed as a
	// float.
	KindParseFloat
	// KindUTF8 classifies a text field that is not valid UTF-8. Decode
	// does not validate text fields (Map keys, SimpleString/SimpleError
	// bodies) and never returns this kind; their bytes are taken as-is.
	KindUTF8
)

func newFrameError(kind FrameErrorKind, msg string) error {
	return &FrameError{Kind: kind, Msg: msg}
}

// IsProtocolError reports whether err is a terminal decode error (anything
// other than ErrNotComplete). A nil err is not a protocol error.
func IsProtocolError(err error) bool {
	if err == nil || errors.Is(err, ErrNotComplete) {
		return false
	}
	var fe *FrameError
	return errors.As(err, &fe)
}
