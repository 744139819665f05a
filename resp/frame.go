package resp

import "bytes"

// Frame is the tagged union of RESP values. Every wire type implements it
// with its own Encode method; decoding (ExpectedLength/parseFrame) is a
// plain switch on the wire prefix byte, since the variant set is closed
// and small.
type Frame interface {
	// Encode serializes the frame to its contiguous CRLF-delimited wire
	// form.
	Encode() []byte
	frameTag() string // unexported: seals the interface to this package
}

// SimpleString is a "+"-prefixed frame: text without embedded CR/LF.
type SimpleString struct{ Value string }

// SimpleError is a "-"-prefixed frame: text without embedded CR/LF.
type SimpleError struct{ Value string }

// Integer is a ":"-prefixed signed 64-bit frame.
type Integer struct{ Value int64 }

// BulkString is a "$"-prefixed binary-safe byte sequence. Its content may
// contain any byte, including CR and LF: length is declared, not
// terminator-scanned.
type BulkString struct{ Value []byte }

// NullBulkString is the "$-1\r\n" absent-value sentinel.
type NullBulkString struct{}

// Array is a "*"-prefixed ordered sequence of frames.
type Array struct{ Items []Frame }

// NullArray is the "*-1\r\n" absent-value sentinel.
type NullArray struct{}

// Null is the RESP3 "_\r\n" absent-value sentinel.
type Null struct{}

// Boolean is a RESP3 "#"-prefixed true/false frame.
type Boolean struct{ Value bool }

// Double is a RESP3 ","-prefixed IEEE-754 double frame.
type Double struct{ Value float64 }

// Map is a RESP3 "%"-prefixed ordered mapping from text key to Frame. Keys
// are encoded in sorted order for determinism; any map implementation
// works internally because sorting happens at encode time.
type Map struct{ Items map[string]Frame }

// Set is a RESP3 "~"-prefixed ordered sequence of frames. Despite the
// name, element uniqueness is not enforced here — the RESP wire format
// doesn't distinguish Set from Array structurally, only by prefix byte.
type Set struct{ Items []Frame }

func (SimpleString) frameTag() string   { return "simple_string" }
func (SimpleError) frameTag() string    { return "simple_error" }
func (Integer) frameTag() string        { return "integer" }
func (BulkString) frameTag() string     { return "bulk_string" }
func (NullBulkString) frameTag() string { return "null_bulk_string" }
func (Array) frameTag() string          { return "array" }
func (NullArray) frameTag() string      { return "null_array" }
func (Null) frameTag() string           { return "null" }
func (Boolean) frameTag() string        { return "boolean" }
func (Double) frameTag() string         { return "double" }
func (Map) frameTag() string            { return "map" }
func (Set) frameTag() string            { return "set" }

// NewSimpleString builds a SimpleString frame from text.
func NewSimpleString(s string) SimpleString { return SimpleString{Value: s} }

// NewSimpleError builds a SimpleError frame from text.
func NewSimpleError(s string) SimpleError { return SimpleError{Value: s} }

// NewBulkString builds a BulkString frame from a byte slice.
func NewBulkString(b []byte) BulkString { return BulkString{Value: b} }

// NewBulkStringFromText builds a BulkString frame from text.
func NewBulkStringFromText(s string) BulkString { return BulkString{Value: []byte(s)} }

// NewInteger builds an Integer frame from a signed integer.
func NewInteger(n int64) Integer { return Integer{Value: n} }

// NewDouble builds a Double frame from a float.
func NewDouble(f float64) Double { return Double{Value: f} }

// NewBoolean builds a Boolean frame.
func NewBoolean(b bool) Boolean { return Boolean{Value: b} }

// NewArray builds an Array frame from a slice of frames; a nil slice
// becomes an empty (not null) Array.
func NewArray(items []Frame) Array {
	if items == nil {
		items = []Frame{}
	}
	return Array{Items: items}
}

// NewSet builds a Set frame from a slice of frames; a nil slice becomes an
// empty Set.
func NewSet(items []Frame) Set {
	if items == nil {
		items = []Frame{}
	}
	return Set{Items: items}
}

// NewMap builds a Map frame from a key->frame mapping; a nil map becomes
// an empty Map.
func NewMap(items map[string]Frame) Map {
	if items == nil {
		items = map[string]Frame{}
	}
	return Map{Items: items}
}

var (
	// OK is the canonical SimpleString("OK") response shared by SET and
	// HSET.
	OK Frame = NewSimpleString("OK")
)

// Equal reports whether two frames are structurally identical. It exists
// mainly for tests: plain struct equality (via reflect.DeepEqual through
// testify's assert.Equal) already works for every variant here, but Equal
// gives callers outside _test.go files a documented comparison without
// reaching for reflection directly.
func Equal(a, b Frame) bool {
	switch av := a.(type) {
	case BulkString:
		bv, ok := b.(BulkString)
		return ok && bytes.Equal(av.Value, bv.Value)
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case Set:
		bv, ok := b.(Set)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for k, v := range av.Items {
			ov, ok := bv.Items[k]
			if !ok || !Equal(v, ov) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
