// Package command parses RESP arrays into the five supported commands and
// executes them against a store.Store. Parsing and execution are kept as
// separate steps, mirroring the decode-then-dispatch split in resp: a
// Command is a validated, typed request that can be executed without
// touching the wire format again.
package command

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"redisd/resp"
	"redisd/store"
)

// Command is anything the server knows how to run against a Store.
type Command interface {
	Execute(s *store.Store) resp.Frame
}

// Get retrieves a value from the flat namespace.
type Get struct{ Key string }

// Set stores a value in the flat namespace.
type Set struct {
	Key   string
	Value []byte
}

// HGet retrieves one field from a hash.
type HGet struct{ Key, Field string }

// HSet stores one field in a hash, creating it if necessary.
type HSet struct {
	Key, Field string
	Value      []byte
}

// HGetAll retrieves every field/value pair of a hash. Sort controls
// whether the reply is ordered by field name; the wire-level parser
// always sets it, but tests can construct an unsorted HGetAll directly to
// exercise the Store's natural (unordered) iteration.
type HGetAll struct {
	Key  string
	Sort bool
}

// CommandErrorKind classifies a parse-time CommandError.
type CommandErrorKind int

const (
	// KindInvalidCommand means the command name is missing or unrecognized.
	KindInvalidCommand CommandErrorKind = iota
	// KindInvalidArgument means the argument count or shape is wrong for
	// an otherwise-recognized command.
	KindInvalidArgument
	// KindUTF8 means a key or field argument was not valid UTF-8 text.
	KindUTF8
)

// CommandError is returned by Parse when a frame cannot be turned into a
// runnable Command.
type CommandError struct {
	Kind CommandErrorKind
	Msg  string
}

func (e *CommandError) Error() string { return e.Msg }

func invalidCommand(format string, args ...interface{}) error {
	return &CommandError{Kind: KindInvalidCommand, Msg: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...interface{}) error {
	return &CommandError{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// Parse converts a decoded frame into a Command. The frame must be an
// Array whose first element is a BulkString naming the command;
// everything else about RESP's frame algebra (Map, Set, Boolean, ...) is
// valid to decode but never valid as a command.
func Parse(f resp.Frame) (Command, error) {
	arr, ok := f.(resp.Array)
	if !ok {
		return nil, invalidCommand("command must be an array, got %T", f)
	}
	if len(arr.Items) == 0 {
		return nil, invalidCommand("empty command array")
	}
	nameFrame, ok := arr.Items[0].(resp.BulkString)
	if !ok {
		return nil, invalidCommand("command name must be a bulk string, got %T", arr.Items[0])
	}
	name := strings.ToLower(string(nameFrame.Value))

	switch name {
	case "get":
		return parseGet(arr.Items)
	case "set":
		return parseSet(arr.Items)
	case "hget":
		return parseHGet(arr.Items)
	case "hset":
		return parseHSet(arr.Items)
	case "hgetall":
		return parseHGetAll(arr.Items)
	default:
		return nil, invalidCommand("Invalid command: %s", name)
	}
}

func checkArity(items []resp.Frame, want int, name string) error {
	if len(items) != want {
		return invalidArgument("wrong number of arguments for %q command", name)
	}
	return nil
}

func bulkText(f resp.Frame, what string) (string, error) {
	b, ok := f.(resp.BulkString)
	if !ok {
		return "", invalidArgument("%s must be a bulk string, got %T", what, f)
	}
	if !utf8.Valid(b.Value) {
		return "", &CommandError{Kind: KindUTF8, Msg: fmt.Sprintf("%s is not valid UTF-8", what)}
	}
	return string(b.Value), nil
}

func bulkValue(f resp.Frame, what string) ([]byte, error) {
	b, ok := f.(resp.BulkString)
	if !ok {
		return nil, invalidArgument("%s must be a bulk string, got %T", what, f)
	}
	return b.Value, nil
}

func parseGet(items []resp.Frame) (Command, error) {
	if err := checkArity(items, 2, "get"); err != nil {
		return nil, err
	}
	key, err := bulkText(items[1], "key")
	if err != nil {
		return nil, err
	}
	return Get{Key: key}, nil
}

func parseSet(items []resp.Frame) (Command, error) {
	if err := checkArity(items, 3, "set"); err != nil {
		return nil, err
	}
	key, err := bulkText(items[1], "key")
	if err != nil {
		return nil, err
	}
	value, err := bulkValue(items[2], "value")
	if err != nil {
		return nil, err
	}
	return Set{Key: key, Value: value}, nil
}

func parseHGet(items []resp.Frame) (Command, error) {
	if err := checkArity(items, 3, "hget"); err != nil {
		return nil, err
	}
	key, err := bulkText(items[1], "key")
	if err != nil {
		return nil, err
	}
	field, err := bulkText(items[2], "field")
	if err != nil {
		return nil, err
	}
	return HGet{Key: key, Field: field}, nil
}

func parseHSet(items []resp.Frame) (Command, error) {
	if err := checkArity(items, 4, "hset"); err != nil {
		return nil, err
	}
	key, err := bulkText(items[1], "key")
	if err != nil {
		return nil, err
	}
	field, err := bulkText(items[2], "field")
	if err != nil {
		return nil, err
	}
	value, err := bulkValue(items[3], "value")
	if err != nil {
		return nil, err
	}
	return HSet{Key: key, Field: field, Value: value}, nil
}

func parseHGetAll(items []resp.Frame) (Command, error) {
	if err := checkArity(items, 2, "hgetall"); err != nil {
		return nil, err
	}
	key, err := bulkText(items[1], "key")
	if err != nil {
		return nil, err
	}
	return HGetAll{Key: key, Sort: true}, nil
}

// Execute implements Command.
func (c Get) Execute(s *store.Store) resp.Frame {
	v, ok := s.Get(c.Key)
	if !ok {
		return resp.Null{}
	}
	return resp.NewBulkString(v)
}

// Execute implements Command.
func (c Set) Execute(s *store.Store) resp.Frame {
	s.Set(c.Key, c.Value)
	return resp.OK
}

// Execute implements Command.
func (c HGet) Execute(s *store.Store) resp.Frame {
	v, ok := s.HGet(c.Key, c.Field)
	if !ok {
		return resp.Null{}
	}
	return resp.NewBulkString(v)
}

// Execute implements Command.
func (c HSet) Execute(s *store.Store) resp.Frame {
	s.HSet(c.Key, c.Field, c.Value)
	return resp.OK
}

// Execute implements Command. The hash is copied out of the store under
// its shard lock (see store.Store.HGetAll) before any sorting happens
// here, so no store lock is held while building the reply.
func (c HGetAll) Execute(s *store.Store) resp.Frame {
	fields := s.HGetAll(c.Key)
	if len(fields) == 0 {
		return resp.NewArray(nil)
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	if c.Sort {
		sort.Strings(names)
	}

	items := make([]resp.Frame, 0, len(names)*2)
	for _, k := range names {
		items = append(items, resp.NewBulkStringFromText(k), resp.NewBulkString(fields[k]))
	}
	return resp.NewArray(items)
}
