package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redisd/resp"
	"redisd/store"
)

func arrayOf(parts ...string) resp.Frame {
	items := make([]resp.Frame, len(parts))
	for i, p := range parts {
		items[i] = resp.NewBulkStringFromText(p)
	}
	return resp.NewArray(items)
}

func TestParseDispatchesByNameCaseInsensitive(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Frame
		want  Command
	}{
		{"lowercase get", arrayOf("get", "k"), Get{Key: "k"}},
		{"uppercase get", arrayOf("GET", "k"), Get{Key: "k"}},
		{"mixed case hgetall", arrayOf("HgetAll", "h"), HGetAll{Key: "h", Sort: true}},
		{"set", arrayOf("set", "k", "v"), Set{Key: "k", Value: []byte("v")}},
		{"hget", arrayOf("hget", "h", "f"), HGet{Key: "h", Field: "f"}},
		{"hset", arrayOf("hset", "h", "f", "v"), HSet{Key: "h", Field: "f", Value: []byte("v")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := Parse(arrayOf("frobnicate", "k"))
	require.Error(t, err)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInvalidCommand, ce.Kind)
}

func TestParseRejectsWrongArity(t *testing.T) {
	tests := []resp.Frame{
		arrayOf("get"),
		arrayOf("get", "k", "extra"),
		arrayOf("set", "k"),
		arrayOf("hset", "h", "f"),
	}
	for _, in := range tests {
		_, err := Parse(in)
		require.Error(t, err)
		var ce *CommandError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, KindInvalidArgument, ce.Kind)
	}
}

func TestParseRejectsNonArrayFrame(t *testing.T) {
	_, err := Parse(resp.NewSimpleString("PING"))
	require.Error(t, err)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInvalidCommand, ce.Kind)
}

func TestParseRejectsNonBulkStringValue(t *testing.T) {
	items := []resp.Frame{
		resp.NewBulkStringFromText("set"),
		resp.NewBulkStringFromText("k"),
		resp.NewInteger(5),
	}
	_, err := Parse(resp.NewArray(items))
	require.Error(t, err)
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindInvalidArgument, ce.Kind)
}

func TestGetSetExecute(t *testing.T) {
	s := store.New()

	cmd, err := Parse(arrayOf("set", "k", "v"))
	require.NoError(t, err)
	assert.Equal(t, resp.OK, cmd.Execute(s))

	cmd, err = Parse(arrayOf("get", "k"))
	require.NoError(t, err)
	assert.True(t, resp.Equal(resp.NewBulkStringFromText("v"), cmd.Execute(s)))
}

func TestGetMissingKeyReturnsNull(t *testing.T) {
	s := store.New()
	cmd, err := Parse(arrayOf("get", "missing"))
	require.NoError(t, err)
	assert.Equal(t, resp.Null{}, cmd.Execute(s))
}

func TestHSetHGetHGetAllExecute(t *testing.T) {
	s := store.New()

	cmd, _ := Parse(arrayOf("hset", "h", "a", "1"))
	assert.Equal(t, resp.OK, cmd.Execute(s))
	cmd, _ = Parse(arrayOf("hset", "h", "b", "2"))
	cmd.Execute(s)

	cmd, _ = Parse(arrayOf("hget", "h", "a"))
	assert.True(t, resp.Equal(resp.NewBulkStringFromText("1"), cmd.Execute(s)))

	cmd, _ = Parse(arrayOf("hgetall", "h"))
	want := resp.NewArray([]resp.Frame{
		resp.NewBulkStringFromText("a"),
		resp.NewBulkStringFromText("1"),
		resp.NewBulkStringFromText("b"),
		resp.NewBulkStringFromText("2"),
	})
	assert.True(t, resp.Equal(want, cmd.Execute(s)))
}

func TestHGetAllOnMissingKeyReturnsEmptyArray(t *testing.T) {
	s := store.New()
	cmd, _ := Parse(arrayOf("hgetall", "missing"))
	assert.True(t, resp.Equal(resp.NewArray(nil), cmd.Execute(s)))
}

func TestHGetAllUnsortedUsesStoreOrder(t *testing.T) {
	s := store.New()
	s.HSet("h", "z", []byte("1"))
	s.HSet("h", "a", []byte("2"))

	cmd := HGetAll{Key: "h", Sort: false}
	out := cmd.Execute(s)
	arr, ok := out.(resp.Array)
	require.True(t, ok)
	assert.Len(t, arr.Items, 4)
}
