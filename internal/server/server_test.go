package server

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/steosofficial/hanal/analyzer"
	"github.com/steosofficial/hanal/dicbuild"
)

const (
	testDic   = "방\t방/NNG\n에\t에/JKB\n"
	testModel = "TRANSITIONS = {\n  (1) NNG --> JKB: 1.000000\n}\n\nSTATE_FEATURES = {\n  (0) LSP --> NNG: 0.500000\n}\n"
)

// reply - объединение полей Response и ErrorResponse, как его видит клиент.
type reply struct {
	ID        string           `msgpack:"id"`
	Result    *analyzer.Result `msgpack:"r"`
	TimeTaken int64            `msgpack:"t"`
	Error     string           `msgpack:"e"`
	Code      int              `msgpack:"c"`
}

func openTestAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	src := t.TempDir()
	dicPath := filepath.Join(src, "morph.dic")
	modelPath := filepath.Join(src, "model.txt")
	require.NoError(t, os.WriteFile(dicPath, []byte(testDic), 0o644))
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0o644))

	rsc := filepath.Join(t.TempDir(), "rsc")
	require.NoError(t, dicbuild.BuildResources(dicPath, modelPath, rsc))

	an := analyzer.NewAnalyzer()
	require.NoError(t, an.Open(rsc, ""))
	t.Cleanup(func() { an.Close() })
	return an
}

func serve(t *testing.T, srv *Server, reqs ...Request) []reply {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range reqs {
		require.NoError(t, enc.Encode(req))
	}
	require.NoError(t, srv.Serve(&in, &out))

	var replies []reply
	dec := msgpack.NewDecoder(&out)
	for {
		var r reply
		err := dec.Decode(&r)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		replies = append(replies, r)
	}
	return replies
}

func TestServe(t *testing.T) {
	an := openTestAnalyzer(t)
	srv := New(an, log.New(io.Discard))

	replies := serve(t, srv,
		Request{ID: "1", Sentence: "방에"},
		Request{ID: "2", Sentence: "방에", Options: "top_k = 0"},
		Request{ID: "3", Sentence: "\xff"},
		Request{ID: "4", Sentence: "방에 방에", Options: "word_merge = 2"},
	)
	require.Len(t, replies, 4)

	ok := replies[0]
	assert.Equal(t, "1", ok.ID)
	assert.Empty(t, ok.Error)
	require.NotNil(t, ok.Result)
	assert.Equal(t, "방\t방/NNG\n에\t에/JKB\n", ok.Result.String())
	assert.InDelta(t, 1.5, ok.Result.Score, 1e-6)
	assert.GreaterOrEqual(t, ok.TimeTaken, int64(0))

	assert.Equal(t, "2", replies[1].ID)
	assert.Equal(t, CodeOption, replies[1].Code)
	assert.Nil(t, replies[1].Result)

	assert.Equal(t, CodeAnalyze, replies[2].Code)
	assert.NotEmpty(t, replies[2].Error)

	assert.Equal(t, "4", replies[3].ID)
	require.NotNil(t, replies[3].Result)
	assert.Len(t, replies[3].Result.Tokens, 4)
}

func TestServeClosedAnalyzer(t *testing.T) {
	an := openTestAnalyzer(t)
	require.NoError(t, an.Close())
	srv := New(an, log.New(io.Discard))

	replies := serve(t, srv, Request{ID: "x", Sentence: "방"})
	require.Len(t, replies, 1)
	assert.Equal(t, CodeClosed, replies[0].Code)
}

func TestServeEmptyInput(t *testing.T) {
	srv := New(openTestAnalyzer(t), log.New(io.Discard))
	var out bytes.Buffer
	require.NoError(t, srv.Serve(&bytes.Buffer{}, &out))
	assert.Zero(t, out.Len())
}

func TestServeBrokenInput(t *testing.T) {
	srv := New(openTestAnalyzer(t), log.New(io.Discard))
	var out bytes.Buffer
	// 0xc1 не используется в msgpack.
	err := srv.Serve(bytes.NewReader([]byte{0xc1}), &out)
	assert.Error(t, err)
}
