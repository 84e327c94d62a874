package wirekit_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/wirekit"
	"github.com/reoring/wirekit/jsonwire"
	"github.com/reoring/wirekit/xmlwire"
)

func TestFile_RoundTrip(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := xmlwire.New[sample]().WithLogger(zap.New(core))
	path := filepath.Join(t.TempDir(), "sample.xml")

	in := &sample{Name: "Test", Value: 42}
	require.NoError(t, a.SerializeToFile(path, in))

	out, err := a.DeserializeFromFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, ignoreXMLName); diff != "" {
		t.Fatalf("file round trip mismatch (-want +got):\n%s", diff)
	}

	written := logs.FilterMessage("document written").All()
	require.Len(t, written, 1)
	require.Equal(t, path, written[0].ContextMap()["path"])
	require.Equal(t, "xml", written[0].ContextMap()["format"])
	require.Len(t, logs.FilterMessage("document read").All(), 1)
}

func TestFile_LargeDocumentSpansChunks(t *testing.T) {
	a := jsonwire.New[sample](jsonwire.Compact())
	path := filepath.Join(t.TempDir(), "big.json")
	in := &sample{Name: strings.Repeat("x", 100<<10), Value: 1}

	require.NoError(t, a.SerializeToFileContext(context.Background(), path, in))
	out, err := a.DeserializeFromFileContext(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, in.Name, out.Name)
}

func TestFile_MissingIsNotAFormatError(t *testing.T) {
	a := jsonwire.New[sample]()
	_, err := a.DeserializeFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, wirekit.ErrFileNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.False(t, wirekit.IsFormatError(err))
}

func TestFile_EmptyFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	v, err := jsonwire.New[sample]().DeserializeFromFile(path)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestFile_EmptyPath(t *testing.T) {
	a := xmlwire.New[sample]()
	require.ErrorIs(t, a.SerializeToFile(" ", &sample{}), wirekit.ErrNilInput)
	_, err := a.DeserializeFromFile("")
	require.ErrorIs(t, err, wirekit.ErrNilInput)
}

func TestFile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := xmlwire.New[sample]()
	path := filepath.Join(t.TempDir(), "c.xml")

	err := a.SerializeToFileContext(ctx, path, &sample{})
	require.ErrorIs(t, err, wirekit.ErrCanceled)
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)

	require.NoError(t, a.SerializeToFile(path, &sample{}))
	_, err = a.DeserializeFromFileContext(ctx, path)
	require.ErrorIs(t, err, wirekit.ErrCanceled)
}
