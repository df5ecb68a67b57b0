// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/pkg/types"
)

func testRequest(path string) Request {
	return Request{
		Path: path,
		Input: assemble.Input{
			Info: map[string]string{"titulo": "Proyecto"},
			Sections: map[string]types.Section{
				"introduccion": {Title: "🔍 Introducción", Base: true},
			},
			Active:  []string{"introduccion"},
			Content: map[string]string{"introduccion": "Texto de la introducción."},
			Format:  types.DefaultFormatConfig(),
		},
	}
}

func TestRunWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salida.docx")

	var fractions []float64
	req := testRequest(path)
	req.Progress = func(f float64) { fractions = append(fractions, f) }

	res := Run(context.Background(), req)
	require.NoError(t, res.Err)
	require.Greater(t, res.Blocks, 0)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	// Progress is monotonic and ends at 1.
	require.NotEmpty(t, fractions)
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Fatalf("progress went backwards: %v", fractions)
		}
	}
	require.Equal(t, 1.0, fractions[len(fractions)-1])
}

func TestRunEmptyPathAborts(t *testing.T) {
	req := testRequest("")
	var last float64 = -1
	req.Progress = func(f float64) { last = f }

	res := Run(context.Background(), req)
	if res.Err == nil {
		t.Fatal("empty path accepted")
	}
	if last != 0 {
		t.Errorf("failed export left progress at %v, want 0", last)
	}
}

func TestRunEmptyDocumentAborts(t *testing.T) {
	req := testRequest(filepath.Join(t.TempDir(), "vacio.docx"))
	req.Input.Content = map[string]string{}

	res := Run(context.Background(), req)
	if res.Err == nil {
		t.Fatal("empty document exported")
	}
	if _, err := os.Stat(req.Path); !os.IsNotExist(err) {
		t.Error("aborted export left a file behind")
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Run(ctx, testRequest(filepath.Join(t.TempDir(), "salida.docx")))
	require.ErrorIs(t, res.Err, context.Canceled)
}

func TestStartDeliversResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salida.docx")
	ch := Start(context.Background(), testRequest(path))

	select {
	case res := <-ch:
		require.NoError(t, res.Err)
	case <-time.After(10 * time.Second):
		t.Fatal("export worker never finished")
	}
}
