// File: internal/pipeline/pipeline_test.go
package pipeline_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/config"
	"github.com/xkilldash9x/deckforge-cli/internal/htmldoc"
	"github.com/xkilldash9x/deckforge-cli/internal/pipeline"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubGeometry implements schemas.GeometrySource with canned behavior.
type stubGeometry struct {
	err   error
	calls int
}

func (s *stubGeometry) Resolve(ctx context.Context, markup string, opts schemas.ConversionOptions) (*schemas.ParsedElement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	doc, err := htmldoc.Parse(markup)
	if err != nil {
		return nil, err
	}
	// Pretend the browser measured everything at a fixed box.
	doc.Root.Walk(func(el *schemas.ParsedElement) {
		el.Position = schemas.Box{X: 1, Y: 1, W: 4, H: 1}
	})
	doc.Root.Position = schemas.Box{W: 13.333, H: 7.5}
	return doc.Root, nil
}

const sampleMarkup = `
	<style>h1 { color: #336699; }</style>
	<body>
		<h1>Quarterly Review</h1>
		<p>Revenue is up.</p>
	</body>`

func newPipeline(geo schemas.GeometrySource) *pipeline.Pipeline {
	return pipeline.New(config.Default(), geo)
}

func requireValidPPTX(t *testing.T, out []byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["ppt/slides/slide1.xml"])
	assert.True(t, names["[Content_Types].xml"])
}

func TestConvert_WithGeometrySource(t *testing.T) {
	geo := &stubGeometry{}
	pipe := newPipeline(geo)

	out, runLog, err := pipe.Convert(context.Background(), sampleMarkup, schemas.DefaultConversionOptions())
	require.NoError(t, err)
	require.NotNil(t, runLog)

	assert.Equal(t, 1, geo.calls)
	requireValidPPTX(t, out)
	assert.Equal(t, 1, runLog.Count(schemas.LevelSuccess))
}

func TestConvert_FallsBackToSimulatorOnGeometryFailure(t *testing.T) {
	geo := &stubGeometry{err: errors.New("browser exploded")}
	pipe := newPipeline(geo)

	out, runLog, err := pipe.Convert(context.Background(), sampleMarkup, schemas.DefaultConversionOptions())
	require.NoError(t, err)

	// The failed browser is reported and the simulator carries the run.
	assert.Equal(t, 1, geo.calls)
	requireValidPPTX(t, out)
	assert.GreaterOrEqual(t, runLog.Count(schemas.LevelWarning), 1)

	var sawFallback bool
	for _, e := range runLog.Events {
		if e.Level == schemas.LevelInfo && e.Message == "geometry resolved by layout simulator" {
			sawFallback = true
		}
	}
	assert.True(t, sawFallback)
}

func TestConvert_CanceledRunDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	geo := &stubGeometry{err: context.Canceled}
	pipe := newPipeline(geo)

	out, runLog, err := pipe.Convert(ctx, sampleMarkup, schemas.DefaultConversionOptions())

	// A canceled run fails instead of handing the caller a simulated deck.
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
	require.NotNil(t, runLog)

	for _, e := range runLog.Events {
		assert.NotEqual(t, "geometry resolved by layout simulator", e.Message)
	}
}

func TestConvert_NoGeometrySource(t *testing.T) {
	pipe := newPipeline(nil)

	out, runLog, err := pipe.Convert(context.Background(), sampleMarkup, schemas.DefaultConversionOptions())
	require.NoError(t, err)
	requireValidPPTX(t, out)
	require.NotNil(t, runLog)
}

func TestConvert_BrowserSkippedWhenNotPreferred(t *testing.T) {
	geo := &stubGeometry{}
	pipe := newPipeline(geo)

	opts := schemas.DefaultConversionOptions()
	opts.PreferAccurateGeometry = false

	_, _, err := pipe.Convert(context.Background(), sampleMarkup, opts)
	require.NoError(t, err)
	assert.Zero(t, geo.calls)
}

func TestConvert_EmptyInputFails(t *testing.T) {
	pipe := newPipeline(nil)

	_, runLog, err := pipe.Convert(context.Background(), "", schemas.DefaultConversionOptions())
	assert.ErrorIs(t, err, htmldoc.ErrNoElements)
	// Partial diagnostics are still returned.
	require.NotNil(t, runLog)
	assert.Equal(t, 1, runLog.Count(schemas.LevelError))
}

func TestConvert_RunLogsHaveDistinctIDs(t *testing.T) {
	pipe := newPipeline(nil)

	_, first, err := pipe.Convert(context.Background(), sampleMarkup, schemas.DefaultConversionOptions())
	require.NoError(t, err)
	_, second, err := pipe.Convert(context.Background(), sampleMarkup, schemas.DefaultConversionOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestConvert_ToleranceOverridesApply(t *testing.T) {
	cfg := config.Default()
	// Lower the oversize threshold so a mildly wide wrapper gets filtered.
	cfg.Layout.OversizeRatio = 1.05
	pipe := pipeline.New(cfg, nil)

	markup := `
		<body>
			<div style="width: 1500px; height: 100px">
				<p>inside</p>
			</div>
		</body>`

	_, runLog, err := pipe.Convert(context.Background(), markup, schemas.DefaultConversionOptions())
	require.NoError(t, err)

	var removed bool
	for _, e := range runLog.Events {
		if e.Message == "decorative wrapper removed" {
			removed = true
		}
	}
	assert.True(t, removed)
}
