// File: internal/pipeline/pipeline.go
// Description: The conversion orchestrator. One Convert call takes raw markup
// through parsing, geometry resolution, classification, style mapping,
// post-processing and document emission, collecting a per-run log along the way.

package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/classify"
	"github.com/xkilldash9x/deckforge-cli/internal/config"
	"github.com/xkilldash9x/deckforge-cli/internal/htmldoc"
	"github.com/xkilldash9x/deckforge-cli/internal/layout"
	"github.com/xkilldash9x/deckforge-cli/internal/observability"
	"github.com/xkilldash9x/deckforge-cli/internal/postprocess"
	"github.com/xkilldash9x/deckforge-cli/internal/pptx"
	"github.com/xkilldash9x/deckforge-cli/internal/styles"
)

// Pipeline wires the conversion stages together. A single Pipeline serves many
// Convert calls concurrently; all per-run state lives on the stack.
type Pipeline struct {
	cfg     *config.Config
	logger  *zap.Logger
	geo     schemas.GeometrySource
	emitter schemas.DocumentEmitter
}

// New builds a pipeline. geo may be nil, in which case every run takes the
// layout-simulator path.
func New(cfg *config.Config, geo schemas.GeometrySource) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		logger:  observability.GetLogger().Named("pipeline"),
		geo:     geo,
		emitter: pptx.NewWriter(),
	}
}

// tolerances merges the config overrides onto the built-in defaults.
func (p *Pipeline) tolerances() schemas.Tolerances {
	tol := schemas.DefaultTolerances()
	lc := p.cfg.Layout
	if lc.TriangleMaxSizeInches > 0 {
		tol.TriangleMaxSize = lc.TriangleMaxSizeInches
	}
	if lc.EllipseSquarenessInches > 0 {
		tol.EllipseSquareness = lc.EllipseSquarenessInches
	}
	if lc.DecorativeRadiusPx > 0 {
		tol.DecorativeRadiusPx = lc.DecorativeRadiusPx
	}
	if lc.OversizeRatio > 0 {
		tol.OversizeRatio = lc.OversizeRatio
	}
	if lc.ExtremeOversizeRatio > 0 {
		tol.ExtremeOversizeRatio = lc.ExtremeOversizeRatio
	}
	return tol
}

// Convert runs the full conversion for one document. The returned RunLog is
// non-nil whenever parsing started, including on failed runs, so callers can
// surface partial diagnostics.
func (p *Pipeline) Convert(ctx context.Context, markup string, opts schemas.ConversionOptions) ([]byte, *schemas.RunLog, error) {
	opts = opts.Normalize()
	runID := uuid.NewString()
	log := schemas.NewRunLog(runID)
	logger := p.logger.With(zap.String("run_id", runID))

	log.Info(fmt.Sprintf("starting conversion, slide %gx%g in", opts.SlideWidth, opts.SlideHeight))

	doc, err := htmldoc.Parse(markup)
	if err != nil {
		log.Error(err.Error())
		return nil, log, fmt.Errorf("convert: %w", err)
	}
	log.Info(fmt.Sprintf("parsed %d elements", doc.ElementCount))

	root, err := p.resolveGeometry(ctx, markup, doc, opts, log, logger)
	if err != nil {
		log.Error(err.Error())
		return nil, log, fmt.Errorf("convert: %w", err)
	}

	postprocess.AuditBounds(root, opts, log)

	tol := p.tolerances()
	tree := classify.New(tol, log).Tree(root)

	styles.Apply(tree)

	if err := postprocess.FilterDecorative(tree, opts, tol, log); err != nil {
		log.Error(err.Error())
		return nil, log, fmt.Errorf("convert: %w", err)
	}
	postprocess.ScaleToFit(tree, opts, log)

	out, err := p.emitter.Emit(tree, opts, log)
	if err != nil {
		log.Error(err.Error())
		return nil, log, fmt.Errorf("convert: %w", err)
	}

	log.Success(fmt.Sprintf("conversion complete, %d warnings", log.Count(schemas.LevelWarning)))
	logger.Info("conversion complete",
		zap.Int("elements", doc.ElementCount),
		zap.Int("bytes", len(out)))
	return out, log, nil
}

// resolveGeometry runs the accurate browser path when it is available and
// requested, and otherwise positions the parsed tree with the box-flow
// simulator. A browser failure degrades the whole run to the simulator; there
// is no per-element mixing of the two sources. A canceled run is an error,
// never a fallback.
func (p *Pipeline) resolveGeometry(ctx context.Context, markup string, doc *htmldoc.Document, opts schemas.ConversionOptions, log *schemas.RunLog, logger *zap.Logger) (*schemas.ParsedElement, error) {
	if p.geo != nil && opts.PreferAccurateGeometry {
		root, err := p.geo.Resolve(ctx, markup, opts)
		if err == nil {
			log.Info("geometry resolved by browser renderer")
			return root, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warning(fmt.Sprintf("browser renderer unavailable, using layout simulator: %v", err))
		logger.Warn("geometry source failed", zap.Error(err))
	}

	layout.NewEngine(opts, logger).Solve(doc.Root)
	log.Info("geometry resolved by layout simulator")
	return doc.Root, nil
}
