// File: internal/geometry/chrome.go
// Description: The accurate geometry source, backed by a headless Chrome
// instance driven over CDP. The markup is loaded via a data URL and an
// injected collector walks the live DOM, reporting per-element bounding boxes
// and the computed-style subset the pipeline consumes. One failure disables
// the source for that run; the caller falls back to simulated layout.

package geometry

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/config"
)

// ErrUnavailable indicates the geometry source cannot serve this run.
var ErrUnavailable = errors.New("geometry: source unavailable")

// pxPerInch matches the CSS reference pixel density.
const pxPerInch = 96.0

// Source is a pooled, reusable headless-browser geometry provider. The
// allocator context is long-lived; each Resolve call opens and closes its own
// tab, with release guaranteed on all exit paths.
type Source struct {
	cfg     config.GeometryConfig
	logger  *zap.Logger
	limiter *rate.Limiter

	allocCtx    context.Context
	allocCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// Ensure Source implements the pipeline contract.
var _ schemas.GeometrySource = (*Source)(nil)

// NewSource creates the browser allocator. The browser process itself starts
// lazily with the first tab.
func NewSource(cfg config.GeometryConfig, logger *zap.Logger) (*Source, error) {
	if !cfg.Enabled {
		return nil, ErrUnavailable
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	for _, arg := range cfg.Args {
		if name, value, found := strings.Cut(strings.TrimPrefix(arg, "--"), "="); found {
			opts = append(opts, chromedp.Flag(name, value))
		} else {
			opts = append(opts, chromedp.Flag(name, true))
		}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	limit := rate.Inf
	if cfg.AcquirePerSecond > 0 {
		limit = rate.Limit(cfg.AcquirePerSecond)
	}

	return &Source{
		cfg:         cfg,
		logger:      logger.Named("geometry"),
		limiter:     rate.NewLimiter(limit, 1),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Resolve renders the markup and returns the element tree with boxes in
// inches. There is no retry; any failure surfaces once and the caller falls
// back for the entire run.
func (s *Source) Resolve(ctx context.Context, markup string, opts schemas.ConversionOptions) (*schemas.ParsedElement, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrUnavailable
	}
	s.mu.Unlock()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geometry: waiting for renderer slot: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(s.allocCtx)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, s.cfg.NavigationTimeout)
	defer cancelRun()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(markup))

	// Size the viewport to the slide so measured boxes line up with the
	// output coordinate space.
	viewportW := int64(opts.SlideWidth * pxPerInch)
	viewportH := int64(opts.SlideHeight * pxPerInch)

	var raw rawElement
	err := chromedp.Run(runCtx,
		emulation.SetDeviceMetricsOverride(viewportW, viewportH, 1, false),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(collectorJS, &raw),
	)
	if err != nil {
		s.logger.Warn("Geometry collection failed", zap.Error(err))
		return nil, fmt.Errorf("geometry: collecting element boxes: %w", err)
	}

	root := raw.toParsedElement()
	if root == nil {
		return nil, fmt.Errorf("geometry: collector returned no elements: %w", ErrUnavailable)
	}
	return root, nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.allocCancel()
}

// rawElement mirrors the collector's JSON output; geometry is in CSS pixels.
type rawElement struct {
	ID       string            `json:"id"`
	Tag      string            `json:"tag"`
	Text     string            `json:"text"`
	Rect     rawRect           `json:"rect"`
	Styles   map[string]string `json:"styles"`
	Children []rawElement      `json:"children"`
}

type rawRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// toParsedElement converts the collector output to the pipeline's element
// tree, translating pixels to inches.
func (r *rawElement) toParsedElement() *schemas.ParsedElement {
	if r.Tag == "" {
		return nil
	}
	el := &schemas.ParsedElement{
		ID:          r.ID,
		TagName:     strings.ToLower(r.Tag),
		TextContent: r.Text,
		Styles:      schemas.StyleMap(r.Styles),
		Position: schemas.Box{
			X: r.Rect.X / pxPerInch,
			Y: r.Rect.Y / pxPerInch,
			W: r.Rect.W / pxPerInch,
			H: r.Rect.H / pxPerInch,
		},
	}
	for i := range r.Children {
		if child := r.Children[i].toParsedElement(); child != nil {
			el.Children = append(el.Children, child)
		}
	}
	return el
}
