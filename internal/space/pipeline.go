package space

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pipeline runs fetch → normalize → render → confirm → persist cycles for
// any descriptor. It is not safe for concurrent use; cycles run one at a time.
type Pipeline struct {
	transport  Transport
	store      Store
	console    Console
	apiKey     string
	visualizer Visualizer
	geocoder   Geocoder
	logger     zerolog.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithVisualizer sets the optional trajectory plotter.
func WithVisualizer(v Visualizer) Option {
	return func(p *Pipeline) { p.visualizer = v }
}

// WithGeocoder sets the optional place resolver.
func WithGeocoder(g Geocoder) Option {
	return func(p *Pipeline) { p.geocoder = g }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline creates a new Pipeline. apiKey is attached to every request
// whose descriptor asks for it and is never modified.
func NewPipeline(transport Transport, store Store, console Console, apiKey string, opts ...Option) *Pipeline {
	p := &Pipeline{
		transport: transport,
		store:     store,
		console:   console,
		apiKey:    apiKey,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one complete cycle for d. Every failure is reported on the
// console before being returned; none of them is fatal to the caller.
func (p *Pipeline) Run(ctx context.Context, d *Descriptor) error {
	log := p.logger.With().Str("cycle", uuid.NewString()).Str("endpoint", d.ID).Logger()
	log.Debug().Msg("cycle started")

	err := p.run(ctx, d, log)
	if err != nil {
		p.report(d, err)
		log.Warn().Err(err).Msg("cycle aborted")
		return err
	}
	log.Debug().Msg("cycle completed")
	return nil
}

func (p *Pipeline) run(ctx context.Context, d *Descriptor, log zerolog.Logger) error {
	// Awaiting input.
	params, rawLimit, err := p.collect(d)
	if err != nil {
		return err
	}

	if d.Resolve != nil {
		params, err = d.Resolve(ctx, Deps{Transport: p.transport, Geocoder: p.geocoder}, params)
		if err != nil {
			return err
		}
	}
	req := d.Build(params, p.apiKey)

	var all, records []Record
	if d.Shape == ShapeRequestOnly {
		all = []Record{{Fields: []NamedValue{{Name: "url", Value: req.String()}}}}
		records = all
	} else {
		// Fetching.
		log.Debug().Str("url", req.BaseURL).Msg("fetching")
		body, err := p.transport.Get(ctx, req)
		if err != nil {
			return err
		}

		// Normalizing. The limit is checked first so a bad value produces nothing.
		limit, err := p.limit(d, rawLimit)
		if err != nil {
			return err
		}
		all, err = Normalize(d, body, params)
		if err != nil {
			return err
		}
		if d.Noun != "" {
			p.console.Printf("Found %d %s.\n", len(all), d.Noun)
		}
		records = Truncate(all, limit)
		log.Info().Int("available", len(all)).Int("shown", len(records)).Msg("normalized")
	}

	// Rendering.
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		line := Render(d, rec)
		lines = append(lines, line)
		p.console.Println(line)
	}

	// Confirming persist, once per record.
	var persistErrs []error
	for i, line := range lines {
		ok, err := p.console.Confirm(fmt.Sprintf("Save record %d of %d to %s? (y/n): ", i+1, len(lines), d.StorageFile))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := p.store.Append(d.StorageFile, line); err != nil {
			p.console.Printf("Could not save record %d: %v\n", i+1, err)
			log.Error().Err(err).Int("record", i+1).Msg("append failed")
			persistErrs = append(persistErrs, err)
			continue
		}
		log.Debug().Int("record", i+1).Str("file", d.StorageFile).Msg("record saved")
	}

	if d.PlotTitle != nil {
		p.plot(ctx, d, params, all, log)
	}

	return errors.Join(persistErrs...)
}

// collect prompts for every parameter and, when the descriptor asks for one,
// the raw limit. The limit is parsed later, after the fetch.
func (p *Pipeline) collect(d *Descriptor) (Params, string, error) {
	params := Params{}
	for _, prm := range d.Params {
		if prm.Skip != nil && prm.Skip(params) {
			continue
		}
		v, err := p.console.Ask(prm.Prompt)
		if err != nil {
			return nil, "", err
		}
		params[prm.Key] = v
	}

	if !d.AskLimit {
		return params, "", nil
	}
	raw, err := p.console.Ask(d.LimitPrompt)
	if err != nil {
		return nil, "", err
	}
	return params, raw, nil
}

func (p *Pipeline) limit(d *Descriptor, raw string) (int, error) {
	if !d.AskLimit {
		if d.DefaultLimit <= 0 {
			return int(^uint(0) >> 1), nil
		}
		return d.DefaultLimit, nil
	}
	return ParseLimit(raw)
}

func (p *Pipeline) plot(ctx context.Context, d *Descriptor, params Params, records []Record, log zerolog.Logger) {
	if len(records) == 0 {
		return
	}
	points := make([]Point, 0, len(records))
	for _, rec := range records {
		x, errX := strconv.ParseFloat(rec.Get("x"), 64)
		y, errY := strconv.ParseFloat(rec.Get("y"), 64)
		z, errZ := strconv.ParseFloat(rec.Get("z"), 64)
		if errX != nil || errY != nil || errZ != nil {
			continue
		}
		points = append(points, Point{X: x, Y: y, Z: z})
	}

	var err error
	if p.visualizer == nil {
		err = ErrVisualizerUnavailable
	} else {
		err = p.visualizer.Plot(ctx, d.PlotTitle(params), points)
	}
	switch {
	case err == nil:
	case errors.Is(err, ErrVisualizerUnavailable):
		p.console.Println("To see the plot, install gnuplot and make sure it is on your PATH.")
		log.Debug().Err(err).Msg("plot skipped")
	default:
		p.console.Println(err)
		log.Warn().Err(err).Msg("plot failed")
	}
}

func (p *Pipeline) report(d *Descriptor, err error) {
	switch {
	case errors.Is(err, io.EOF):
		// Input ended; the menu exits on its own.
	case errors.Is(err, ErrInputValidation):
		p.console.Println("Invalid input! Please enter a valid number.")
	case errors.Is(err, ErrLookup):
		if d.NotFound != "" {
			p.console.Println(d.NotFound)
		} else {
			p.console.Printf("%s: %v\n", d.Name, err)
		}
	case errors.Is(err, ErrMalformedResponse):
		p.console.Printf("Unexpected response from %s: %v\n", d.Name, err)
	case errors.Is(err, ErrTransport):
		p.console.Printf("Request to %s failed: %v\n", d.Name, err)
	case errors.Is(err, ErrPersistence):
		// Already reported per record.
	default:
		p.console.Printf("%s: %v\n", d.Name, err)
	}
}

// Replay prints every saved entry of d's log in append order and returns them.
func (p *Pipeline) Replay(d *Descriptor) ([]string, error) {
	lines, err := p.store.ReadAll(d.StorageFile)
	if err != nil {
		if errors.Is(err, ErrLookup) {
			p.console.Printf("No saved records for %s: %s not found.\n", d.Name, d.StorageFile)
		} else {
			p.console.Printf("Could not read %s: %v\n", d.StorageFile, err)
		}
		return nil, err
	}
	p.console.Printf("%s (%d saved records):\n", d.Name, len(lines))
	for _, line := range lines {
		p.console.Println(line)
	}
	return lines, nil
}
