package plot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/i474232898/space-data-console/internal/space"
)

// Gnuplot draws trajectories by piping a script to a gnuplot process.
// The binary is looked up on every call, so installing it mid-session works.
type Gnuplot struct {
	Binary string
	// Run executes the command; tests replace it.
	Run func(cmd *exec.Cmd) error
}

// NewGnuplot creates a new Gnuplot using the "gnuplot" binary on PATH.
func NewGnuplot() *Gnuplot {
	return &Gnuplot{
		Binary: "gnuplot",
		Run:    func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Plot renders points as a 3D line titled title.
func (g *Gnuplot) Plot(ctx context.Context, title string, points []space.Point) error {
	path, err := exec.LookPath(g.Binary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s not found on PATH", space.ErrVisualizerUnavailable, g.Binary)
		}
		return fmt.Errorf("%w: %v", space.ErrVisualizerUnavailable, err)
	}
	if len(points) == 0 {
		return errors.New("no trajectory points to plot")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-persist")
	cmd.Stdin = strings.NewReader(Script(title, points))
	cmd.Stderr = &stderr
	if err := g.Run(cmd); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("gnuplot: %v: %s", err, msg)
		}
		return fmt.Errorf("gnuplot: %v", err)
	}
	return nil
}

// Script returns the gnuplot program plotting points with inline data.
func Script(title string, points []space.Point) string {
	var b strings.Builder
	b.WriteString("set xlabel 'X (km)'\n")
	b.WriteString("set ylabel 'Y (km)'\n")
	b.WriteString("set zlabel 'Z (km)'\n")
	fmt.Fprintf(&b, "splot '-' with lines title %s\n", strconv.Quote(title))
	for _, p := range points {
		fmt.Fprintf(&b, "%s %s %s\n",
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.Z, 'g', -1, 64))
	}
	b.WriteString("e\n")
	return b.String()
}
