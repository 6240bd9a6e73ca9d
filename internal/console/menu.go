package console

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"

	"github.com/i474232898/space-data-console/internal/space"
	"github.com/i474232898/space-data-console/internal/space/endpoints"
)

// Runner executes cycles and replays logs for a descriptor.
type Runner interface {
	Run(ctx context.Context, d *space.Descriptor) error
	Replay(d *space.Descriptor) ([]string, error)
}

// Menu routes user choices to cycles until the user exits or input ends.
type Menu struct {
	term    *Terminal
	runner  Runner
	catalog []*space.Descriptor
	logger  zerolog.Logger
}

// NewMenu creates a new Menu.
func NewMenu(term *Terminal, runner Runner, catalog []*space.Descriptor, logger zerolog.Logger) *Menu {
	return &Menu{term: term, runner: runner, catalog: catalog, logger: logger}
}

// Loop shows the menu and runs the chosen option until "exit" or end of input.
// Errors of individual cycles never end the loop.
func (m *Menu) Loop(ctx context.Context) error {
	replayOption := len(m.catalog) + 1
	exitOption := len(m.catalog) + 2

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.Render()

		choice, err := m.term.Ask("Select an option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				m.term.Println("Exiting...")
				return nil
			}
			return err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(choice))
		switch {
		case convErr == nil && n >= 1 && n <= len(m.catalog):
			d := m.catalog[n-1]
			if err := m.runner.Run(ctx, d); err != nil {
				m.logger.Debug().Err(err).Str("endpoint", d.ID).Msg("cycle ended with error")
			}
		case convErr == nil && n == replayOption:
			if err := m.replay(); err != nil && errors.Is(err, io.EOF) {
				m.term.Println("Exiting...")
				return nil
			}
		case convErr == nil && n == exitOption:
			m.term.Println("Exiting...")
			return nil
		default:
			m.term.Println("Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) replay() error {
	answer, err := m.term.Ask("Which endpoint's saved records (number or id): ")
	if err != nil {
		return err
	}
	d, ok := m.pick(answer)
	if !ok {
		m.term.Println("Invalid choice. Please try again.")
		return space.ErrInputValidation
	}
	_, err = m.runner.Replay(d)
	return err
}

func (m *Menu) pick(answer string) (*space.Descriptor, bool) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(m.catalog) {
			return m.catalog[n-1], true
		}
		return nil, false
	}
	return endpoints.Find(m.catalog, answer)
}

// Render prints the numbered options.
func (m *Menu) Render() {
	t := table.NewWriter()
	t.SetOutputMirror(m.term.Writer())
	t.SetTitle("NASA API Console Application")
	t.AppendHeader(table.Row{"#", "Option"})
	for i, d := range m.catalog {
		t.AppendRow(table.Row{i + 1, d.Name})
	}
	t.AppendRow(table.Row{len(m.catalog) + 1, "View saved records"})
	t.AppendRow(table.Row{len(m.catalog) + 2, "Exit"})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// RenderCatalog prints every descriptor with its log file.
func RenderCatalog(w io.Writer, catalog []*space.Descriptor, logDir string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Shape", "Log file"})
	for i, d := range catalog {
		t.AppendRow(table.Row{i + 1, d.ID, d.Name, string(d.Shape), filepath.Join(logDir, d.StorageFile)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
