package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/pixil98/go-roadsim/internal/world"
)

const (
	// DefaultRefreshInterval approximates a 60 Hz render pull.
	DefaultRefreshInterval = 16 * time.Millisecond

	newCarSpeed         = 15.0
	newIntersectionStep = 200.0
)

// TUI is a terminal frontend: tables of intersections and cars, a status
// line, and keyboard control. It reads the world exclusively through the
// coordinator's snapshot path.
type TUI struct {
	shell   *Shell
	refresh time.Duration

	app           *tview.Application
	status        *tview.TextView
	intersections *tview.Table
	cars          *tview.Table
}

func NewTUI(shell *Shell, refresh time.Duration) *TUI {
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	return &TUI{
		shell:   shell,
		refresh: refresh,
	}
}

// Start runs the terminal UI until ctx is cancelled or the user quits. It
// implements service.Worker.
func (t *TUI) Start(ctx context.Context) error {
	t.app = tview.NewApplication()
	t.status = tview.NewTextView()
	t.intersections = tview.NewTable()
	t.cars = tview.NewTable()

	help := tview.NewTextView().
		SetText("s start  space pause/resume  x stop  c add car  i add intersection  q quit")

	tables := tview.NewFlex().
		AddItem(t.intersections, 0, 1, false).
		AddItem(t.cars, 0, 1, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.status, 1, 0, false).
		AddItem(tables, 0, 1, false).
		AddItem(help, 1, 0, false)

	t.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Rune() {
		case 's':
			t.shell.StartSim()
		case ' ':
			t.shell.TogglePause()
		case 'x':
			t.shell.StopSim()
		case 'c':
			t.shell.AddCar(0, newCarSpeed)
		case 'i':
			snap := t.shell.Coord.Snapshot()
			x := newIntersectionStep
			if n := len(snap.Intersections); n > 0 {
				x = snap.Intersections[n-1].X + newIntersectionStep
			}
			t.shell.AddIntersection(x, 0, 0, 0)
		case 'q':
			t.app.Stop()
		}
		return ev
	})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(t.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.app.Stop()
				return
			case <-stop:
				return
			case <-ticker.C:
				t.app.QueueUpdateDraw(t.draw)
			}
		}
	}()

	return t.app.SetRoot(root, true).Run()
}

func (t *TUI) draw() {
	snap := t.shell.Coord.Snapshot()

	t.status.SetText(fmt.Sprintf(" %s | %s | tick %d | %s",
		t.shell.Clock.Now(), t.shell.Coord.State(), t.shell.Coord.Ticks(), snap.Units))

	drawHeader(t.intersections, "ID", "X", "Color", "Green", "Yellow", "Red")
	for n, i := range snap.Intersections {
		row := n + 1
		t.intersections.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i.ID)))
		t.intersections.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%.1f", i.X)))
		t.intersections.SetCell(row, 2, tview.NewTableCell(i.Color.String()).
			SetTextColor(colorFor(i.Color)))
		t.intersections.SetCell(row, 3, tview.NewTableCell(i.Green.String()))
		t.intersections.SetCell(row, 4, tview.NewTableCell(i.Yellow.String()))
		t.intersections.SetCell(row, 5, tview.NewTableCell(i.Red.String()))
	}
	trimRows(t.intersections, len(snap.Intersections)+1)

	drawHeader(t.cars, "ID", "X", "Speed", "Target")
	for n, c := range snap.Cars {
		row := n + 1
		t.cars.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", c.ID)))
		t.cars.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%.1f", c.X)))
		t.cars.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%.1f", c.Speed)))
		t.cars.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", c.Target)))
	}
	trimRows(t.cars, len(snap.Cars)+1)
}

func drawHeader(table *tview.Table, names ...string) {
	for n, name := range names {
		table.SetCell(0, n, tview.NewTableCell(name).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}
}

// trimRows drops stale rows left behind after an entity is removed.
func trimRows(table *tview.Table, keep int) {
	for table.GetRowCount() > keep {
		table.RemoveRow(table.GetRowCount() - 1)
	}
}

func colorFor(c world.Color) tcell.Color {
	switch c {
	case world.ColorGreen:
		return tcell.ColorGreen
	case world.ColorYellow:
		return tcell.ColorYellow
	default:
		return tcell.ColorRed
	}
}
