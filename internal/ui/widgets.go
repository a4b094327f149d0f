package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// cellStyle selects how a calendarCell is highlighted.
type cellStyle int

const (
	cellNormal cellStyle = iota
	cellMuted            // padding day of another month
	cellToday
	cellSelected
)

// barSize is the size of one event bar.
type barSize struct{ w, h float32 }

var (
	monthBar = barSize{config.BarWidthMonth, config.BarHeightMonth}
	weekBar  = barSize{config.BarWidthWeek, config.BarHeightWeek}
	yearBar  = barSize{config.BarWidthYear, config.BarHeightMonth}
)

// calendarCell is a tappable box with a caption and up to config.MaxEventBars
// colored bars. Day cells, week boxes and year tiles all use it.
type calendarCell struct {
	widget.BaseWidget

	Caption string
	Colors  []engine.Color
	Style   cellStyle
	Bar     barSize
	OnTap   func()
}

func newCalendarCell(caption string, colors []engine.Color, style cellStyle, bar barSize, onTap func()) *calendarCell {
	c := &calendarCell{Caption: caption, Colors: colors, Style: style, Bar: bar, OnTap: onTap}
	c.ExtendBaseWidget(c)
	return c
}

// Tapped implements fyne.Tappable.
func (c *calendarCell) Tapped(*fyne.PointEvent) {
	if c.OnTap != nil {
		c.OnTap()
	}
}

// CreateRenderer builds the cell once; views rebuild cells instead of refreshing them.
func (c *calendarCell) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Transparent)
	bg.CornerRadius = theme.InputRadiusSize()
	bg.SetMinSize(fyne.NewSize(config.MinCellSize, config.MinCellSize))

	text := canvas.NewText(c.Caption, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	// Selection wins over today; views resolve that before building the cell.
	switch c.Style {
	case cellMuted:
		text.Color = theme.Color(theme.ColorNameDisabled)
	case cellToday:
		bg.StrokeColor = theme.Color(theme.ColorNamePrimary)
		bg.StrokeWidth = 2
		text.TextStyle.Bold = true
	case cellSelected:
		bg.FillColor = theme.Color(theme.ColorNameSelection)
		text.TextStyle.Bold = true
	}

	content := container.NewVBox(
		text,
		container.NewCenter(eventBars(c.Colors, c.Bar)),
		layout.NewSpacer(),
	)
	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewPadded(content)))
}

// eventBars renders at most config.MaxEventBars bars, one per event color.
func eventBars(colors []engine.Color, size barSize) fyne.CanvasObject {
	n := min(len(colors), config.MaxEventBars)
	bars := make([]fyne.CanvasObject, 0, n)
	for _, c := range colors[:n] {
		r := canvas.NewRectangle(c.NRGBA())
		r.CornerRadius = size.h / 2
		r.SetMinSize(fyne.NewSize(size.w, size.h))
		bars = append(bars, r)
	}
	return container.NewHBox(bars...)
}

// eventColors extracts the bar colors of a day list.
func eventColors(events []engine.Event) []engine.Color {
	out := make([]engine.Color, len(events))
	for i, ev := range events {
		out[i] = ev.Color
	}
	return out
}

// colorSwatch is a tappable square of one color, outlined when selected.
type colorSwatch struct {
	widget.BaseWidget

	Color    engine.Color
	Selected bool
	OnTap    func(engine.Color)
}

func newColorSwatch(c engine.Color, onTap func(engine.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTap: onTap}
	s.ExtendBaseWidget(s)
	return s
}

// SetSelected toggles the outline.
func (s *colorSwatch) SetSelected(selected bool) {
	if s.Selected == selected {
		return
	}
	s.Selected = selected
	s.Refresh()
}

// Tapped implements fyne.Tappable.
func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.OnTap != nil {
		s.OnTap(s.Color)
	}
}

// CreateRenderer uses a custom renderer so SetSelected only restyles the outline.
func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	r := &swatchRenderer{swatch: s, rect: canvas.NewRectangle(s.Color.NRGBA())}
	r.rect.CornerRadius = theme.InputRadiusSize()
	r.Refresh()
	return r
}

// swatchRenderer draws a colorSwatch as a single rounded rectangle.
type swatchRenderer struct {
	swatch *colorSwatch
	rect   *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) { r.rect.Resize(size) }

func (r *swatchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(config.SwatchSize, config.SwatchSize)
}

func (r *swatchRenderer) Refresh() {
	r.rect.FillColor = r.swatch.Color.NRGBA()
	if r.swatch.Selected {
		r.rect.StrokeColor = theme.Color(theme.ColorNameForeground)
		r.rect.StrokeWidth = 3
	} else {
		r.rect.StrokeWidth = 0
	}
	r.rect.Refresh()
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.rect} }

func (r *swatchRenderer) Destroy() {}
