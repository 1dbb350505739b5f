// Package canvas renders the task set as a fixed-width text box grouped by
// category. Rendering is a pure function of its inputs.
package canvas

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
)

const (
	title        = "TASK CANVAS"
	emptyMessage = "No tasks yet."
	depsTitle    = "DEPENDENCIES"
	noDeps       = "No dependencies."
	depsMarker   = "depends on"
	glyphIndent  = "   "
	idIndent     = "   "
)

var glyphs = map[models.Priority]string{
	models.PriorityHigh:   "🔴",
	models.PriorityMedium: "🟡",
	models.PriorityLow:    "🟢",
}

// Glyph returns the marker drawn in front of a task of the given priority.
func Glyph(p models.Priority) string {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return glyphs[models.DefaultPriority]
}

type box struct {
	b     strings.Builder
	inner int
}

func newBox(width int) *box {
	if width <= 0 {
		width = constants.DefaultCanvasWidth
	}
	width = max(width, constants.MinCanvasWidth)
	// "║ " + content + " ║"
	return &box{inner: width - 4}
}

func (bx *box) border(left, right string) {
	bx.b.WriteString(left + strings.Repeat("═", bx.inner+2) + right + "\n")
}

// line writes one padded row; text wider than the box is truncated.
func (bx *box) line(text string) {
	if runewidth.StringWidth(text) > bx.inner {
		text = runewidth.Truncate(text, bx.inner, "…")
	}
	bx.b.WriteString("║ " + runewidth.FillRight(text, bx.inner) + " ║\n")
}

// wrapped writes text word-wrapped to the box, prefixing continuation rows.
// Words wider than a row are broken across rows.
func (bx *box) wrapped(first, rest, text string) {
	avail := bx.inner - runewidth.StringWidth(first)
	for i, row := range strings.Split(wrap.String(wordwrap.String(text, avail), avail), "\n") {
		if i == 0 {
			bx.line(first + row)
			continue
		}
		bx.line(rest + row)
	}
}

// groups buckets tasks by category, keeping categories in first-seen order.
func groups(tasks []models.Task) ([]string, map[string][]models.Task) {
	var order []string
	byCat := make(map[string][]models.Task)
	for _, t := range tasks {
		cat := t.Category
		if cat == "" {
			cat = models.DefaultCategory
		}
		if _, ok := byCat[cat]; !ok {
			order = append(order, cat)
		}
		byCat[cat] = append(byCat[cat], t)
	}
	return order, byCat
}

func taskLine(t models.Task) string {
	text := t.Content
	if t.Due != nil {
		text += " (due " + t.Due.Format(constants.DateFormat) + ")"
	}
	if t.Status == models.StatusDone {
		text += " [done]"
	}
	return text
}

// Render draws tasks inside a box width columns wide. A non-positive width uses
// the default; narrower widths are raised to the minimum.
func Render(tasks []models.Task, width int) string {
	bx := newBox(width)
	bx.border("╔", "╗")
	bx.line(title)
	bx.border("╠", "╣")

	if len(tasks) == 0 {
		bx.line(emptyMessage)
		bx.border("╚", "╝")
		return bx.b.String()
	}

	separator := strings.Repeat("─", bx.inner)
	order, byCat := groups(tasks)
	for gi, cat := range order {
		if gi > 0 {
			bx.line("")
		}
		members := byCat[cat]
		bx.line(fmt.Sprintf("%s (%d)", strings.ToUpper(cat), len(members)))
		for _, t := range members {
			bx.wrapped(Glyph(t.Priority)+" ", glyphIndent, taskLine(t))
			bx.line(idIndent + "ID: " + t.ID)
			bx.line(separator)
		}
	}
	bx.border("╚", "╝")
	return bx.b.String()
}

// dependencies returns the dependency fragments of a task's context.
func dependencies(t models.Task) []string {
	var out []string
	for _, part := range strings.Split(t.Context, ";") {
		part = strings.TrimSpace(part)
		if strings.Contains(strings.ToLower(part), depsMarker) {
			out = append(out, part)
		}
	}
	return out
}

// RenderAdvanced draws the canvas followed by a listing of every task whose
// context records a dependency.
func RenderAdvanced(tasks []models.Task, width int) string {
	var b strings.Builder
	b.WriteString(Render(tasks, width))
	b.WriteString("\n" + depsTitle + "\n")

	found := false
	for _, t := range tasks {
		for _, dep := range dependencies(t) {
			found = true
			fmt.Fprintf(&b, "- %s [%s]: %s\n", t.Content, t.ID, dep)
		}
	}
	if !found {
		b.WriteString(noDeps + "\n")
	}
	return b.String()
}
