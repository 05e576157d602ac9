// Package render formats layouts and item lists for CLI output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/pcranston/gridshift/internal/domain"
)

// Format represents an output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Renderer handles output rendering
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer creates a new renderer
func NewRenderer(writer io.Writer, format Format) *Renderer {
	return &Renderer{writer: writer, format: format}
}

// RenderItems renders an item list in the configured format.
func (r *Renderer) RenderItems(items []*domain.Item) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(itemRows(items))
	case FormatYAML:
		enc := yaml.NewEncoder(r.writer)
		defer enc.Close()
		return enc.Encode(itemRows(items))
	default:
		return r.renderTable(items)
	}
}

type itemRow struct {
	ID        int64  `json:"id" yaml:"id"`
	Kind      string `json:"kind" yaml:"kind"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Container string `json:"container" yaml:"container"`
	Screen    int    `json:"screen" yaml:"screen"`
	CellX     int    `json:"cellx" yaml:"cellx"`
	CellY     int    `json:"celly" yaml:"celly"`
	SpanX     int    `json:"spanx" yaml:"spanx"`
	SpanY     int    `json:"spany" yaml:"spany"`
}

func itemRows(items []*domain.Item) []itemRow {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{
			ID:        it.ID,
			Kind:      string(it.Kind),
			Title:     it.Title,
			Container: containerName(it.Container),
			Screen:    it.Screen,
			CellX:     it.CellX,
			CellY:     it.CellY,
			SpanX:     it.SpanX,
			SpanY:     it.SpanY,
		})
	}
	return rows
}

func containerName(c int64) string {
	switch c {
	case domain.ContainerDesktop:
		return "desktop"
	case domain.ContainerHotseat:
		return "hotseat"
	default:
		return fmt.Sprintf("folder:%d", c)
	}
}

func (r *Renderer) renderTable(items []*domain.Item) error {
	tw := tabwriter.NewWriter(r.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTITLE\tCONTAINER\tSCREEN\tCELL\tSPAN")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d,%d\t%dx%d\n",
			it.ID, it.Kind, it.Title, containerName(it.Container),
			it.Screen, it.CellX, it.CellY, it.SpanX, it.SpanY)
	}
	return tw.Flush()
}

// GridText renders the workspace screens and hotseat of a layout as a text
// grid. Each placed item is labeled with a letter covering its rectangle;
// vacant cells are dots. Deterministic for a given item list.
func GridText(items []*domain.Item, desc domain.Descriptor) string {
	var workspace, hotseat []*domain.Item
	for _, it := range items {
		switch it.Container {
		case domain.ContainerDesktop:
			workspace = append(workspace, it)
		case domain.ContainerHotseat:
			hotseat = append(hotseat, it)
		}
	}
	sort.SliceStable(workspace, func(i, j int) bool {
		return domain.ReadingOrderLess(workspace[i], workspace[j])
	})
	sort.SliceStable(hotseat, func(i, j int) bool {
		return hotseat[i].Screen < hotseat[j].Screen
	})

	var b strings.Builder
	legend := make([]string, 0, len(workspace)+len(hotseat))
	next := 0

	lastScreen := -1
	for _, it := range workspace {
		if it.Screen > lastScreen {
			lastScreen = it.Screen
		}
	}

	for screen := 0; screen <= lastScreen; screen++ {
		cells := make([][]rune, desc.Rows)
		for y := range cells {
			cells[y] = []rune(strings.Repeat(".", desc.Columns))
		}
		for _, it := range workspace {
			if it.Screen != screen {
				continue
			}
			label := labelRune(next)
			next++
			legend = append(legend, fmt.Sprintf("%c  %s (%s)", label, it.Title, it.Kind))
			for y := it.CellY; y < it.CellY+it.SpanY && y < desc.Rows; y++ {
				for x := it.CellX; x < it.CellX+it.SpanX && x < desc.Columns; x++ {
					if y >= 0 && x >= 0 {
						cells[y][x] = label
					}
				}
			}
		}
		fmt.Fprintf(&b, "screen %d\n", screen)
		for _, row := range cells {
			b.WriteString("  ")
			b.WriteString(string(row))
			b.WriteByte('\n')
		}
	}

	slots := []rune(strings.Repeat(".", desc.HotseatCount))
	for _, it := range hotseat {
		if it.Screen < 0 || it.Screen >= desc.HotseatCount {
			continue
		}
		label := labelRune(next)
		next++
		legend = append(legend, fmt.Sprintf("%c  %s (%s)", label, it.Title, it.Kind))
		slots[it.Screen] = label
	}
	b.WriteString("hotseat\n  ")
	b.WriteString(string(slots))
	b.WriteByte('\n')

	if len(legend) > 0 {
		b.WriteByte('\n')
		for _, line := range legend {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

const labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func labelRune(i int) rune {
	return rune(labels[i%len(labels)])
}
