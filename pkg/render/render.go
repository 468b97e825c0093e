// Package render turns seat grids into presentable output: an HTML table
// fragment for the preview server and a plain-text grid for the terminal.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/examdesk/seatmap/pkg/core/allocator"
)

// GridCSS styles the seat-map table. Pages embedding RoomTable output should
// include it once.
const GridCSS = `
.grid-map {
	border-collapse: collapse;
	margin: 20px auto;
	font-family: Arial, sans-serif;
	max-width: 1260px;
}
.grid-map td {
	width: 120px;
	height: 100px;
	border: 1px solid #333;
	text-align: center;
	vertical-align: middle;
	padding: 5px;
}
.seat {
	display: flex;
	flex-direction: column;
	justify-content: center;
	align-items: center;
	height: 100%;
	font-size: 12px;
	overflow: hidden;
}
.seat small {
	font-size: 9px;
	color: #666;
}
`

var roomTableTmpl = template.Must(template.New("roomTable").Parse(`<table class="grid-map">
{{- range .}}
<tr>
{{- range .}}
{{- if .}}<td><div class="seat"><strong>{{.Name}}</strong><br><small>{{.Class}}</small></div></td>
{{- else}}<td></td>
{{- end}}
{{- end}}
</tr>
{{- end}}
</table>`))

// RoomTable renders one room's grid as an HTML table, front row first.
// Empty cells (blocked seats and exhaustion gaps) render as empty <td>s.
func RoomTable(grid allocator.Grid) (template.HTML, error) {
	var sb strings.Builder
	if err := roomTableTmpl.Execute(&sb, grid); err != nil {
		return "", fmt.Errorf("failed to render room table: %w", err)
	}
	return template.HTML(sb.String()), nil
}

// RoomText renders one room's grid as a plain-text table for terminal
// output. Empty seats show as a dash.
func RoomText(grid allocator.Grid) string {
	if len(grid) == 0 {
		return ""
	}

	cells := make([][]string, len(grid))
	widths := make([]int, len(grid[0]))
	for r, row := range grid {
		cells[r] = make([]string, len(row))
		for c, cell := range row {
			text := "-"
			if cell != nil {
				text = fmt.Sprintf("%s (%s)", cell.Name, cell.Class)
			}
			cells[r][c] = text
			if len(text) > widths[c] {
				widths[c] = len(text)
			}
		}
	}

	var sb strings.Builder
	for _, row := range cells {
		for c, text := range row {
			if c > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(fmt.Sprintf("%-*s", widths[c], text))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
