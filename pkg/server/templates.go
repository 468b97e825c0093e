package server

import (
	"html/template"

	"github.com/examdesk/seatmap/pkg/render"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Seat maps</title></head>
<body>
<h1>Seat maps - {{.ExamDate}}</h1>
{{if .HasLeftovers}}
<p><strong>Warning:</strong> {{.LeftoverGroup1}} group 1 and {{.LeftoverGroup2}} group 2 students could not be seated.</p>
{{end}}
<ul>
{{range .Rooms}}
<li><a href="/rooms/{{.Name}}">{{.Name}}</a> - {{.Rows}}x{{.Columns}}, {{.Seated}}/{{.Capacity}} seats filled</li>
{{end}}
</ul>
<p><a href="/roster">Global roster</a> | <a href="/roster.xlsx">Download roster (xlsx)</a></p>
</body>
</html>`))

var roomTmpl = template.Must(template.New("room").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Name}} - {{.ExamDate}}</title>
<style>` + render.GridCSS + `</style>
</head>
<body>
<h2>{{.Name}} - {{.ExamDate}}</h2>
{{.Table}}
<p><a href="/">Back to rooms</a></p>
</body>
</html>`))

var rosterTmpl = template.Must(template.New("roster").Parse(`<!DOCTYPE html>
<html>
<head><title>Global roster</title></head>
<body>
<h1>Global roster</h1>
<table border="1" cellpadding="4">
<tr><th>class</th><th>name</th><th>student_id</th><th>seat_number</th><th>room</th><th>row</th><th>column</th><th>exam_date</th></tr>
{{range .}}
<tr><td>{{.Class}}</td><td>{{.Name}}</td><td>{{.StudentID}}</td><td>{{.SeatNumber}}</td><td>{{.Room}}</td><td>{{.RowNumber}}</td><td>{{.ColumnNumber}}</td><td>{{.ExamDate}}</td></tr>
{{end}}
</table>
<p><a href="/">Back to rooms</a></p>
</body>
</html>`))
