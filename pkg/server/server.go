// Package server exposes a generated seat map over HTTP for previewing and
// printing: an index of rooms, one page per room grid, the flat roster and
// an xlsx download. Allocation happens before the server starts; pages are
// read-only views of a finished run, so reloading never reshuffles anyone.
package server

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/examdesk/seatmap/pkg/core/services"
	"github.com/examdesk/seatmap/pkg/render"
	"github.com/examdesk/seatmap/pkg/workbook"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Server serves one allocation result.
type Server struct {
	e      *echo.Echo
	result *services.GenerateMapsResult
	logger *zap.Logger
}

// New builds a preview server for the given allocation result.
func New(result *services.GenerateMapsResult, logger *zap.Logger) *Server {
	s := &Server{
		e:      echo.New(),
		result: result,
		logger: logger,
	}
	s.e.HideBanner = true

	s.e.GET("/", s.index)
	s.e.GET("/rooms/:name", s.roomMap)
	s.e.GET("/roster", s.roster)
	s.e.GET("/roster.xlsx", s.rosterDownload)

	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("Seat map preview listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

type roomSummary struct {
	Name     string
	Rows     int
	Columns  int
	Capacity int
	Seated   int
}

type indexData struct {
	ExamDate       string
	Rooms          []roomSummary
	LeftoverGroup1 int
	LeftoverGroup2 int
	HasLeftovers   bool
}

// index lists the rooms with capacities and surfaces leftover counts.
func (s *Server) index(c echo.Context) error {
	data := indexData{
		ExamDate:       s.result.ExamDate.Format("02/01/2006"),
		LeftoverGroup1: s.result.Allocation.LeftoverGroup1,
		LeftoverGroup2: s.result.Allocation.LeftoverGroup2,
		HasLeftovers:   s.result.Allocation.HasLeftovers(),
	}
	for _, room := range s.result.Rooms {
		data.Rooms = append(data.Rooms, roomSummary{
			Name:     room.Name,
			Rows:     room.Rows,
			Columns:  room.Columns,
			Capacity: room.Capacity(),
			Seated:   s.result.Allocation.Grids[room.Name].FilledSeats(),
		})
	}
	return s.renderPage(c, indexTmpl, data)
}

type roomPageData struct {
	Name     string
	ExamDate string
	Table    template.HTML
}

// roomMap renders one room's seat grid.
func (s *Server) roomMap(c echo.Context) error {
	name := c.Param("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	grid, ok := s.result.Allocation.Grids[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no room named %q", name))
	}

	table, err := render.RoomTable(grid)
	if err != nil {
		return fmt.Errorf("failed to render room %q: %w", name, err)
	}

	return s.renderPage(c, roomTmpl, roomPageData{
		Name:     name,
		ExamDate: s.result.ExamDate.Format("02/01/2006"),
		Table:    table,
	})
}

// roster renders the flat global roster as an HTML table.
func (s *Server) roster(c echo.Context) error {
	return s.renderPage(c, rosterTmpl, s.result.Roster)
}

// rosterDownload serves the global roster as an xlsx attachment.
func (s *Server) rosterDownload(c echo.Context) error {
	data, err := workbook.RosterBytes(s.result.Roster)
	if err != nil {
		return fmt.Errorf("failed to build roster download: %w", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="roster_global.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, data)
}

func (s *Server) renderPage(c echo.Context, tmpl *template.Template, data any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return tmpl.Execute(c.Response(), data)
}
