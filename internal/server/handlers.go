package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/render/svg"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/render/vgdraw"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/source/influx"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/stats/describe"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

func (s *Server) limitBody(c *gin.Context) {
	if s.cfg.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	}
}

func (s *Server) handleMatrix(c *gin.Context) {
	s.limitBody(c)

	var req MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	s.render(c, req.Data, req.Options.Merge(s.matrix), req.Format)
}

func (s *Server) handleStats(c *gin.Context) {
	s.limitBody(c)

	var req MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg := req.Options.Merge(s.matrix)
	pairs, err := splom.Analyze(req.Data, cfg)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid dataset", err)
		return
	}

	resp := StatsResponse{Pairs: make([]PairResponse, 0, len(pairs))}
	for i, name := range req.Data.Names {
		col, err := req.Data.Column(i)
		if err != nil {
			s.fail(c, http.StatusBadRequest, "Invalid dataset", err)
			return
		}
		resp.Variables = append(resp.Variables, variableStats(name, req.Data.Path(i), describe.Calculate(col)))
	}
	for _, p := range pairs {
		if p.FilterSkipped != nil {
			s.metrics.outlierFallbacks.Inc()
		}
		resp.Pairs = append(resp.Pairs, pairResponse(p))
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleInflux(c *gin.Context) {
	if s.source == nil {
		s.fail(c, http.StatusServiceUnavailable, "InfluxDB is not configured", nil)
		return
	}

	var q InfluxQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid query", err)
		return
	}

	req, err := s.influxRequest(q)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Invalid query", err)
		return
	}

	ds, err := s.source.Load(c.Request.Context(), req)
	switch {
	case errors.Is(err, influx.ErrNoFields), errors.Is(err, influx.ErrIdentifier),
		errors.Is(err, influx.ErrRange), errors.Is(err, influx.ErrNames):
		s.fail(c, http.StatusBadRequest, "Invalid query", err)
		return
	case err != nil:
		s.fail(c, http.StatusBadGateway, "Failed to load series", err)
		return
	}
	s.metrics.sourceRows.Observe(float64(ds.Len()))

	s.render(c, ds, q.Overrides().Merge(s.matrix), q.Format)
}

func (s *Server) influxRequest(q InfluxQuery) (influx.Request, error) {
	req := influx.Request{
		Fields: splitList(q.Fields),
		Names:  splitList(q.Names),
		Points: q.Points,
	}
	if req.Points <= 0 {
		req.Points = s.points
	}

	start, err := time.Parse(time.RFC3339, q.Start)
	if err != nil {
		return influx.Request{}, err
	}
	req.Start = start

	req.Stop = time.Now()
	if q.Stop != "" {
		if req.Stop, err = time.Parse(time.RFC3339, q.Stop); err != nil {
			return influx.Request{}, err
		}
	}
	return req, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *Server) render(c *gin.Context, ds dataset.Dataset, cfg splom.Config, format string) {
	if format == "" {
		format = string(vgdraw.SVG)
	}
	f, err := vgdraw.ParseFormat(format)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Unsupported format", err)
		return
	}

	start := time.Now()
	m, err := splom.Build(ds, cfg)
	if err != nil {
		s.metrics.renders.WithLabelValues(string(f), "invalid").Inc()
		s.fail(c, http.StatusBadRequest, "Invalid dataset", err)
		return
	}

	for _, cell := range m.Cells {
		if cell.FilterSkipped() != nil {
			s.metrics.outlierFallbacks.Inc()
		}
	}

	var buf bytes.Buffer
	if f == vgdraw.SVG {
		err = svg.Render(&buf, m, svg.WithXMLHeader())
	} else {
		err = vgdraw.Write(&buf, m, f)
	}
	if err != nil {
		s.metrics.renders.WithLabelValues(string(f), "error").Inc()
		s.fail(c, http.StatusInternalServerError, "Failed to render", err)
		return
	}

	s.metrics.renders.WithLabelValues(string(f), "ok").Inc()
	s.metrics.renderDuration.Observe(time.Since(start).Seconds())
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (s *Server) fail(c *gin.Context, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}

	logger := s.logger.With("request_id", c.GetString(requestIDHeader), "path", c.FullPath())
	if status >= http.StatusInternalServerError {
		logger.Error(msg, "error", err)
	} else {
		logger.Warn(msg, "error", err)
	}
	c.JSON(status, resp)
}
