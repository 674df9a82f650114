package http

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/render"
	"github.com/sjzar/sipconfig/internal/sip"
)

func (s *Service) initRouter() {
	s.router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	{
		api.GET("/sip_config", s.handleSIPConfig)
		api.GET("/sip_config/:flag", s.handleSIPConfigFlag)
		api.GET("/report", s.handleReport)
		api.GET("/flags", s.handleFlags)
	}

	s.router.Any("/mcp", func(c *gin.Context) {
		s.mcpStreamableServer.ServeHTTP(c.Writer, c.Request)
	})
	s.router.Any("/sse", func(c *gin.Context) {
		s.mcpSSEServer.ServeHTTP(c.Writer, c.Request)
	})
	s.router.Any("/message", func(c *gin.Context) {
		s.mcpSSEServer.ServeHTTP(c.Writer, c.Request)
	})

	s.router.NoRoute(s.NoRoute)
}

func (s *Service) NoRoute(c *gin.Context) {
	errors.Err(c, errors.NotFound(c.Request.URL.Path, nil))
}

type formatQuery struct {
	Format string `form:"format"`
}

// bindFormat reads ?format=, defaulting to JSON over HTTP.
func bindFormat(c *gin.Context) (render.Format, bool) {
	var q formatQuery
	if err := c.BindQuery(&q); err != nil {
		errors.Err(c, errors.InvalidArg("format"))
		return "", false
	}
	if strings.TrimSpace(q.Format) == "" {
		return render.JSON, true
	}
	f, err := render.ParseFormat(q.Format)
	if err != nil {
		errors.Err(c, err)
		return "", false
	}
	return f, true
}

func write(c *gin.Context, f render.Format, fn func(buf *bytes.Buffer) error) {
	buf := &bytes.Buffer{}
	if err := fn(buf); err != nil {
		errors.Err(c, errors.Internal("render response", err))
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (s *Service) handleSIPConfig(c *gin.Context) {
	f, ok := bindFormat(c)
	if !ok {
		return
	}
	rows := s.eval.Evaluate(c.Request.Context()).Rows
	write(c, f, func(buf *bytes.Buffer) error {
		return render.Rows(buf, f, rows)
	})
}

func (s *Service) handleSIPConfigFlag(c *gin.Context) {
	name := c.Param("flag")
	if _, ok := sip.LookupFlag(name); !ok && name != sip.AggregateFlag {
		errors.Err(c, errors.NotFound("flag "+name, nil))
		return
	}

	rep := s.eval.Evaluate(c.Request.Context())
	for _, row := range rep.Rows {
		if row.ConfigFlag == name {
			c.JSON(http.StatusOK, row)
			return
		}
	}

	var cause error
	if rep.Reason != "" {
		cause = errors.New(errors.ErrTypePlatformUnsupported, rep.Reason, nil, http.StatusNotImplemented)
	}
	errors.Err(c, errors.NotFound("sip_config row "+name, cause))
}

func (s *Service) handleReport(c *gin.Context) {
	f, ok := bindFormat(c)
	if !ok {
		return
	}
	rep := s.eval.Evaluate(c.Request.Context())
	write(c, f, func(buf *bytes.Buffer) error {
		return render.Report(buf, f, rep)
	})
}

func (s *Service) handleFlags(c *gin.Context) {
	f, ok := bindFormat(c)
	if !ok {
		return
	}
	write(c, f, func(buf *bytes.Buffer) error {
		return render.Flags(buf, f, sip.Flags())
	})
}
