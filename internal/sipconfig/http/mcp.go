package http

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/errors"
	"github.com/sjzar/sipconfig/internal/render"
	"github.com/sjzar/sipconfig/internal/sip"
	"github.com/sjzar/sipconfig/pkg/version"
)

func (s *Service) initMCPServer() {
	s.mcpServer = server.NewMCPServer(version.Name, version.Version)
	s.mcpServer.AddTool(QuerySIPConfigTool, s.handleMCPQuerySIPConfig)
	s.mcpServer.AddTool(ListSIPFlagsTool, s.handleMCPListSIPFlags)
	s.mcpSSEServer = server.NewSSEServer(s.mcpServer)
	s.mcpStreamableServer = server.NewStreamableHTTPServer(s.mcpServer)
}

var QuerySIPConfigTool = mcp.NewTool(
	"query_sip_config",
	mcp.WithDescription(`Report the System Integrity Protection configuration of this Mac. Returns one row per protection with its live state (enabled) and the state stored in NVRAM for the next boot (enabled_nvram). A column missing from a row means the value is unknown. The "sip" row summarizes the whole configuration.`),
	mcp.WithString("flag", mcp.Description("Only return the row for this config_flag, e.g. allow_untrusted_kexts or sip.")),
)

var ListSIPFlagsTool = mcp.NewTool(
	"list_sip_flags",
	mcp.WithDescription(`List the SIP protections this host knows about, with their bit masks and csr.h constant names.`),
)

type QuerySIPConfigRequest struct {
	Flag string `json:"flag"`
}

func (s *Service) handleMCPQuerySIPConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {

	var req QuerySIPConfigRequest
	if err := request.BindArguments(&req); err != nil {
		log.Error().Err(err).Interface("request", request.GetRawArguments()).Msg("Failed to bind arguments")
		return errors.ErrMCPTool(err), nil
	}

	rep := s.eval.Evaluate(ctx)
	buf := &bytes.Buffer{}
	if len(rep.Rows) == 0 {
		fmt.Fprintf(buf, "No SIP configuration available: %s\n", rep.Reason)
		return mcp.NewToolResultText(buf.String()), nil
	}

	rows := rep.Rows
	if req.Flag != "" {
		rows = nil
		for _, r := range rep.Rows {
			if r.ConfigFlag == req.Flag {
				rows = append(rows, r)
			}
		}
		if len(rows) == 0 {
			return errors.ErrMCPTool(errors.NotFound("config_flag "+req.Flag, nil)), nil
		}
	}

	if err := render.Rows(buf, render.CSV, rows); err != nil {
		return errors.ErrMCPTool(err), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Service) handleMCPListSIPFlags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buf := &bytes.Buffer{}
	if err := render.Flags(buf, render.CSV, sip.Flags()); err != nil {
		return errors.ErrMCPTool(err), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
