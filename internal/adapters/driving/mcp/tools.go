package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// GetResumeInput is the input schema for the get_resume tool.
type GetResumeInput struct {
	Format string `json:"format,omitempty" jsonschema:"output format: markdown, json or yaml (default markdown)"`
}

// GetResumeOutput is the output schema for the get_resume tool.
type GetResumeOutput struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

// SectionCount is the number of entries in one section.
type SectionCount struct {
	Section string `json:"section"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
}

// ListSectionsOutput is the output schema for the list_sections tool.
type ListSectionsOutput struct {
	Name     string         `json:"name"`
	Sections []SectionCount `json:"sections"`
}

// SetPersonalInfoInput is the input schema for the set_personal_info tool.
// Omitted fields keep their current value.
type SetPersonalInfoInput struct {
	Name     string `json:"name,omitempty" jsonschema:"full name shown in the resume header"`
	Email    string `json:"email,omitempty" jsonschema:"contact email"`
	Phone    string `json:"phone,omitempty" jsonschema:"contact phone number"`
	Location string `json:"location,omitempty" jsonschema:"city or region"`
	LinkedIn string `json:"linkedin,omitempty" jsonschema:"LinkedIn profile URL"`
	GitHub   string `json:"github,omitempty" jsonschema:"GitHub profile URL"`
	Website  string `json:"website,omitempty" jsonschema:"personal website URL"`
}

// SetPersonalInfoOutput is the output schema for the set_personal_info tool.
type SetPersonalInfoOutput struct {
	PersonalInfo domain.PersonalInfo `json:"personal_info"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_resume",
		Description: "Render the assembled resume as markdown, json or yaml",
	}, s.handleGetResume)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List resume sections with their entry counts",
	}, s.handleListSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_personal_info",
		Description: "Update the contact details in the resume header",
	}, s.handleSetPersonalInfo)
}

func (s *Server) handleGetResume(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetResumeInput,
) (*mcp.CallToolResult, GetResumeOutput, error) {
	format := domain.FormatMarkdown
	if input.Format != "" {
		f, err := domain.ParseExportFormat(input.Format)
		if err != nil {
			return nil, GetResumeOutput{}, err
		}
		format = f
	}

	var buf strings.Builder
	if err := s.ports.Resume.Export(ctx, &buf, format); err != nil {
		return nil, GetResumeOutput{}, err
	}

	return nil, GetResumeOutput{Format: format.String(), Content: buf.String()}, nil
}

func (s *Server) handleListSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	doc, err := s.ports.Resume.Get(ctx)
	if err != nil {
		return nil, ListSectionsOutput{}, fmt.Errorf("loading resume: %w", err)
	}

	sections := domain.AllSections()
	output := ListSectionsOutput{
		Name:     s.ports.Resume.DisplayName(ctx),
		Sections: make([]SectionCount, len(sections)),
	}
	for i, kind := range sections {
		output.Sections[i] = SectionCount{
			Section: kind.String(),
			Title:   kind.Heading(),
			Count:   doc.Len(kind),
		}
	}
	return nil, output, nil
}

func (s *Server) handleSetPersonalInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetPersonalInfoInput,
) (*mcp.CallToolResult, SetPersonalInfoOutput, error) {
	doc, err := s.ports.Resume.Get(ctx)
	if err != nil {
		return nil, SetPersonalInfoOutput{}, fmt.Errorf("loading resume: %w", err)
	}

	info := doc.PersonalInfo
	merge(&info.Name, input.Name)
	merge(&info.Email, input.Email)
	merge(&info.Phone, input.Phone)
	merge(&info.Location, input.Location)
	merge(&info.LinkedIn, input.LinkedIn)
	merge(&info.GitHub, input.GitHub)
	merge(&info.Website, input.Website)

	if err := s.ports.Resume.SetPersonalInfo(ctx, info); err != nil {
		return nil, SetPersonalInfoOutput{}, err
	}
	return nil, SetPersonalInfoOutput{PersonalInfo: info}, nil
}

func merge(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}
