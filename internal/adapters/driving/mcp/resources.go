package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for resume resources.
	uriScheme = "resume://"

	mimeJSON     = "application/json"
	mimeMarkdown = "text/markdown"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document",
		Name:        "resume",
		Description: "The assembled resume as JSON",
		MIMEType:    mimeJSON,
	}, s.handleDocumentResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document.md",
		Name:        "resume-markdown",
		Description: "The assembled resume rendered as Markdown",
		MIMEType:    mimeMarkdown,
	}, s.handleMarkdownResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{section}",
		Name:        "resume-section",
		Description: "Entries of one resume section (experience, project, education, skills, achievements)",
		MIMEType:    mimeJSON,
	}, s.handleSectionResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{section}/last",
		Name:        "section-last-result",
		Description: "The most recently submitted chat result for a section",
		MIMEType:    mimeJSON,
	}, s.handleLastResultResource)
}

func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var buf strings.Builder
	if err := s.ports.Resume.Export(ctx, &buf, domain.FormatJSON); err != nil {
		return nil, fmt.Errorf("exporting resume: %w", err)
	}
	return textResult(req.Params.URI, mimeJSON, buf.String()), nil
}

func (s *Server) handleMarkdownResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var buf strings.Builder
	if err := s.ports.Resume.Export(ctx, &buf, domain.FormatMarkdown); err != nil {
		return nil, fmt.Errorf("exporting resume: %w", err)
	}
	return textResult(req.Params.URI, mimeMarkdown, buf.String()), nil
}

// handleSectionResource returns the entries of one section.
func (s *Server) handleSectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, ok := extractSection(req.Params.URI, "")
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Resume.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading resume: %w", err)
	}

	var entries any
	switch kind {
	case domain.SectionExperience:
		entries = doc.Experience
	case domain.SectionProject:
		entries = doc.Projects
	case domain.SectionEducation:
		entries = doc.Education
	case domain.SectionSkills:
		entries = doc.Skills
	case domain.SectionAchievements:
		entries = doc.Achievements
	}

	return jsonResult(req.Params.URI, entries)
}

// handleLastResultResource returns the last submitted result of a section.
func (s *Server) handleLastResultResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Session == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	kind, ok := extractSection(req.Params.URI, "/last")
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Session.LastResult(ctx, kind)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading last result: %w", err)
	}

	return jsonResult(req.Params.URI, struct {
		Section string              `json:"section"`
		ChatID  string              `json:"chat_id"`
		Entry   domain.SectionEntry `json:"entry"`
	}{result.Section.String(), result.ChatID, result.Entry})
}

// extractSection parses resume://sections/{section}{suffix}.
func extractSection(uri, suffix string) (domain.SectionKind, bool) {
	const prefix = uriScheme + "sections/"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}

	kind, err := domain.ParseSection(name)
	if err != nil {
		return "", false
	}
	return kind, true
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return textResult(uri, mimeJSON, string(data)), nil
}

func textResult(uri, mime, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mime,
			Text:     text,
		}},
	}
}
