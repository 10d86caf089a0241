package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nkwalker/agentdb/internal/storage"
)

// NoteTools exposes the tagged-notes store.
type NoteTools struct {
	repo storage.NoteRepository
	log  *slog.Logger
}

func NewNoteTools(repo storage.NoteRepository, log *slog.Logger) *NoteTools {
	return &NoteTools{repo: repo, log: log}
}

func (t *NoteTools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Add a new note to the database."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note content")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tags")),
	), t.handleAddNote)

	s.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Retrieve a note by its ID."),
		mcp.WithNumber("note_id", mcp.Required(), mcp.Description("ID of the note to retrieve")),
	), t.handleGetNote)

	s.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search for notes by title, content, or tags."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to search for")),
	), t.handleSearchNotes)
}

func (t *NoteTools) handleAddNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := strArg(req, "title", "")
	content := strArg(req, "content", "")
	tags := strArg(req, "tags", "")
	t.log.InfoContext(ctx, "adding note", "title", title)

	id, err := t.repo.Add(ctx, title, content, tags)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error adding note: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added note with ID %d", id)), nil
}

func (t *NoteTools) handleGetNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "note_id", 0)
	t.log.InfoContext(ctx, "retrieving note", "note_id", id)

	note, err := t.repo.Get(ctx, int64(id))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("No note found with ID %d", id)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error retrieving note: %v", err)), nil
	}

	result := fmt.Sprintf("Title: %s\nContent: %s", note.Title, note.Content)
	if note.Tags != "" {
		result += fmt.Sprintf("\nTags: %s", note.Tags)
	}
	return mcp.NewToolResultText(result), nil
}

func (t *NoteTools) handleSearchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strArg(req, "query", "")
	t.log.InfoContext(ctx, "searching notes", "query", query)

	notes, err := t.repo.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error searching notes: %v", err)), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No notes found matching '%s'", query)), nil
	}

	lines := make([]string, 0, len(notes))
	for _, note := range notes {
		lines = append(lines, fmt.Sprintf("ID: %d - Title: %s", note.ID, note.Title))
	}
	return mcp.NewToolResultText("Found notes:\n" + strings.Join(lines, "\n")), nil
}
