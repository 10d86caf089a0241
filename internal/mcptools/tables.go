package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nkwalker/agentdb/internal/app"
)

// TableTools exposes the generic table operations: lifecycle, CRUD, and
// querying against caller-defined tables.
type TableTools struct {
	svc *app.TableService
	log *slog.Logger
}

func NewTableTools(svc *app.TableService, log *slog.Logger) *TableTools {
	return &TableTools{svc: svc, log: log}
}

func (t *TableTools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("create_table",
		mcp.WithDescription("Create a new table in the database with the specified schema. "+
			"The schema should be a string describing the columns and their types. "+
			"Example: \"id INTEGER PRIMARY KEY, name TEXT, age INTEGER, email TEXT UNIQUE\""),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table to create")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Comma-separated column definitions")),
	), t.handleCreateTable)

	s.AddTool(mcp.NewTool("list_tables",
		mcp.WithDescription("List all tables in the database."),
	), t.handleListTables)

	s.AddTool(mcp.NewTool("describe_table",
		mcp.WithDescription("Get the schema of a specific table."),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table to describe")),
	), t.handleDescribeTable)

	s.AddTool(mcp.NewTool("insert_record",
		mcp.WithDescription("Insert a record into a table. "+
			"Example: insert_record(\"users\", \"name,age\", \"'John Doe',30\")"),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table")),
		mcp.WithString("fields", mcp.Required(), mcp.Description("Comma-separated list of column names")),
		mcp.WithString("values", mcp.Required(), mcp.Description("Comma-separated list of values (surround string values with quotes)")),
	), t.handleInsertRecord)

	s.AddTool(mcp.NewTool("update_record",
		mcp.WithDescription("Update records in a table. "+
			"Example: update_record(\"users\", \"age=31, status='active'\", \"name='John Doe'\")"),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table")),
		mcp.WithString("set_clause", mcp.Required(), mcp.Description("Comma-separated list of column=value assignments")),
		mcp.WithString("where_clause", mcp.Required(), mcp.Description("Condition to specify which records to update")),
	), t.handleUpdateRecord)

	s.AddTool(mcp.NewTool("delete_records",
		mcp.WithDescription("Delete records from a table. "+
			"Example: delete_records(\"users\", \"status='inactive'\")"),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table")),
		mcp.WithString("where_clause", mcp.Required(), mcp.Description("Condition to specify which records to delete")),
	), t.handleDeleteRecords)

	s.AddTool(mcp.NewTool("query_table",
		mcp.WithDescription("Query records from a table with optional conditions. "+
			"Example: query_table(\"users\", \"age > 25\", 5)"),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table to query")),
		mcp.WithString("conditions", mcp.Description("WHERE clause conditions (without the 'WHERE' keyword)")),
		mcp.WithNumber("limit", mcp.DefaultNumber(defaultQueryLimit), mcp.Description("Maximum number of records to return")),
	), t.handleQueryTable)

	s.AddTool(mcp.NewTool("delete_table",
		mcp.WithDescription("Delete a table from the database."),
		mcp.WithString("table_name", mcp.Required(), mcp.Description("Name of the table to delete")),
	), t.handleDeleteTable)
}

func (t *TableTools) handleCreateTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")
	schema := strArg(req, "schema", "")
	t.log.InfoContext(ctx, "creating table", "table", name)

	err := t.svc.Create(ctx, name, schema)
	switch {
	case err == nil:
		return mcp.NewToolResultText(fmt.Sprintf("Successfully created table '%s'.", name)), nil
	case errors.Is(err, app.ErrInvalidIdentifier):
		return mcp.NewToolResultText("Invalid table name. Table names must start with a letter and contain only letters, numbers, and underscores."), nil
	case errors.Is(err, app.ErrReservedName):
		return mcp.NewToolResultText(fmt.Sprintf("Cannot create table '%s'. This name is reserved.", name)), nil
	case errors.Is(err, app.ErrTableExists):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' already exists.", name)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Error creating table: %v", err)), nil
	}
}

func (t *TableTools) handleListTables(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := t.svc.List(ctx)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Error listing tables: %v", err)), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("No tables found in the database"), nil
	}
	return mcp.NewToolResultText("Available tables: " + strings.Join(names, ", ")), nil
}

func (t *TableTools) handleDescribeTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")

	columns, err := t.svc.Describe(ctx, name)
	switch {
	case errors.Is(err, app.ErrTableNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' does not exist.", name)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error describing table: %v", err)), nil
	}
	if len(columns) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No columns found for table '%s'", name)), nil
	}

	lines := make([]string, 0, len(columns))
	for _, col := range columns {
		line := fmt.Sprintf("%s (%s)", col.Name, col.Type)
		if col.PrimaryKey {
			line += " PRIMARY KEY"
		}
		lines = append(lines, line)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Schema for table '%s':\n%s", name, strings.Join(lines, "\n"))), nil
}

func (t *TableTools) handleInsertRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")
	fields := strArg(req, "fields", "")
	values := strArg(req, "values", "")
	t.log.InfoContext(ctx, "inserting record", "table", name)

	id, err := t.svc.Insert(ctx, name, fields, values)
	switch {
	case errors.Is(err, app.ErrTableNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' does not exist.", name)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error inserting record: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully inserted record into '%s' with ID %d.", name, id)), nil
}

func (t *TableTools) handleUpdateRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")
	setClause := strArg(req, "set_clause", "")
	whereClause := strArg(req, "where_clause", "")
	t.log.InfoContext(ctx, "updating records", "table", name)

	count, err := t.svc.Update(ctx, name, setClause, whereClause)
	switch {
	case errors.Is(err, app.ErrTableNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' does not exist.", name)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error updating records: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully updated %d record(s) in '%s'.", count, name)), nil
}

func (t *TableTools) handleDeleteRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")
	whereClause := strArg(req, "where_clause", "")
	t.log.InfoContext(ctx, "deleting records", "table", name)

	count, err := t.svc.DeleteRows(ctx, name, whereClause)
	switch {
	case errors.Is(err, app.ErrTableNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' does not exist.", name)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error deleting records: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted %d record(s) from '%s'.", count, name)), nil
}

func (t *TableTools) handleQueryTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")
	conditions := strArg(req, "conditions", "")
	// Only a missing argument falls back to the default; an explicit 0 is
	// honored and yields the no-records message.
	limit := intArg(req, "limit", defaultQueryLimit)

	rs, err := t.svc.Query(ctx, name, conditions, limit)
	switch {
	case errors.Is(err, app.ErrTableNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' does not exist.", name)), nil
	case err != nil:
		return mcp.NewToolResultText(fmt.Sprintf("Error querying table: %v", err)), nil
	}

	if rs.Empty() {
		msg := fmt.Sprintf("No records found in '%s'", name)
		if conditions != "" {
			msg += fmt.Sprintf(" with condition: %s", conditions)
		}
		return mcp.NewToolResultText(msg), nil
	}

	result := fmt.Sprintf("Results from '%s':\n%s\n", name, renderResultSet(rs))
	if len(rs.Rows) == limit {
		// Equality with the limit only signals possibly-more-data.
		result += fmt.Sprintf("\n(Showing %d records. There may be more.)", limit)
	}
	return mcp.NewToolResultText(result), nil
}

func (t *TableTools) handleDeleteTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strArg(req, "table_name", "")
	t.log.InfoContext(ctx, "deleting table", "table", name)

	err := t.svc.Drop(ctx, name)
	switch {
	case err == nil:
		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted table '%s'.", name)), nil
	case errors.Is(err, app.ErrSystemTable):
		return mcp.NewToolResultText(fmt.Sprintf("Cannot delete table '%s'. This is a system table.", name)), nil
	case errors.Is(err, app.ErrTableNotFound):
		return mcp.NewToolResultText(fmt.Sprintf("Table '%s' does not exist.", name)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Error deleting table: %v", err)), nil
	}
}
