package sqlite

import (
	"fmt"
	"strings"
)

// Column describes one column of a destination table.
type Column struct {
	Name       string
	SQLType    string // "INTEGER", "REAL", "TEXT"
	NotNull    bool
	PrimaryKey bool
}

// buildCreateTableSQL renders a CREATE TABLE statement of the form:
//
//	CREATE TABLE "table" (
//	  "col1" TYPE NOT NULL,
//	  "col2" TYPE,
//	  PRIMARY KEY ("col1")
//	);
//
// Identifiers are double-quoted so column names like "Date" survive intact.
// No IF NOT EXISTS: ReplaceTable drops first, and a create that collides
// should fail loudly.
func buildCreateTableSQL(table string, cols []Column) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("sqlite: table name must not be empty")
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("sqlite: table %s: at least one column is required", table)
	}

	defs := make([]string, 0, len(cols)+1)
	pks := make([]string, 0, 1)

	for _, c := range cols {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("sqlite: table %s: column with empty name", table)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("sqlite: table %s: column %s missing SQLType", table, name)
		}

		var sb strings.Builder
		sb.WriteString(quoteIdent(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		defs = append(defs, sb.String())

		if c.PrimaryKey {
			pks = append(pks, quoteIdent(name))
		}
	}

	if len(pks) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	return fmt.Sprintf(
		"CREATE TABLE %s (\n  %s\n);",
		quoteIdent(table),
		strings.Join(defs, ",\n  "),
	), nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
