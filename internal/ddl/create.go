// Package ddl renders CREATE TABLE statements for exported datasets. The
// model is backend agnostic; a Dialect supplies types and quoting.
package ddl

import (
	"fmt"
	"strings"
)

// QuoteDouble quotes with ANSI double quotes.
func QuoteDouble(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// QuoteBracket quotes with T-SQL brackets.
func QuoteBracket(id string) string { return "[" + strings.ReplaceAll(id, "]", "]]") + "]" }

// QuoteBacktick quotes with MySQL backticks.
func QuoteBacktick(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

// QuoteFQN quotes each dotted segment of fqn.
func (d Dialect) QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, d.quote(p))
		}
	}
	return strings.Join(out, ".")
}

func (d Dialect) quote(id string) string {
	if d.Quote == nil {
		return QuoteDouble(id)
	}
	return d.Quote(id)
}

// CreateTable renders t as an idempotent CREATE TABLE statement.
func (d Dialect) CreateTable(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("ddl: table %s has no columns", fqn)
	}
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		if strings.TrimSpace(c.SQLType) == "" {
			return "", fmt.Errorf("ddl: column %s has no SQL type", name)
		}
		def := d.quote(name) + " " + c.SQLType
		if !c.Nullable {
			def += " NOT NULL"
		}
		cols = append(cols, def)
	}
	body := fmt.Sprintf("%s (\n  %s\n)", d.QuoteFQN(fqn), strings.Join(cols, ",\n  "))
	if d.Guard != nil {
		return d.Guard(fqn, "CREATE TABLE "+body), nil
	}
	return "CREATE TABLE IF NOT EXISTS " + body, nil
}
