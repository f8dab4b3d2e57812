package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	schema := `-- leading comment
CREATE TABLE a (id INT);

-- another
CREATE INDEX idx ON a (id);
`
	stmts := splitStatements(schema)

	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX idx ON a (id)"}, stmts)
}

func TestEmbeddedSchemaCreatesMirrorTables(t *testing.T) {
	stmts := splitStatements(schemaSQL)

	assert.Len(t, stmts, 3)
	assert.True(t, strings.Contains(stmts[0], "scan_history"))
	assert.True(t, strings.Contains(stmts[2], "feedback"))
}
