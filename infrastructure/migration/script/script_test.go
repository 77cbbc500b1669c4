package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ddlFor(t *testing.T, table string) string {
	t.Helper()

	for _, s := range tableStatements {
		if s.name == table {
			return s.ddl
		}
	}

	require.Failf(t, "tabela ausente", "tabela %s não está no schema", table)
	return ""
}

func columnLine(t *testing.T, ddl, column string) string {
	t.Helper()

	for _, line := range strings.Split(ddl, "\n") {
		if strings.Contains(line, column) {
			return strings.TrimSpace(line)
		}
	}

	require.Failf(t, "coluna ausente", "coluna %s não está na DDL", column)
	return ""
}

func TestSchemaLedgerAndAlertsAcceptPlatformWideRows(t *testing.T) {
	t.Run("decisions aceita campaign_id nulo para decisões de plataforma", func(t *testing.T) {
		line := columnLine(t, ddlFor(t, "decisions"), "campaign_id")

		assert.NotContains(t, line, "NOT NULL")
		assert.Contains(t, line, "REFERENCES campaigns(id)")
	})

	t.Run("alerts aceita campaign_id nulo para avisos de plataforma", func(t *testing.T) {
		line := columnLine(t, ddlFor(t, "alerts"), "campaign_id")

		assert.NotContains(t, line, "NOT NULL")
		assert.Contains(t, line, "REFERENCES campaigns(id)")
	})

	t.Run("colunas imutáveis do ledger continuam obrigatórias", func(t *testing.T) {
		ddl := ddlFor(t, "decisions")

		assert.Contains(t, columnLine(t, ddl, "reason"), "NOT NULL")
		assert.Contains(t, columnLine(t, ddl, "action_taken"), "NOT NULL")
	})
}
