package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWritesHeaderAndRows(t *testing.T) {
	table := Table{Columns: []string{"student_id", "fee_type", "amount"}}
	table.AddRow("STU001", "Tuition, term 1", "1500.00")
	table.AddRow("STU002", "Exam")

	out, err := CSV(table)
	require.NoError(t, err)
	assert.Equal(t, "student_id,fee_type,amount\nSTU001,\"Tuition, term 1\",1500.00\nSTU002,Exam,\n", string(out))
}

func TestCSVRejectsRaggedRows(t *testing.T) {
	_, err := CSV(Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}})
	assert.Error(t, err)

	_, err = CSV(Table{})
	assert.Error(t, err)
}

func TestTablePDF(t *testing.T) {
	table := Table{Columns: []string{"Due", "Amount"}}
	table.AddRow("2024-05-01", "1500.00")

	out, err := TablePDF("Fee statement", "Asha Rao", table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDocumentPDF(t *testing.T) {
	out, err := DocumentPDF(Document{
		Title:    "José Fernández",
		Subtitle: "jose@example.com",
		Sections: []Section{
			{Heading: "Summary", Lines: []string{"Backend trainee."}},
			{Heading: "Skills"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = DocumentPDF(Document{})
	assert.Error(t, err)
}
