package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamCreateParamsValidate(t *testing.T) {
	cols := []RelationColumn{{Name: "viewtime", DataType: "BIGINT"}}

	assert.Error(t, StreamCreateParams{}.Validate())
	assert.Error(t, StreamCreateParams{Name: "s"}.Validate())
	assert.NoError(t, StreamCreateParams{Name: "s", Columns: cols}.Validate())
	assert.NoError(t, StreamCreateParams{Name: "s", As: "SELECT * FROM t"}.Validate())
	assert.Error(t, StreamCreateParams{Name: "s", Columns: cols, As: "SELECT * FROM t"}.Validate())
}

func TestStreamColumnsSQL(t *testing.T) {
	p := StreamCreateParams{
		Name: "pageviews",
		Columns: []RelationColumn{
			{Name: "viewtime", DataType: "BIGINT", NotNull: true},
			{Name: "userid", DataType: "VARCHAR"},
		},
	}
	assert.Equal(t, `("viewtime" BIGINT NOT NULL, "userid" VARCHAR)`, p.ColumnsSQL())

	assert.Equal(t, "", StreamCreateParams{Name: "s", As: "SELECT 1"}.ColumnsSQL())
}

func TestChangelogCreateParamsValidate(t *testing.T) {
	cols := []RelationColumn{{Name: "id", DataType: "VARCHAR"}}

	assert.Error(t, ChangelogCreateParams{Name: "c", Columns: cols}.Validate())
	assert.NoError(t, ChangelogCreateParams{Name: "c", Columns: cols, PrimaryKey: []string{"id"}}.Validate())
	assert.NoError(t, ChangelogCreateParams{Name: "c", As: "SELECT * FROM t"}.Validate())
}

func TestEntityInsertParamsValidate(t *testing.T) {
	assert.Error(t, EntityInsertParams{Name: "topic"}.Validate())
	assert.Error(t, EntityInsertParams{Values: []any{"{}"}}.Validate())
	assert.NoError(t, EntityInsertParams{Name: "topic", Values: []any{"{}"}}.Validate())
}
