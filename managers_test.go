package deltastream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltastreaminc/deltastream.go/pkg/connection"
	"github.com/deltastreaminc/deltastream.go/pkg/models"
)

func sqlErr(state string) error {
	return &connection.SQLError{SQLState: state, Message: "scripted failure"}
}

func TestDatabaseCreateGetRoundTrip(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE DATABASE "db1"`, map[string]string{
		"name":  "db1",
		"owner": "sysadmin",
	})

	db, err := client.Databases.Create(context.Background(), models.DatabaseCreateParams{Name: "db1"})
	require.NoError(t, err)
	assert.Equal(t, "db1", db.Name)
	assert.Equal(t, "sysadmin", db.Owner)

	assert.Equal(t, []string{
		`CREATE DATABASE "db1";`,
		`DESCRIBE DATABASE "db1";`,
	}, conn.Statements())
}

func TestDatabaseCreateWithComment(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE DATABASE "db1"`, map[string]string{"name": "db1"})

	_, err := client.Databases.Create(context.Background(), models.DatabaseCreateParams{
		Name:    "db1",
		Comment: "it's mine",
	})
	require.NoError(t, err)
	assert.Equal(t, `CREATE DATABASE "db1" COMMENT 'it''s mine';`, conn.Statements()[0])
}

func TestDatabaseUpdateComment(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE DATABASE "db1"`, map[string]string{"name": "db1", "comment": "fresh"})

	comment := "fresh"
	db, err := client.Databases.Update(context.Background(), "db1", models.DatabaseUpdateParams{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "fresh", db.Comment)
	assert.Equal(t, `ALTER DATABASE "db1" SET COMMENT 'fresh';`, conn.Statements()[0])
}

func TestUpdateWithoutFields(t *testing.T) {
	client, conn := newMockClient(t)

	_, err := client.Databases.Update(context.Background(), "db1", models.DatabaseUpdateParams{})
	assert.True(t, IsInvalidConfiguration(err))
	assert.Empty(t, conn.Statements())
}

func TestCreateValidationMakesNoNetworkCall(t *testing.T) {
	client, conn := newMockClient(t)

	_, err := client.Stores.Create(context.Background(), models.StoreCreateParams{Name: "incomplete"})
	assert.True(t, IsInvalidConfiguration(err))
	assert.Empty(t, conn.Statements())
}

func TestDuplicateCreate(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnErr(`CREATE DATABASE "dup"`, sqlErr(connection.SQLStateDuplicateObject))

	_, err := client.Databases.Create(context.Background(), models.DatabaseCreateParams{Name: "dup"})
	assert.True(t, IsAlreadyExists(err))
	assert.Contains(t, err.Error(), `database "dup"`)
}

func TestGetNotFound(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnErr(`DESCRIBE DATABASE "ghost"`, sqlErr(connection.SQLStateUndefinedObject))

	_, err := client.Databases.Get(context.Background(), "ghost")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `database "ghost"`)
}

func TestDeleteNotFoundAndIfExists(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnErr(`DROP STREAM "ghost"`, sqlErr(connection.SQLStateUndefinedObject))

	err := client.Streams.Delete(context.Background(), "ghost")
	assert.True(t, IsNotFound(err))

	// Absence is fine for the IfExists variant.
	assert.NoError(t, client.Streams.DeleteIfExists(context.Background(), "ghost"))
}

func TestExists(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()

	conn.OnDescribe(`DESCRIBE STORE "kafka_store"`, map[string]string{"name": "kafka_store"})
	ok, err := client.Stores.Exists(ctx, "kafka_store")
	require.NoError(t, err)
	assert.True(t, ok)

	// Newest rule wins, so the store now disappears.
	conn.OnErr(`DESCRIBE STORE "kafka_store"`, sqlErr(connection.SQLStateUndefinedObject))
	ok, err = client.Stores.Exists(ctx, "kafka_store")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStreamCreateStatementShape(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE RELATION "pageviews"`, map[string]string{
		"name": "pageviews",
		"type": "STREAM",
	})

	stream, err := client.Streams.Create(context.Background(), models.StreamCreateParams{
		Name: "pageviews",
		Columns: []models.RelationColumn{
			{Name: "viewtime", DataType: "BIGINT", NotNull: true},
			{Name: "userid", DataType: "VARCHAR"},
		},
		Store:       "kafka_store",
		Topic:       "pageviews",
		ValueFormat: "JSON",
	})
	require.NoError(t, err)
	assert.Equal(t, "pageviews", stream.Name)
	assert.Equal(t,
		`CREATE STREAM "pageviews" ("viewtime" BIGINT NOT NULL, "userid" VARCHAR) `+
			`WITH ('store' = 'kafka_store', 'topic' = 'pageviews', 'value.format' = 'JSON');`,
		conn.Statements()[0])
}

func TestStreamCreateFromSelect(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE RELATION "derived"`, map[string]string{"name": "derived", "type": "STREAM"})

	_, err := client.Streams.CreateFromSelect(context.Background(), "derived",
		"SELECT userid FROM pageviews", nil)
	require.NoError(t, err)
	assert.Equal(t, `CREATE STREAM "derived" AS SELECT userid FROM pageviews;`, conn.Statements()[0])
}

func TestStreamNameQualification(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()

	require.NoError(t, client.Session.UseDatabase(ctx, "analytics"))
	require.NoError(t, client.Session.UseSchema(ctx, "public"))

	conn.OnDescribe(`DESCRIBE RELATION "analytics"."public"."pageviews"`, map[string]string{
		"name": "pageviews",
		"type": "STREAM",
	})
	_, err := client.Streams.Get(ctx, "pageviews")
	require.NoError(t, err)

	// Explicit qualification bypasses the session scope.
	conn.OnDescribe(`DESCRIBE RELATION "other"."s2"."clicks"`, map[string]string{
		"name": "clicks",
		"type": "STREAM",
	})
	_, err = client.Streams.Get(ctx, "other.s2.clicks")
	require.NoError(t, err)
}

func TestStreamStartStop(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()

	require.NoError(t, client.Streams.Start(ctx, "pageviews"))
	require.NoError(t, client.Streams.Stop(ctx, "pageviews"))
	assert.Equal(t, []string{
		`START STREAM "pageviews";`,
		`STOP STREAM "pageviews";`,
	}, conn.Statements())
}

func TestChangelogCreatePrimaryKey(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE RELATION "users_log"`, map[string]string{
		"name": "users_log",
		"type": "CHANGELOG",
	})

	cl, err := client.Changelogs.Create(context.Background(), models.ChangelogCreateParams{
		Name: "users_log",
		Columns: []models.RelationColumn{
			{Name: "id", DataType: "VARCHAR"},
			{Name: "email", DataType: "VARCHAR"},
		},
		PrimaryKey: []string{"id"},
		Store:      "kafka_store",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, cl.PrimaryKey)
	assert.Equal(t,
		`CREATE CHANGELOG "users_log" ("id" VARCHAR, "email" VARCHAR, PRIMARY KEY("id")) `+
			`WITH ('store' = 'kafka_store');`,
		conn.Statements()[0])
}

func TestSchemaListIn(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnRows(`LIST SCHEMAS IN DATABASE "analytics"`,
		[]connection.Column{{Name: "name"}, {Name: "database"}},
		[]any{"public", "analytics"},
	)

	schemas, err := client.Schemas.ListIn(context.Background(), "analytics")
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal(t, "public", schemas[0].Name)
	assert.Equal(t, "analytics", schemas[0].DatabaseName)
}

func TestSchemaCreateInDatabase(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE SCHEMA "analytics"."reports"`, map[string]string{"name": "reports"})

	_, err := client.Schemas.Create(context.Background(), models.SchemaCreateParams{
		Name:     "reports",
		Database: "analytics",
	})
	require.NoError(t, err)
	assert.Equal(t, `CREATE SCHEMA "analytics"."reports";`, conn.Statements()[0])
}

func TestStoreCreateKafka(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE STORE "kafka_store"`, map[string]string{
		"name": "kafka_store",
		"type": "KAFKA",
	})

	store, err := client.Stores.CreateKafka(context.Background(), models.StoreCreateParams{
		Name: "kafka_store",
		URIs: "broker:9092",
	})
	require.NoError(t, err)
	assert.Equal(t, "KAFKA", store.StoreType)
	assert.Equal(t,
		`CREATE STORE "kafka_store" WITH ('type' = KAFKA, 'uris' = 'broker:9092');`,
		conn.Statements()[0])
}

func TestStoreTestConnectionAndListTopics(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()

	conn.OnDescribe(`TEST STORE "kafka_store"`, map[string]string{"status": "ok"})
	status, err := client.Stores.TestConnection(ctx, "kafka_store")
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Field("status"))

	conn.OnRows(`LIST TOPICS FROM STORE "kafka_store"`,
		[]connection.Column{{Name: "name"}},
		[]any{"pageviews"}, []any{"clicks"},
	)
	topics, err := client.Stores.ListTopics(ctx, "kafka_store")
	require.NoError(t, err)
	assert.Equal(t, []string{"pageviews", "clicks"}, topics)
}

func TestEntityHierarchicalName(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE ENTITY "cat1.schema1" IN STORE "pg_store"`, map[string]string{
		"name":    "cat1.schema1",
		"is_leaf": "false",
	})

	// A dotted entity name is one identifier, not a qualification path.
	entity, err := client.Entities.GetIn(context.Background(), "cat1.schema1", "pg_store")
	require.NoError(t, err)
	assert.Equal(t, "cat1.schema1", entity.Name)
	assert.False(t, entity.IsLeaf)
}

func TestEntityCreateAndDelete(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()
	conn.OnDescribe(`DESCRIBE ENTITY "pageviews" IN STORE "kafka_store"`, map[string]string{
		"name":    "pageviews",
		"is_leaf": "true",
	})

	entity, err := client.Entities.Create(ctx, models.EntityCreateParams{
		Name:   "pageviews",
		Store:  "kafka_store",
		Params: map[string]string{"topic.partitions": "3"},
	})
	require.NoError(t, err)
	assert.True(t, entity.IsLeaf)
	assert.Equal(t,
		`CREATE ENTITY "pageviews" IN STORE "kafka_store" WITH ('topic.partitions' = '3');`,
		conn.Statements()[0])

	require.NoError(t, client.Entities.DeleteIn(ctx, "pageviews", "kafka_store"))
	statements := conn.Statements()
	assert.Equal(t, `DROP ENTITY "pageviews" IN STORE "kafka_store";`, statements[len(statements)-1])
}

func TestEntityInsertValues(t *testing.T) {
	client, conn := newMockClient(t)

	err := client.Entities.InsertValues(context.Background(), models.EntityInsertParams{
		Name:  "pageviews",
		Store: "kafka_store",
		Values: []any{
			map[string]any{"userid": "u1"},
			`{"userid":"u2"}`,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		`INSERT INTO ENTITY "pageviews" IN STORE "kafka_store" VALUE('{"userid":"u1"}');`,
		`INSERT INTO ENTITY "pageviews" IN STORE "kafka_store" VALUE('{"userid":"u2"}');`,
	}, conn.Statements())
}

func TestEntityInsertStopsOnFailure(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnErr(`VALUE('two')`, sqlErr(connection.SQLStateUndefinedObject))

	err := client.Entities.InsertValues(context.Background(), models.EntityInsertParams{
		Name:   "pageviews",
		Values: []any{"one", "two", "three"},
	})
	assert.True(t, IsNotFound(err))
	// The failing value stopped the sequence before the third insert.
	assert.Len(t, conn.Statements(), 2)
}

func TestComputePoolLifecycle(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()
	conn.OnDescribe(`DESCRIBE COMPUTE_POOL "pool1"`, map[string]string{
		"name":      "pool1",
		"size":      "MEDIUM",
		"min_units": "1",
		"max_units": "4",
	})

	pool, err := client.ComputePools.Create(ctx, models.ComputePoolCreateParams{
		Name:     "pool1",
		Size:     "MEDIUM",
		MinUnits: 1,
		MaxUnits: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", pool.Size)
	assert.Equal(t, 4, pool.MaxUnits)
	assert.Equal(t,
		`CREATE COMPUTE_POOL "pool1" WITH ('max.units' = '4', 'min.units' = '1', 'size' = 'MEDIUM');`,
		conn.Statements()[0])

	require.NoError(t, client.ComputePools.Start(ctx, "pool1"))
	require.NoError(t, client.ComputePools.Stop(ctx, "pool1"))
	statements := conn.Statements()
	assert.Equal(t, `START COMPUTE_POOL "pool1";`, statements[len(statements)-2])
	assert.Equal(t, `STOP COMPUTE_POOL "pool1";`, statements[len(statements)-1])
}

func TestSchemaRegistryCreate(t *testing.T) {
	client, conn := newMockClient(t)
	conn.OnDescribe(`DESCRIBE SCHEMA_REGISTRY "sr1"`, map[string]string{
		"name": "sr1",
		"type": "CONFLUENT",
	})

	sr, err := client.SchemaRegistries.Create(context.Background(), models.SchemaRegistryCreateParams{
		Name:         "sr1",
		RegistryType: models.RegistryTypeConfluent,
		URIs:         "https://sr.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "CONFLUENT", sr.RegistryType)
	assert.Equal(t,
		`CREATE SCHEMA_REGISTRY "sr1" WITH ('type' = CONFLUENT, 'uris' = 'https://sr.example.com');`,
		conn.Statements()[0])
}

func TestListAfterCreate(t *testing.T) {
	client, conn := newMockClient(t)
	ctx := context.Background()
	conn.OnDescribe(`DESCRIBE DATABASE "db1"`, map[string]string{"name": "db1"})

	_, err := client.Databases.Create(ctx, models.DatabaseCreateParams{Name: "db1"})
	require.NoError(t, err)

	conn.OnRows("LIST DATABASES",
		[]connection.Column{{Name: "name"}},
		[]any{"db1"},
	)
	dbs, err := client.Databases.List(ctx)
	require.NoError(t, err)

	count := 0
	for _, db := range dbs {
		if db.Name == "db1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestListEmptyResult(t *testing.T) {
	client, _ := newMockClient(t)

	streams, err := client.Streams.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, streams)
}
