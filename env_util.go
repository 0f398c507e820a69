package deltastream

import "os"

// Environment variables recognized by NewFromEnvironment.
const (
	// EnvDSN takes precedence over the component variables when set.
	EnvDSN            = "DELTASTREAM_DSN"
	EnvToken          = "DELTASTREAM_TOKEN"
	EnvOrganizationID = "DELTASTREAM_ORG_ID"
	EnvServerURL      = "DELTASTREAM_SERVER_URL"
	EnvDatabaseName   = "DELTASTREAM_DATABASE_NAME"
	EnvSchemaName     = "DELTASTREAM_SCHEMA_NAME"
)

func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
