package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateParamsValidate(t *testing.T) {
	valid := StoreCreateParams{
		Name:      "kafka_store",
		StoreType: StoreTypeKafka,
		URIs:      "broker:9092",
	}
	require.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate())

	missingURIs := valid
	missingURIs.URIs = ""
	assert.Error(t, missingURIs.Validate())

	saslNoCreds := valid
	saslNoCreds.KafkaSASLHashFunction = SASLHashSHA512
	assert.Error(t, saslNoCreds.Validate())

	saslWithCreds := saslNoCreds
	saslWithCreds.KafkaSASLUsername = "user"
	saslWithCreds.KafkaSASLPassword = "pass"
	assert.NoError(t, saslWithCreds.Validate())

	mskIncomplete := valid
	mskIncomplete.KafkaSASLHashFunction = SASLHashAWSMSKIAM
	mskIncomplete.KafkaMSKAWSRegion = "us-east-1"
	assert.Error(t, mskIncomplete.Validate())

	roleWithoutExternalID := valid
	roleWithoutExternalID.AWSIAMRoleARN = "arn:aws:iam::1:role/x"
	assert.Error(t, roleWithoutExternalID.Validate())
}

func TestStoreCreateParamsWithClause(t *testing.T) {
	tlsDisabled := false
	p := StoreCreateParams{
		Name:                  "kafka_store",
		StoreType:             "kafka",
		URIs:                  "broker:9092",
		TLSDisabled:           &tlsDisabled,
		KafkaSASLHashFunction: SASLHashPlain,
		KafkaSASLUsername:     "user",
		KafkaSASLPassword:     "pass",
	}
	sql := p.WithClause().ToSQL()
	assert.Equal(t,
		`WITH ('kafka.sasl.hash_function' = PLAIN, 'kafka.sasl.password' = 'pass', `+
			`'kafka.sasl.username' = 'user', 'tls.disabled' = FALSE, 'type' = KAFKA, 'uris' = 'broker:9092')`,
		sql)
}

func TestStoreUpdateParamsValidate(t *testing.T) {
	assert.Error(t, StoreUpdateParams{}.Validate())

	comment := "updated"
	assert.NoError(t, StoreUpdateParams{Comment: &comment}.Validate())
	assert.NoError(t, StoreUpdateParams{Properties: map[string]string{"uris": "b:9092"}}.Validate())
}
