package models

import (
	"errors"
	"fmt"
	"strings"
)

// Store types accepted by the control plane.
const (
	StoreTypeKafka      = "KAFKA"
	StoreTypeKinesis    = "KINESIS"
	StoreTypeS3         = "S3"
	StoreTypeSnowflake  = "SNOWFLAKE"
	StoreTypeDatabricks = "DATABRICKS"
	StoreTypePostgreSQL = "POSTGRESQL"
	StoreTypeClickHouse = "CLICKHOUSE"
)

// SASL hash functions for Kafka stores.
const (
	SASLHashNone      = "NONE"
	SASLHashPlain     = "PLAIN"
	SASLHashSHA256    = "SHA256"
	SASLHashSHA512    = "SHA512"
	SASLHashAWSMSKIAM = "AWS_MSK_IAM"
)

// Store is an external streaming or storage system registered with the
// platform.
type Store struct {
	BaseResource
	StoreType string
	State     string
	IsDefault bool
}

func StoreFromRow(row Row) Store {
	return Store{
		BaseResource: baseFromRow(row),
		StoreType:    row.Field("type", "store_type"),
		State:        row.Field("state", "status"),
		IsDefault:    row.FieldBool("is_default", "default"),
	}
}

// StoreCreateParams configures CREATE STORE. Use Properties for parameters
// not covered by a dedicated field; they override generated ones.
type StoreCreateParams struct {
	Name      string
	StoreType string
	// URIs is a comma-separated list of host:port pairs or an endpoint URL.
	URIs string

	TLSDisabled             *bool
	TLSVerifyServerHostname *bool
	TLSCACertFile           string
	SchemaRegistryName      string

	KafkaSASLHashFunction string
	KafkaSASLUsername     string
	KafkaSASLPassword     string
	KafkaMSKAWSRegion     string
	KafkaMSKIAMRoleARN    string

	KinesisIAMRoleARN      string
	KinesisAccessKeyID     string
	KinesisSecretAccessKey string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSIAMRoleARN      string
	AWSIAMExternalID   string
	AWSRegion          string

	Properties map[string]string
	Comment    string
}

func (p StoreCreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("store name is required")
	}
	if p.StoreType == "" {
		return errors.New("store type is required")
	}
	if p.URIs == "" {
		return errors.New("store uris are required")
	}
	switch p.KafkaSASLHashFunction {
	case SASLHashPlain, SASLHashSHA256, SASLHashSHA512:
		if p.KafkaSASLUsername == "" || p.KafkaSASLPassword == "" {
			return fmt.Errorf("sasl username and password are required for hash function %s", p.KafkaSASLHashFunction)
		}
	case SASLHashAWSMSKIAM:
		if p.KafkaMSKAWSRegion == "" || p.KafkaMSKIAMRoleARN == "" {
			return errors.New("msk aws region and iam role arn are required for AWS_MSK_IAM")
		}
	}
	if p.AWSIAMRoleARN != "" && p.AWSIAMExternalID == "" {
		return errors.New("aws iam external id is required when an iam role arn is set")
	}
	return nil
}

func (p StoreCreateParams) WithClause() WithClause {
	var w WithClause
	w.Set("type", strings.ToUpper(p.StoreType))
	w.Set("uris", p.URIs)
	if p.TLSDisabled != nil {
		w.Set("tls.disabled", strings.ToUpper(fmt.Sprint(*p.TLSDisabled)))
	}
	if p.TLSVerifyServerHostname != nil {
		w.Set("tls.verify_server_hostname", strings.ToUpper(fmt.Sprint(*p.TLSVerifyServerHostname)))
	}
	w.Set("tls.ca_cert_file", p.TLSCACertFile)
	w.Set("schema_registry.name", p.SchemaRegistryName)
	w.Set("kafka.sasl.hash_function", p.KafkaSASLHashFunction)
	w.Set("kafka.sasl.username", p.KafkaSASLUsername)
	w.Set("kafka.sasl.password", p.KafkaSASLPassword)
	w.Set("kafka.msk.aws_region", p.KafkaMSKAWSRegion)
	w.Set("kafka.msk.iam_role_arn", p.KafkaMSKIAMRoleARN)
	w.Set("kinesis.iam_role_arn", p.KinesisIAMRoleARN)
	w.Set("kinesis.access_key_id", p.KinesisAccessKeyID)
	w.Set("kinesis.secret_access_key", p.KinesisSecretAccessKey)
	w.Set("aws.access_key_id", p.AWSAccessKeyID)
	w.Set("aws.secret_access_key", p.AWSSecretAccessKey)
	w.Set("aws.iam_role_arn", p.AWSIAMRoleARN)
	w.Set("aws.iam_external_id", p.AWSIAMExternalID)
	w.Set("aws.region", p.AWSRegion)
	w.Merge(p.Properties)
	return w
}

// StoreUpdateParams is a partial update applied through UPDATE STORE.
type StoreUpdateParams struct {
	Properties map[string]string
	Comment    *string
}

func (p StoreUpdateParams) Validate() error {
	if len(p.Properties) == 0 && p.Comment == nil {
		return errors.New("update requires at least one field")
	}
	return nil
}

func (p StoreUpdateParams) WithClause() WithClause {
	var w WithClause
	w.Merge(p.Properties)
	return w
}
