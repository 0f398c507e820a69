// Package deltastream is the Go SDK for the DeltaStream platform. It wraps
// the control plane's SQL surface behind typed resource managers for
// databases, schemas, stores, streams, changelogs, entities, compute pools
// and schema registries.
//
// Construct a client from the environment, a DSN, or an explicit config:
//
//	client, err := deltastream.NewFromEnvironment()
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	if err := client.Session.UseDatabase(ctx, "analytics"); err != nil {
//		return err
//	}
//	streams, err := client.Streams.List(ctx)
//
// Every operation returns an error matchable against the package sentinels
// (ErrResourceNotFound, ErrResourceAlreadyExists, ErrInvalidConfiguration,
// ErrConnection, ErrTransport, ErrTimeout) with errors.Is or the Is*
// predicates.
package deltastream
