package deltastream_test

import (
	"context"
	"fmt"

	deltastream "github.com/deltastreaminc/deltastream.go"
	"github.com/deltastreaminc/deltastream.go/internal/mock"
	"github.com/deltastreaminc/deltastream.go/pkg/connection"
)

// ExampleClient lists stores through a scripted connection. Against a real
// deployment, construct the client with NewFromEnvironment or NewFromDSN
// instead.
func ExampleClient() {
	conn := &mock.Connection{}
	conn.OnRows("LIST STORES",
		[]connection.Column{{Name: "Name"}, {Name: "Type"}},
		[]any{"kafka_store", "KAFKA"},
		[]any{"kin_store", "KINESIS"},
	)

	client := deltastream.NewWithConnection(conn)
	defer client.Close()

	stores, err := client.Stores.List(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range stores {
		fmt.Printf("%s (%s)\n", s.Name, s.StoreType)
	}
	// Output:
	// kafka_store (KAFKA)
	// kin_store (KINESIS)
}
