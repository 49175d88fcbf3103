package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = (*Registry)(nil)

// Registry backs SchemaIdentifier with a Confluent-compatible
// schema registry.
type Registry struct {
	client *sr.Client
}

func NewRegistry(urls ...string) (Registry, error) {
	const op = "schema.NewRegistry"

	client, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return Registry{}, fmt.Errorf("%s: %w", op, err)
	}
	return Registry{client: client}, nil
}

// DetermineID registers the schema under the subject and returns its
// registry ID. Registering an already known schema is idempotent and
// yields the existing ID.
func (r Registry) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	const op = "schema.Registry.DetermineID"

	ss, err := r.client.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
