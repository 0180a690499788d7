// Package catalog discovers Spanner databases across a project: it lists the
// project's instances, then each instance's databases, and returns short-form
// identifier pairs with backups filtered out.
package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Resource is one discovered database, identified by short IDs (last path
// segment of the fully-qualified resource names).
type Resource struct {
	InstanceID string
	DatabaseID string
}

// InstanceLister enumerates fully-qualified instance names under
// "projects/<project>".
type InstanceLister interface {
	ListInstances(ctx context.Context, parent string) ([]string, error)
}

// DatabaseLister enumerates fully-qualified database names under an instance.
type DatabaseLister interface {
	ListDatabases(ctx context.Context, instance string) ([]string, error)
}

type Catalog struct {
	instances InstanceLister
	databases DatabaseLister
}

func New(instances InstanceLister, databases DatabaseLister) *Catalog {
	return &Catalog{instances: instances, databases: databases}
}

// ListResources returns every non-backup database in the project. Errors are
// returned as-is; the caller classifies them and decides whether the project
// is skipped. A failed call yields no partial results for that project.
func (c *Catalog) ListResources(ctx context.Context, project string) ([]Resource, error) {
	parent := fmt.Sprintf("projects/%s", project)

	instances, err := c.instances.ListInstances(ctx, parent)
	if err != nil {
		return nil, err
	}

	var resources []Resource
	for _, instance := range instances {
		databases, err := c.databases.ListDatabases(ctx, instance)
		if err != nil {
			return nil, err
		}
		for _, db := range databases {
			// Backups share the databases namespace; only real databases
			// carry a plain .../databases/<id> path.
			if !strings.Contains(db, "/") || strings.Contains(db, "/backups/") {
				continue
			}
			resources = append(resources, Resource{
				InstanceID: shortID(instance),
				DatabaseID: shortID(db),
			})
		}
	}
	return resources, nil
}

func shortID(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
