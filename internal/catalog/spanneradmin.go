package catalog

import (
	"context"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// AdminCatalog implements InstanceLister and DatabaseLister over the Spanner
// admin API clients.
type AdminCatalog struct {
	instanceAdmin *instance.InstanceAdminClient
	databaseAdmin *database.DatabaseAdminClient
}

func NewAdminCatalog(ctx context.Context, opts ...option.ClientOption) (*AdminCatalog, error) {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	databaseAdmin, err := database.NewDatabaseAdminClient(ctx, opts...)
	if err != nil {
		instanceAdmin.Close()
		return nil, err
	}
	return &AdminCatalog{instanceAdmin: instanceAdmin, databaseAdmin: databaseAdmin}, nil
}

func (a *AdminCatalog) ListInstances(ctx context.Context, parent string) ([]string, error) {
	it := a.instanceAdmin.ListInstances(ctx, &instancepb.ListInstancesRequest{Parent: parent})

	var names []string
	for {
		inst, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, inst.GetName())
	}
	return names, nil
}

func (a *AdminCatalog) ListDatabases(ctx context.Context, instanceName string) ([]string, error) {
	it := a.databaseAdmin.ListDatabases(ctx, &databasepb.ListDatabasesRequest{Parent: instanceName})

	var names []string
	for {
		db, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, db.GetName())
	}
	return names, nil
}

func (a *AdminCatalog) Close() error {
	err := a.instanceAdmin.Close()
	if cerr := a.databaseAdmin.Close(); err == nil {
		err = cerr
	}
	return err
}
