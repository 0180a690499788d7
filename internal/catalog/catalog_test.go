package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alexanderjulianmartinez/spanner-metasync/pkg/types"
)

type fakeAdmin struct {
	instances    map[string][]string // parent -> instance names
	databases    map[string][]string // instance -> database names
	instancesErr error
	databasesErr error
}

func (f *fakeAdmin) ListInstances(_ context.Context, parent string) ([]string, error) {
	if f.instancesErr != nil {
		return nil, f.instancesErr
	}
	return f.instances[parent], nil
}

func (f *fakeAdmin) ListDatabases(_ context.Context, instance string) ([]string, error) {
	if f.databasesErr != nil {
		return nil, f.databasesErr
	}
	return f.databases[instance], nil
}

func TestListResources_FiltersBackupsAndStripsNames(t *testing.T) {
	admin := &fakeAdmin{
		instances: map[string][]string{
			"projects/P1": {"projects/P1/instances/i1"},
		},
		databases: map[string][]string{
			"projects/P1/instances/i1": {
				"projects/P1/instances/i1/databases/db1",
				"projects/P1/instances/i1/databases/db1/backups/b1",
			},
		},
	}

	res, err := New(admin, admin).ListResources(context.Background(), "P1")
	require.NoError(t, err)
	require.Equal(t, []Resource{{InstanceID: "i1", DatabaseID: "db1"}}, res)
}

func TestListResources_NoInstances(t *testing.T) {
	admin := &fakeAdmin{instances: map[string][]string{}}

	res, err := New(admin, admin).ListResources(context.Background(), "empty-proj")
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestListResources_MultipleInstances(t *testing.T) {
	admin := &fakeAdmin{
		instances: map[string][]string{
			"projects/P1": {
				"projects/P1/instances/i1",
				"projects/P1/instances/i2",
			},
		},
		databases: map[string][]string{
			"projects/P1/instances/i1": {"projects/P1/instances/i1/databases/a"},
			"projects/P1/instances/i2": {
				"projects/P1/instances/i2/databases/b",
				"projects/P1/instances/i2/databases/c",
			},
		},
	}

	res, err := New(admin, admin).ListResources(context.Background(), "P1")
	require.NoError(t, err)
	require.Equal(t, []Resource{
		{InstanceID: "i1", DatabaseID: "a"},
		{InstanceID: "i2", DatabaseID: "b"},
		{InstanceID: "i2", DatabaseID: "c"},
	}, res)
}

func TestListResources_PermissionDeniedSurfaces(t *testing.T) {
	admin := &fakeAdmin{
		instancesErr: status.Error(codes.PermissionDenied, "spanner.instances.list denied"),
	}

	res, err := New(admin, admin).ListResources(context.Background(), "locked-proj")
	require.Error(t, err)
	require.Nil(t, res)
	require.Equal(t, types.StatusPermissionDenied, types.Classify(err))
}

func TestListResources_DatabaseListingErrorSurfaces(t *testing.T) {
	admin := &fakeAdmin{
		instances: map[string][]string{
			"projects/P1": {"projects/P1/instances/i1"},
		},
		databasesErr: status.Error(codes.NotFound, "instance gone"),
	}

	res, err := New(admin, admin).ListResources(context.Background(), "P1")
	require.Error(t, err)
	require.Nil(t, res)
	require.Equal(t, types.StatusNotFound, types.Classify(err))
}
