package requests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fleetory/console/internal/api"
	"github.com/fleetory/console/internal/mockapi"
	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/tests/integration"
)

// seededDistributorID looks up the seeded distributor record by email
func seededDistributorID(t *testing.T, env *integration.Env) uuid.UUID {
	t.Helper()

	distributors, err := env.API.Distributors.List(t.Context())
	require.NoError(t, err)
	for _, d := range distributors {
		if d.Email == mockapi.SeedDistributorEmail {
			return d.ID
		}
	}
	t.Fatal("seeded distributor not found")
	return uuid.Nil
}

func Test_ConnectionRequests(t *testing.T) {
	t.Parallel()

	t.Run("list pending requests", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)

		requests, err := env.API.Requests.ListForDistributor(t.Context(), seededDistributorID(t, env))
		require.NoError(t, err)
		require.Len(t, requests, 1, "one pending request is seeded")
		require.Equal(t, models.RequestStatusPending, requests[0].Status)
	})

	t.Run("accept a request", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)
		own := seededDistributorID(t, env)

		requests, err := env.API.Requests.ListForDistributor(t.Context(), own)
		require.NoError(t, err)

		answered, err := env.API.Requests.Respond(t.Context(), requests[0].ID, models.RequestStatusAccepted)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusAccepted, answered.Status)

		requests, err = env.API.Requests.ListForDistributor(t.Context(), own)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusAccepted, requests[0].Status)
	})

	t.Run("responding twice is rejected by the envelope", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)
		own := seededDistributorID(t, env)

		requests, err := env.API.Requests.ListForDistributor(t.Context(), own)
		require.NoError(t, err)

		_, err = env.API.Requests.Respond(t.Context(), requests[0].ID, models.RequestStatusRejected)
		require.NoError(t, err)

		_, err = env.API.Requests.Respond(t.Context(), requests[0].ID, models.RequestStatusAccepted)
		require.Error(t, err, "an answered request must not be answered again")
		require.Contains(t, err.Error(), "request already answered")
		require.Empty(t, env.Events.Events(), "an application level rejection is not a transport error")
	})

	t.Run("retailers submit requests without a session", func(t *testing.T) {
		env := integration.Serve(t)

		// Grab the target id as the distributor, then drop the session
		env.LoginDistributor(t)
		own := seededDistributorID(t, env)
		require.NoError(t, env.API.Auth.Logout())

		created, err := env.API.Requests.Create(t.Context(), api.ConnectionRequestInput{
			DistributorID: own,
			RetailerName:  "Corner Grocery",
			RetailerPhone: "+15550103",
		})
		require.NoError(t, err, "request submission is public")
		require.Equal(t, models.RequestStatusPending, created.Status)

		// Back as the distributor the new request is visible
		env.LoginDistributor(t)
		requests, err := env.API.Requests.ListForDistributor(t.Context(), own)
		require.NoError(t, err)
		require.Len(t, requests, 2)
	})
}
