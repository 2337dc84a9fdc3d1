package session

import (
	"testing"

	"github.com/dmitrijs2005/glidepath/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestIdentity_IsGuest(t *testing.T) {
	require.True(t, Identity{}.IsGuest())
	require.False(t, Identity{UserID: "u1"}.IsGuest())
}

func TestSetIdentity_ResetsEverything(t *testing.T) {
	sess := New()
	sess.Entitlements.Replace(models.Entitlement{Credits: 5})
	sess.Results.Record(models.CategoryBasic, models.DefaultParameters(),
		models.ComputationOutput{Category: models.CategoryBasic})
	sess.SetProfiles([]models.Profile{{ID: "p1"}})
	require.True(t, sess.SelectProfile("p1"))

	sess.SetIdentity(Identity{UserID: "u2", Email: "u2@example.com"})

	require.Equal(t, "u2", sess.UserID())
	require.Zero(t, sess.Entitlements.Current().Credits)
	require.Nil(t, sess.Results.Peek(models.CategoryBasic))
	require.Empty(t, sess.Profiles())
	require.Empty(t, sess.SelectedProfile())
}

func TestSetIdentity_LogoutDropsAuthenticatedState(t *testing.T) {
	sess := New()
	sess.SetIdentity(Identity{UserID: "u1"})
	sess.Entitlements.Replace(models.Entitlement{Unlimited: true})

	sess.SetIdentity(Identity{})

	require.True(t, sess.Identity().IsGuest())
	require.False(t, sess.Entitlements.Current().Unlimited)
}

func TestSelectProfile_UnknownIDRejected(t *testing.T) {
	sess := New()
	sess.SetProfiles([]models.Profile{{ID: "p1"}})

	require.False(t, sess.SelectProfile("nope"))
	require.Empty(t, sess.SelectedProfile())

	require.True(t, sess.SelectProfile("p1"))
	require.Equal(t, "p1", sess.SelectedProfile())
}

func TestSetProfiles_KeepsSelectionWhenStillPresent(t *testing.T) {
	sess := New()
	sess.SetProfiles([]models.Profile{{ID: "p1"}, {ID: "p2"}})
	require.True(t, sess.SelectProfile("p1"))

	sess.SetProfiles([]models.Profile{{ID: "p1"}})
	require.Equal(t, "p1", sess.SelectedProfile())

	sess.SetProfiles([]models.Profile{{ID: "p3"}})
	require.Empty(t, sess.SelectedProfile())
}
