package entitlements

import (
	"testing"
	"time"

	"ecclesia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(daysAgo int) time.Time {
	return time.Now().AddDate(0, 0, -daysAgo)
}

func TestLatestActiveSubscriptionPicksMostRecent(t *testing.T) {
	subs := []models.Subscription{
		{ID: 1, PlanID: 10, Status: models.SUBSCRIPTION_STATUS_ACTIVE, StartedAt: ts(30)},
		{ID: 2, PlanID: 11, Status: models.SUBSCRIPTION_STATUS_ACTIVE, StartedAt: ts(5)},
		{ID: 3, PlanID: 12, Status: models.SUBSCRIPTION_STATUS_CANCELED, StartedAt: ts(1)},
	}

	got := LatestActiveSubscription(subs)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID, "cancelada mais nova não ganha da ativa")
}

func TestLatestActiveSubscriptionNone(t *testing.T) {
	assert.Nil(t, LatestActiveSubscription(nil))
	assert.Nil(t, LatestActiveSubscription([]models.Subscription{
		{Status: models.SUBSCRIPTION_STATUS_EXPIRED, StartedAt: ts(1)},
	}))
}

func TestFallbackSubscriptionWalksChain(t *testing.T) {
	member := &models.Member{
		ID:     1,
		Branch: &models.Branch{ID: 2, ChurchID: 3},
	}
	admin := &models.User{
		ID: 9,
		Subscriptions: []models.Subscription{
			{ID: 7, Status: models.SUBSCRIPTION_STATUS_ACTIVE, StartedAt: ts(2)},
		},
	}

	got := FallbackSubscription(member, admin)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
}

func TestFallbackSubscriptionBrokenChain(t *testing.T) {
	admin := &models.User{
		Subscriptions: []models.Subscription{
			{Status: models.SUBSCRIPTION_STATUS_ACTIVE, StartedAt: ts(2)},
		},
	}

	// Sem membro.
	assert.Nil(t, FallbackSubscription(nil, admin))
	// Membro sem filial carregada.
	assert.Nil(t, FallbackSubscription(&models.Member{}, admin))
	// Filial sem igreja.
	assert.Nil(t, FallbackSubscription(&models.Member{Branch: &models.Branch{}}, admin))
	// Igreja sem admin.
	assert.Nil(t, FallbackSubscription(&models.Member{Branch: &models.Branch{ChurchID: 1}}, nil))
	// Admin sem assinatura ativa.
	assert.Nil(t, FallbackSubscription(
		&models.Member{Branch: &models.Branch{ChurchID: 1}},
		&models.User{Subscriptions: []models.Subscription{
			{Status: models.SUBSCRIPTION_STATUS_CANCELED, StartedAt: ts(1)},
		}},
	))
}
