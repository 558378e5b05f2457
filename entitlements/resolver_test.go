package entitlements_test

import (
	"testing"
	"time"

	dbpkg "ecclesia/db"
	"ecclesia/entitlements"
	"ecclesia/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB sobe um sqlite em memória com o schema completo. Uma conexão
// só: o pool abriria outro banco vazio a cada conexão nova.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	dbpkg.AutoMigrate(db)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, Password: "x", Status: models.USER_STATUS_AVAILABLE}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPlan(t *testing.T, db *gorm.DB, name string, features ...string) *models.Plan {
	t.Helper()
	p := &models.Plan{Name: name, Code: name, Currency: "BRL", Interval: "month", IsActive: true}
	require.NoError(t, db.Create(p).Error)
	for _, f := range features {
		require.NoError(t, db.Create(&models.PlanFeature{PlanID: p.ID, Feature: f}).Error)
	}
	return p
}

func seedSubscription(t *testing.T, db *gorm.DB, userID, planID int64, status string, startedAt time.Time) *models.Subscription {
	t.Helper()
	s := &models.Subscription{UserID: userID, PlanID: planID, Status: status, StartedAt: startedAt}
	require.NoError(t, db.Create(s).Error)
	return s
}

// seedChurch monta igreja + sede + ADMINGERAL para o usuário informado.
func seedChurch(t *testing.T, db *gorm.DB, adminUserID int64) (*models.Church, *models.Branch) {
	t.Helper()
	c := &models.Church{Name: "Igreja Central"}
	require.NoError(t, db.Create(c).Error)
	b := &models.Branch{ChurchID: c.ID, Name: "Sede"}
	require.NoError(t, db.Create(b).Error)
	m := &models.Member{UserID: adminUserID, BranchID: b.ID, Role: models.MEMBER_ROLE_ADMINGERAL}
	require.NoError(t, db.Create(m).Error)
	return c, b
}

func seedMember(t *testing.T, db *gorm.DB, userID, branchID int64, role string) *models.Member {
	t.Helper()
	m := &models.Member{UserID: userID, BranchID: branchID, Role: role}
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestResolveFromOwnSubscription(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	admin := seedUser(t, db, "admin@igreja.com")
	_, branch := seedChurch(t, db, admin.ID)

	// Admin tem plano mais rico; o membro tem o próprio plano, mais pobre.
	rich := seedPlan(t, db, "completo", "members", "events", "finances", "reports")
	basic := seedPlan(t, db, "basico", "events", "finances")
	seedSubscription(t, db, admin.ID, rich.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now().AddDate(0, -2, 0))

	user := seedUser(t, db, "membro@igreja.com")
	seedMember(t, db, user.ID, branch.ID, models.MEMBER_ROLE_MEMBRO)
	seedSubscription(t, db, user.ID, basic.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now().AddDate(0, -1, 0))

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)

	assert.Equal(t, entitlements.RESOLVED_FROM_SELF, ent.ResolvedFrom,
		"assinatura própria encerra a resolução, mesmo com admin mais rico")
	assert.True(t, ent.HasActiveSubscription)
	assert.Equal(t, []string{"events", "finances"}, ent.Features)
	require.NotNil(t, ent.Plan)
	assert.Equal(t, basic.ID, ent.Plan.ID)
}

func TestResolvePicksLatestOwnSubscription(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	old := seedPlan(t, db, "antigo", "members")
	current := seedPlan(t, db, "atual", "members", "events")

	user := seedUser(t, db, "u@igreja.com")
	seedSubscription(t, db, user.ID, old.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now().AddDate(-1, 0, 0))
	seedSubscription(t, db, user.ID, current.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now().AddDate(0, 0, -3))
	// Cancelada mais recente que todas não conta.
	canceled := seedPlan(t, db, "cancelado", "reports")
	seedSubscription(t, db, user.ID, canceled.ID, models.SUBSCRIPTION_STATUS_CANCELED, time.Now())

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)
	require.NotNil(t, ent.Plan)
	assert.Equal(t, current.ID, ent.Plan.ID)
}

func TestResolveFallsBackToChurchAdmin(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	admin := seedUser(t, db, "admin@igreja.com")
	_, branch := seedChurch(t, db, admin.ID)
	plan := seedPlan(t, db, "igreja", "members", "events", "notices")
	seedSubscription(t, db, admin.ID, plan.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now().AddDate(0, -1, 0))

	user := seedUser(t, db, "membro@igreja.com")
	seedMember(t, db, user.ID, branch.ID, models.MEMBER_ROLE_MEMBRO)

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)

	assert.Equal(t, entitlements.RESOLVED_FROM_ADMINGERAL, ent.ResolvedFrom)
	assert.True(t, ent.HasActiveSubscription)
	assert.Equal(t, []string{"members", "events", "notices"}, ent.Features)
	require.NotNil(t, ent.Plan)
	assert.Equal(t, plan.ID, ent.Plan.ID)
}

func TestResolveFallbackFromOtherBranchOfSameChurch(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	admin := seedUser(t, db, "admin@igreja.com")
	church, _ := seedChurch(t, db, admin.ID)
	plan := seedPlan(t, db, "igreja", "members")
	seedSubscription(t, db, admin.ID, plan.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now().AddDate(0, -1, 0))

	// Membro em OUTRA filial da mesma igreja ainda herda do ADMINGERAL.
	other := &models.Branch{ChurchID: church.ID, Name: "Filial Norte"}
	require.NoError(t, db.Create(other).Error)
	user := seedUser(t, db, "membro@igreja.com")
	seedMember(t, db, user.ID, other.ID, models.MEMBER_ROLE_COORDENADOR)

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)
	assert.Equal(t, entitlements.RESOLVED_FROM_ADMINGERAL, ent.ResolvedFrom)
}

func TestResolveEmptyIsLegitimate(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	// Usuário sem assinatura e sem vínculo de membro.
	user := seedUser(t, db, "solto@igreja.com")

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err, "sem plano não é erro")
	assert.False(t, ent.HasActiveSubscription)
	assert.Empty(t, ent.Features)
	assert.Nil(t, ent.Plan)
	assert.Nil(t, ent.MaxMembers)
	assert.Nil(t, ent.MaxBranches)
	assert.Empty(t, ent.ResolvedFrom)
}

func TestResolveEmptyWhenAdminHasNoSubscription(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	admin := seedUser(t, db, "admin@igreja.com")
	_, branch := seedChurch(t, db, admin.ID)
	user := seedUser(t, db, "membro@igreja.com")
	seedMember(t, db, user.ID, branch.ID, models.MEMBER_ROLE_MEMBRO)

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)
	assert.False(t, ent.HasActiveSubscription)
	assert.Empty(t, ent.Features)
}

func TestResolveUnknownUser(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	_, err := r.GetEntitlements(99999)
	assert.ErrorIs(t, err, entitlements.ErrUserNotFound)
}

func TestResolveRevalidatesStoredFeatures(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	user := seedUser(t, db, "u@igreja.com")
	plan := seedPlan(t, db, "legado", "events")
	// Linha legada gravada antes do id sair do catálogo.
	require.NoError(t, db.Create(&models.PlanFeature{PlanID: plan.ID, Feature: "video_calls"}).Error)
	seedSubscription(t, db, user.ID, plan.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now())

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"events"}, ent.Features, "id fora do catálogo não passa na leitura")
}

func TestResolveSubscriptionToDeletedPlan(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	user := seedUser(t, db, "u@igreja.com")
	seedSubscription(t, db, user.ID, 424242, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now())

	ent, err := r.GetEntitlements(user.ID)
	require.NoError(t, err, "plano apagado degrada para vazio, não erra")
	assert.False(t, ent.HasActiveSubscription)
	assert.Empty(t, ent.Features)
}

func TestResolveIsRepeatable(t *testing.T) {
	db := openTestDB(t)
	r := entitlements.NewResolver(db)

	user := seedUser(t, db, "u@igreja.com")
	plan := seedPlan(t, db, "plano", "members", "events")
	seedSubscription(t, db, user.ID, plan.ID, models.SUBSCRIPTION_STATUS_ACTIVE, time.Now())

	first, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)
	second, err := r.GetEntitlements(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
