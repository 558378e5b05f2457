package router_test

import (
	"errors"
	"net/http"
	"testing"

	"ecclesia/authz"
	"ecclesia/models"
	"ecclesia/router"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64ptr(n int64) *int64 { return &n }

func grant(t *testing.T, db *gorm.DB, memberID int64, perms ...string) {
	t.Helper()
	for _, p := range perms {
		require.NoError(t, db.Create(&models.MemberPermission{MemberID: memberID, Permission: p}).Error)
	}
}

// openFailingDB devolve um gorm sobre sqlmock em que toda consulta a
// member_permissions falha, simulando store fora do ar.
func openFailingDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT (.+) FROM "member_permissions"`).
		WillReturnError(errors.New("connection refused"))

	db, err := gorm.Open("postgres", sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRequirePermissionsWithoutPrincipal(t *testing.T) {
	w := performGate(t, nil, nil, router.RequirePermissions(authz.PermManageEvents))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, authz.DenialAuthenticationRequired, decodeDenial(t, w).Kind)
}

func TestRequirePermissionsElevatedBypass(t *testing.T) {
	// Papel elevado nem consulta grants: passa sem banco e sem snapshot.
	for _, role := range []string{models.MEMBER_ROLE_ADMINGERAL, models.MEMBER_ROLE_ADMINFILIAL} {
		p := &authz.Principal{UserID: 1, Role: role, MemberID: int64ptr(10)}

		w := performGate(t, nil, p, router.RequirePermissions(authz.PermManageFinances))

		assert.Equal(t, http.StatusOK, w.Code, role)
	}
}

func TestRequirePermissionsElevatedBypassSurvivesStoreFailure(t *testing.T) {
	db := openFailingDB(t)
	p := &authz.Principal{UserID: 1, Role: models.MEMBER_ROLE_ADMINGERAL, MemberID: int64ptr(10)}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageFinances))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionsLiveGrantsAuthoritative(t *testing.T) {
	db := openGateDB(t)
	grant(t, db, 10, authz.PermManageEvents)

	// Snapshot do token ainda carrega finances, mas o grant vivo já foi
	// revogado: o dado vivo manda.
	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_COORDENADOR,
		MemberID:         int64ptr(10),
		TokenPermissions: []string{authz.PermManageEvents, authz.PermManageFinances},
	}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageEvents, authz.PermManageFinances))

	assert.Equal(t, http.StatusForbidden, w.Code)
	d := decodeDenial(t, w)
	assert.Equal(t, authz.DenialInsufficientPermission, d.Kind)
	assert.Equal(t, []interface{}{authz.PermManageEvents}, d.Detail["held"])
}

func TestRequirePermissionsEmptyLiveGrantsRevokeEverything(t *testing.T) {
	db := openGateDB(t)
	// Nenhum grant gravado: conjunto vivo vazio é válido e revoga tudo.
	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_MEMBRO,
		MemberID:         int64ptr(10),
		TokenPermissions: []string{authz.PermManageEvents},
	}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageEvents))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, authz.DenialInsufficientPermission, decodeDenial(t, w).Kind)
}

func TestRequirePermissionsLiveGrantsBeatStaleEmptyToken(t *testing.T) {
	db := openGateDB(t)
	grant(t, db, 10, authz.PermManageEvents)

	// Token emitido antes do grant: snapshot vazio, grant vivo concede.
	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_MEMBRO,
		MemberID:         int64ptr(10),
		TokenPermissions: []string{},
	}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageEvents))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionsDegradesToTokenOnStoreFailure(t *testing.T) {
	db := openFailingDB(t)
	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_COORDENADOR,
		MemberID:         int64ptr(10),
		TokenPermissions: []string{authz.PermManageEvents, authz.PermManageFinances},
	}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageEvents, authz.PermManageFinances))

	assert.Equal(t, http.StatusOK, w.Code, "store fora do ar degrada para o snapshot, não nega")
}

func TestRequirePermissionsDegradedStillDeniesWhenTokenLacks(t *testing.T) {
	db := openFailingDB(t)
	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_COORDENADOR,
		MemberID:         int64ptr(10),
		TokenPermissions: []string{authz.PermManageEvents},
	}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageFinances))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, authz.DenialInsufficientPermission, decodeDenial(t, w).Kind)
}

func TestRequirePermissionsWithoutMemberUsesToken(t *testing.T) {
	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_MEMBRO,
		TokenPermissions: []string{authz.PermManageEvents},
	}

	w := performGate(t, nil, p, router.RequirePermissions(authz.PermManageEvents))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionsNilSnapshotIsConfigurationError(t *testing.T) {
	// Sem member_id e sem claim de permissões: não existe conjunto utilizável.
	p := &authz.Principal{UserID: 1, Role: models.MEMBER_ROLE_MEMBRO}

	w := performGate(t, nil, p, router.RequirePermissions(authz.PermManageEvents))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, authz.DenialConfigurationError, decodeDenial(t, w).Kind)
}

func TestRequirePermissionsAllRequired(t *testing.T) {
	db := openGateDB(t)
	grant(t, db, 10, authz.PermManageEvents, authz.PermManageFinances)

	p := &authz.Principal{
		UserID:           1,
		Role:             models.MEMBER_ROLE_COORDENADOR,
		MemberID:         int64ptr(10),
		TokenPermissions: []string{},
	}

	w := performGate(t, db, p, router.RequirePermissions(authz.PermManageEvents, authz.PermManageFinances))

	assert.Equal(t, http.StatusOK, w.Code)
}
