package entitlements

import (
	"errors"

	"ecclesia/models"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// ErrUserNotFound indica principal desconhecido no banco. É o único caso em
// que a resolução erra em vez de devolver entitlements vazios: autenticação
// e store estão inconsistentes, não é um "sem plano" legítimo.
var ErrUserNotFound = errors.New("usuário não encontrado")

// Resolver calcula os entitlements efetivos de um usuário. Só faz leituras,
// nunca guarda estado entre chamadas: duas resoluções seguidas sem mudança no
// banco produzem o mesmo resultado.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// GetEntitlements resolve o plano efetivo do usuário:
//
//  1. assinatura ativa do próprio usuário (mais recente por started_at) -> "self";
//  2. senão, assinatura ativa do ADMINGERAL da igreja do membro -> "admingeral";
//  3. senão, entitlements vazios (estado terminal legítimo, não é erro).
//
// As features do plano são re-validadas contra o catálogo na leitura: id
// removido do catálogo some dos entitlements mesmo ainda gravado no plano.
func (r *Resolver) GetEntitlements(userID int64) (Entitlements, error) {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return Empty(), ErrUserNotFound
		}
		return Empty(), err
	}

	var sub *models.Subscription
	resolvedFrom := ""

	own, err := r.latestActiveSubscription(userID)
	if err != nil {
		return Empty(), err
	}
	if own != nil {
		// Resolução "self" encerra aqui: nunca consulta o ADMINGERAL,
		// mesmo que o plano do admin seja mais rico.
		sub = own
		resolvedFrom = RESOLVED_FROM_SELF
	} else {
		inherited, err := r.fallbackFromChurchAdmin(userID)
		if err != nil {
			return Empty(), err
		}
		if inherited != nil {
			sub = inherited
			resolvedFrom = RESOLVED_FROM_ADMINGERAL
		}
	}

	if sub == nil {
		return Empty(), nil
	}

	var plan models.Plan
	if err := r.db.First(&plan, sub.PlanID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			// Assinatura apontando para plano apagado (dado legado).
			// Sem plano carregável não há o que habilitar.
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"plan_id": sub.PlanID,
			}).Warn("assinatura ativa aponta para plano inexistente")
			return Empty(), nil
		}
		return Empty(), err
	}

	var links []models.PlanFeature
	if err := r.db.Where("plan_id = ?", plan.ID).Find(&links).Error; err != nil {
		return Empty(), err
	}
	stored := make([]string, 0, len(links))
	for _, l := range links {
		stored = append(stored, l.Feature)
	}
	// Re-validação na leitura: só o que o catálogo reconhece passa.
	features, _ := ValidateAndNormalize(stored)

	return Entitlements{
		Features:              features,
		MaxMembers:            plan.MaxMembers,
		MaxBranches:           plan.MaxBranches,
		Plan:                  &PlanRef{ID: plan.ID, Name: plan.Name, Code: plan.Code},
		HasActiveSubscription: true,
		ResolvedFrom:          resolvedFrom,
	}, nil
}

// latestActiveSubscription busca a assinatura ativa mais recente do usuário.
// Devolve (nil, nil) quando não existe nenhuma.
func (r *Resolver) latestActiveSubscription(userID int64) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.SUBSCRIPTION_STATUS_ACTIVE).
		Order("started_at desc").
		First(&sub).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// fallbackFromChurchAdmin carrega o grafo Member -> Branch -> Church ->
// ADMINGERAL -> User(+Subscriptions) e delega a escolha do candidato à
// função pura FallbackSubscription. Devolve (nil, nil) quando a cadeia
// não fecha em algum elo.
func (r *Resolver) fallbackFromChurchAdmin(userID int64) (*models.Subscription, error) {
	var member models.Member
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	var branch models.Branch
	if err := r.db.First(&branch, member.BranchID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	member.Branch = &branch

	if branch.ChurchID <= 0 {
		return nil, nil
	}

	// ADMINGERAL sob qualquer filial da MESMA igreja.
	var admin models.Member
	err := r.db.
		Select("members.*").
		Joins("JOIN branches ON branches.id = members.branch_id").
		Where("branches.church_id = ? AND members.role = ?", branch.ChurchID, models.MEMBER_ROLE_ADMINGERAL).
		First(&admin).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	var adminUser models.User
	if err := r.db.First(&adminUser, admin.UserID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	err = r.db.
		Where("user_id = ? AND status = ?", adminUser.ID, models.SUBSCRIPTION_STATUS_ACTIVE).
		Order("started_at desc").
		Find(&adminUser.Subscriptions).Error
	if err != nil {
		return nil, err
	}

	return FallbackSubscription(&member, &adminUser), nil
}
