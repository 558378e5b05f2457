package entitlements

import "ecclesia/models"

// Funções puras da cadeia de fallback. Elas operam sobre um grafo já
// carregado (Member com Branch, User do admin com Subscriptions), separando
// a caminhada na árvore do acesso a dados — dá pra testar contra fixtures
// em memória sem banco nenhum.

// LatestActiveSubscription devolve a assinatura "active" mais recente por
// started_at, ou nil se não houver nenhuma.
func LatestActiveSubscription(subs []models.Subscription) *models.Subscription {
	var latest *models.Subscription
	for i := range subs {
		s := &subs[i]
		if s.Status != models.SUBSCRIPTION_STATUS_ACTIVE {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	return latest
}

// FallbackSubscription devolve a assinatura candidata herdada do ADMINGERAL
// da igreja do membro, ou nil quando a cadeia não fecha: membro sem filial,
// filial sem igreja, igreja sem admin ou admin sem assinatura ativa.
// adminUser deve ser o User do Member com papel ADMINGERAL sob a MESMA igreja
// do membro (quem carrega o grafo garante isso); amarrar no admin geral da
// própria igreja — e não em "qualquer admin" — é o que impede vazamento
// entre tenants.
func FallbackSubscription(member *models.Member, adminUser *models.User) *models.Subscription {
	if member == nil || member.Branch == nil || member.Branch.ChurchID <= 0 {
		return nil
	}
	if adminUser == nil {
		return nil
	}
	return LatestActiveSubscription(adminUser.Subscriptions)
}
