package entitlements

/************************************************
/**** MARK: RESOLVED FROM ****/
/************************************************/
const RESOLVED_FROM_SELF = "self"
const RESOLVED_FROM_ADMINGERAL = "admingeral"

// PlanRef é a projeção mínima do plano resolvido.
type PlanRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Entitlements é a visão derivada (nunca persistida) do que um usuário pode
// usar neste instante: features já filtradas pelo catálogo, limites numéricos
// e de onde o plano veio. É recalculada a cada resolução; cache é problema
// de quem chama.
type Entitlements struct {
	Features              []string `json:"features"`
	MaxMembers            *int64   `json:"max_members"`
	MaxBranches           *int64   `json:"max_branches"`
	Plan                  *PlanRef `json:"plan"`
	HasActiveSubscription bool     `json:"has_active_subscription"`
	ResolvedFrom          string   `json:"resolved_from,omitempty"` // self | admingeral | ""
}

// Empty é o estado terminal legítimo "nenhum plano em lugar nenhum da cadeia".
// Não é erro.
func Empty() Entitlements {
	return Entitlements{Features: []string{}}
}

// HasFeature indica se a feature está disponível nos entitlements resolvidos.
func (e Entitlements) HasFeature(id string) bool {
	for _, f := range e.Features {
		if f == id {
			return true
		}
	}
	return false
}

// HasAnyFeature indica se ao menos uma das features está disponível.
func (e Entitlements) HasAnyFeature(ids ...string) bool {
	for _, id := range ids {
		if e.HasFeature(id) {
			return true
		}
	}
	return false
}
