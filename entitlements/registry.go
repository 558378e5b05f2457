package entitlements

// Feature é uma entrada do catálogo de features reconhecidas.
type Feature struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// catalog é a fonte única de verdade dos ids de feature válidos. A ordem aqui
// é a ordem canônica: ValidateAndNormalize devolve os ids válidos nesta ordem,
// independente da ordem de entrada.
var catalog = []Feature{
	{ID: "members", Label: "Membros"},
	{ID: "events", Label: "Eventos"},
	{ID: "contributions", Label: "Dízimos e Ofertas"},
	{ID: "finances", Label: "Finanças"},
	{ID: "devotionals", Label: "Devocionais"},
	{ID: "notices", Label: "Avisos"},
	{ID: "branches", Label: "Filiais"},
	{ID: "reports", Label: "Relatórios"},
}

// Features devolve uma cópia do catálogo (id + label), na ordem canônica.
func Features() []Feature {
	out := make([]Feature, len(catalog))
	copy(out, catalog)
	return out
}

// FeatureIDs devolve todos os ids reconhecidos, na ordem canônica.
func FeatureIDs() []string {
	out := make([]string, 0, len(catalog))
	for _, f := range catalog {
		out = append(out, f.ID)
	}
	return out
}

// HasFeatureID indica se o id pertence ao catálogo.
func HasFeatureID(id string) bool {
	for _, f := range catalog {
		if f.ID == id {
			return true
		}
	}
	return false
}

// ValidateAndNormalize particiona os candidatos em válidos e inválidos.
// "valid" sai na ordem do catálogo (normalização, não só filtragem) e sem
// duplicatas; "invalid" preserva a ordem de entrada, também sem duplicatas.
// A criação de plano trata invalid != vazio como erro duro: um plano nunca
// pode persistir ids fora do catálogo por esta API.
func ValidateAndNormalize(candidates []string) (valid []string, invalid []string) {
	valid = []string{}
	invalid = []string{}

	want := map[string]bool{}
	for _, c := range candidates {
		if want[c] {
			continue
		}
		want[c] = true
		if !HasFeatureID(c) {
			invalid = append(invalid, c)
		}
	}

	for _, f := range catalog {
		if want[f.ID] {
			valid = append(valid, f.ID)
		}
	}
	return valid, invalid
}
