package authz

// Permissões são strings abertas no banco (member_permissions.permission),
// mas os call sites referenciam estas constantes para que erro de digitação
// quebre em compilação. Adicionar permissão nova = adicionar constante aqui;
// não existe registro central em runtime.
const (
	PermManageMembers       = "manage_members"
	PermManageEvents        = "manage_events"
	PermManageContributions = "manage_contributions"
	PermManageFinances      = "manage_finances"
	PermManageNotices       = "manage_notices"
	PermManageDevotionals   = "manage_devotionals"
	PermViewReports         = "view_reports"
)
