package authz

// Políticas de degradação dos gates, nomeadas para que qualquer mudança seja
// uma edição deliberada e revisável (e não um acidente de caminho de código).
const (
	// FeatureResolutionFailsClosed: falha ao resolver entitlements nega o
	// acesso. Dado de plano não tem fallback seguro.
	FeatureResolutionFailsClosed = true

	// PermissionResolutionDegradesToToken: falha ao carregar grants vivos cai
	// para o snapshot do token. Permissão tem fallback defasado aceitável;
	// revogação imediata só é garantida com o store saudável.
	PermissionResolutionDegradesToToken = true
)
