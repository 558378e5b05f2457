package authz

/************************************************
/**** MARK: DENIAL KINDS ****/
/************************************************/
const (
	DenialAuthenticationRequired = "AuthenticationRequired"
	DenialInsufficientRole       = "InsufficientRole"
	DenialInsufficientPermission = "InsufficientPermission"
	DenialFeatureUnavailable     = "FeatureUnavailable"
	DenialResolutionFailed       = "ResolutionFailed"
	DenialConfigurationError     = "ConfigurationError"
)

// Denial é o payload estruturado que todo gate devolve ao negar acesso.
// A camada de transporte (router) serializa isso direto; Detail carrega o
// "requerido vs. obtido" quando for seguro expor ao próprio chamador.
type Denial struct {
	Kind    string                 `json:"kind"`
	Message string                 `json:"message"`
	Detail  map[string]interface{} `json:"detail,omitempty"`
}

func AuthenticationRequired() Denial {
	return Denial{
		Kind:    DenialAuthenticationRequired,
		Message: "autenticação necessária",
	}
}

func InsufficientRole(required []string, actual string) Denial {
	return Denial{
		Kind:    DenialInsufficientRole,
		Message: "papel insuficiente para esta operação",
		Detail: map[string]interface{}{
			"required": required,
			"actual":   actual,
		},
	}
}

func InsufficientPermission(required, held []string) Denial {
	return Denial{
		Kind:    DenialInsufficientPermission,
		Message: "permissões insuficientes para esta operação",
		Detail: map[string]interface{}{
			"required": required,
			"held":     held,
		},
	}
}

func FeatureUnavailable(required []string) Denial {
	return Denial{
		Kind:    DenialFeatureUnavailable,
		Message: "feature indisponível no plano atual",
		Detail: map[string]interface{}{
			"required": required,
		},
	}
}

// FeatureResolutionDenied é a negação usada quando o resolver de entitlements
// falhou: fail-closed, nunca allow implícito. O Detail marca a causa como
// ResolutionFailed para distinguir de "plano não cobre" em trilhas de auditoria.
func FeatureResolutionDenied(required []string) Denial {
	return Denial{
		Kind:    DenialFeatureUnavailable,
		Message: "não foi possível resolver os entitlements do usuário",
		Detail: map[string]interface{}{
			"required": required,
			"cause":    DenialResolutionFailed,
		},
	}
}

func ConfigurationError(message string) Denial {
	return Denial{
		Kind:    DenialConfigurationError,
		Message: message,
	}
}
