package httperr

// BusinessError é uma regra de negócio violada (transição de status inválida,
// serviço inexistente no catálogo...). Vira 400 com o próprio código.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

var businessMessages = map[string]string{
	"invalid_state":     "Esta ação não é permitida no status atual do serviço.",
	"service_not_found": "Um ou mais serviços selecionados não estão disponíveis.",
	"invalid_period":    "Período inválido.",
	"invalid_date":      "Data inválida.",

	"cannot_delete_self":       "Você não pode excluir a própria conta.",
	"cannot_change_own_access": "Você não pode alterar o próprio cargo ou desativar a própria conta.",
}

// Message devolve o texto para o usuário; códigos sem texto próprio usam o código.
func (e BusinessError) Message() string {
	if msg, ok := businessMessages[e.Code]; ok {
		return msg
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}
