package client

import (
	"strings"

	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// Filter faz a busca local sobre a lista já carregada: substring sem
// diferenciar maiúsculas em nome, e-mail e placas dos veículos.
// Termo vazio devolve a lista inteira; nenhum resultado devolve slice vazio.
func Filter(clients []models.Client, term string) []models.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]models.Client, len(clients))
		copy(out, clients)
		return out
	}

	out := make([]models.Client, 0)
	for _, c := range clients {
		if Matches(c, term) {
			out = append(out, c)
		}
	}
	return out
}

// Matches espera o termo já em minúsculas.
func Matches(c models.Client, term string) bool {
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if c.Email != nil && strings.Contains(strings.ToLower(*c.Email), term) {
		return true
	}
	for _, v := range c.Vehicles {
		if v.Plate != nil && strings.Contains(strings.ToLower(*v.Plate), term) {
			return true
		}
	}
	return false
}
