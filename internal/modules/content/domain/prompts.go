package domain

import (
	"fmt"
	"strings"
)

func DevotionalPrompt(readings []string, focus string) string {
	return fmt.Sprintf(`Você é um mentor espiritual e teólogo. Analise as leituras bíblicas da semana passada: %s.
O tema do trimestre é: "%s".
Gere um devocional inspirador para o domingo (Dia de Descanso).
O devocional deve incluir:
1. Um título cativante.
2. Um versículo chave da semana.
3. Uma reflexão profunda conectando as leituras ao tema do trimestre.
4. Três pontos práticos para a semana seguinte.
5. Uma oração de encerramento.
Responda em JSON.`, strings.Join(readings, ", "), focus)
}

func MessianicPrompt(reading string) string {
	return fmt.Sprintf(`Atue como um teólogo cristocêntrico. Explique em no máximo 3 parágrafos como a passagem "%s" aponta para Jesus Cristo ou se conecta ao Fio Escarlate da Redenção.`, reading)
}

func PhrasePrompt(theme string) string {
	return fmt.Sprintf(`Gere uma frase curta e poderosa de motivação espiritual baseada no tema bíblico da semana: "%s". A frase deve ser encorajadora para quem está em uma jornada de leitura bíblica anual.`, theme)
}

func TermPrompt(term string) string {
	return fmt.Sprintf(`Defina o termo bíblico/teológico "%s" de forma clara e profunda. Retorne em JSON com "term" e "definition".`, term)
}

func PassagePrompt(reference, edition string) string {
	return fmt.Sprintf(`Forneça o texto da passagem "%s" na versão "%s". Retorne apenas o texto, numerando os versículos. Se for SCOFIELD, use a base ARC.`, reference, edition)
}
