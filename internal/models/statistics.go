package models

// NumberFrequency pairs a two-digit number with how often it was drawn inside
// the analyzed window.
type NumberFrequency struct {
	Dezena     string `bson:"dezena" json:"dezena"`
	Frequencia int    `bson:"frequencia" json:"frequencia"`
}

// StatisticsPeriod bounds the draws actually analyzed. Pointers stay nil when
// every draw in the window failed to fetch.
type StatisticsPeriod struct {
	PrimeiroConcurso *int `bson:"primeiro_concurso" json:"primeiro_concurso"`
	UltimoConcurso   *int `bson:"ultimo_concurso" json:"ultimo_concurso"`
}

// StatisticsSnapshot is the aggregate over a rolling window of draws. The bson
// tags follow the stored layout (total_concursos) while the json tags follow
// the response contract (concursos_analisados).
type StatisticsSnapshot struct {
	ConcursosAnalisados   int               `bson:"total_concursos" json:"concursos_analisados"`
	Periodo               StatisticsPeriod  `bson:"periodo" json:"periodo"`
	DezenasMaisSorteadas  []NumberFrequency `bson:"dezenas_mais_sorteadas" json:"dezenas_mais_sorteadas"`
	DezenasMenosSorteadas []NumberFrequency `bson:"dezenas_menos_sorteadas" json:"dezenas_menos_sorteadas"`
	TotalGanhadores       map[string]int    `bson:"total_ganhadores" json:"total_ganhadores"`
}
