package models

// Game constants for Mega-Sena.
const (
	DezenaMin      = 1
	DezenaMax      = 60
	DezenasPerDraw = 6
)

// Prize tier labels as published by Caixa.
const (
	TierSena   = "6 acertos"
	TierQuina  = "5 acertos"
	TierQuadra = "4 acertos"
)

// KnownTiers lists the tier labels aggregated by the statistics engine.
var KnownTiers = []string{TierSena, TierQuina, TierQuadra}

// DrawRecord is the normalized representation of one Mega-Sena draw. This is
// the canonical schema both for API responses and for cached entries; the raw
// upstream schema never leaves the caixa package.
type DrawRecord struct {
	Concurso                      int                  `bson:"concurso" json:"concurso"`
	DataSorteio                   *string              `bson:"data_sorteio" json:"data_sorteio"`
	DataProximoConcurso           *string              `bson:"data_proximo_concurso" json:"data_proximo_concurso"`
	Dezenas                       []string             `bson:"dezenas" json:"dezenas"`
	DezenasOrdemSorteio           []string             `bson:"dezenas_ordem_sorteio" json:"dezenas_ordem_sorteio"`
	Premiacao                     map[string]PrizeTier `bson:"premiacao" json:"premiacao"`
	CidadesGanhadoras             []WinningCity        `bson:"cidades_ganhadoras" json:"cidades_ganhadoras"`
	Acumulado                     bool                 `bson:"acumulado" json:"acumulado"`
	ValorArrecadado               float64              `bson:"valor_arrecadado" json:"valor_arrecadado"`
	ValorEstimadoProximoConcurso  float64              `bson:"valor_estimado_proximo_concurso" json:"valor_estimado_proximo_concurso"`
	ValorAcumuladoProximoConcurso float64              `bson:"valor_acumulado_proximo_concurso" json:"valor_acumulado_proximo_concurso"`
	LocalSorteio                  string               `bson:"local_sorteio" json:"local_sorteio"`
	LocalGPS                      string               `bson:"local_gps" json:"local_gps"`
}

// PrizeTier holds the winner count and per-winner prize of one tier.
type PrizeTier struct {
	Ganhadores       int     `bson:"ganhadores" json:"ganhadores"`
	PremioIndividual float64 `bson:"premio_individual" json:"premio_individual"`
}

// WinningCity identifies a city with at least one top-tier winner.
type WinningCity struct {
	Cidade     string `bson:"cidade" json:"cidade"`
	UF         string `bson:"uf" json:"uf"`
	Ganhadores int    `bson:"ganhadores" json:"ganhadores"`
}

// DrawSummary is the reduced shape served by the latest-draws endpoint and
// stored under the ultimos_sorteios namespace.
type DrawSummary struct {
	Concurso        int      `bson:"concurso" json:"concurso"`
	DataSorteio     *string  `bson:"data_sorteio" json:"data_sorteio"`
	Dezenas         []string `bson:"dezenas" json:"dezenas"`
	PremioAcumulado float64  `bson:"premio_acumulado" json:"premio_acumulado"`
}

// LatestDrawsResult wraps the latest-draws summary list.
type LatestDrawsResult struct {
	Status   string        `json:"status"`
	Total    int           `json:"total"`
	UltimosN int           `json:"ultimos_n"`
	Sorteios []DrawSummary `json:"sorteios"`
}
