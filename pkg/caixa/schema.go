package caixa

import (
	"sort"
	"time"

	"github.com/lotodata/megasena-backend/internal/models"
)

// Date layouts on either side of the schema boundary.
const (
	APIDateLayout      = "02/01/2006"
	InternalDateLayout = "2006-01-02"
)

// DrawResponse is the raw wire schema of the Caixa API. The bson tags exist
// because legacy cache entries were stored in this shape and must still
// decode; new entries are always written normalized.
type DrawResponse struct {
	Numero                        int           `json:"numero" bson:"numero"`
	DataApuracao                  string        `json:"dataApuracao" bson:"dataApuracao"`
	DataProximoConcurso           string        `json:"dataProximoConcurso" bson:"dataProximoConcurso"`
	ListaDezenas                  []string      `json:"listaDezenas" bson:"listaDezenas"`
	DezenasSorteadasOrdemSorteio  []string      `json:"dezenasSorteadasOrdemSorteio" bson:"dezenasSorteadasOrdemSorteio"`
	ListaRateioPremio             []PrizeBand   `json:"listaRateioPremio" bson:"listaRateioPremio"`
	ListaMunicipioUFGanhadores    []CityWinners `json:"listaMunicipioUFGanhadores" bson:"listaMunicipioUFGanhadores"`
	Acumulado                     bool          `json:"acumulado" bson:"acumulado"`
	ValorArrecadado               float64       `json:"valorArrecadado" bson:"valorArrecadado"`
	ValorEstimadoProximoConcurso  float64       `json:"valorEstimadoProximoConcurso" bson:"valorEstimadoProximoConcurso"`
	ValorAcumuladoProximoConcurso float64       `json:"valorAcumuladoProximoConcurso" bson:"valorAcumuladoProximoConcurso"`
	LocalSorteio                  string        `json:"localSorteio" bson:"localSorteio"`
	NomeMunicipioUFSorteio        string        `json:"nomeMunicipioUFSorteio" bson:"nomeMunicipioUFSorteio"`
}

// PrizeBand is one prize tier in the raw schema.
type PrizeBand struct {
	DescricaoFaixa     string  `json:"descricaoFaixa" bson:"descricaoFaixa"`
	NumeroDeGanhadores int     `json:"numeroDeGanhadores" bson:"numeroDeGanhadores"`
	ValorPremio        float64 `json:"valorPremio" bson:"valorPremio"`
}

// CityWinners is one winning city in the raw schema.
type CityWinners struct {
	Municipio  string `json:"municipio" bson:"municipio"`
	UF         string `json:"uf" bson:"uf"`
	Ganhadores int    `json:"ganhadores" bson:"ganhadores"`
}

// Normalize converts the raw API payload into the internal draw record. This
// field mapping is the authoritative schema contract.
func (r *DrawResponse) Normalize() *models.DrawRecord {
	premiacao := make(map[string]models.PrizeTier, len(r.ListaRateioPremio))
	for _, faixa := range r.ListaRateioPremio {
		premiacao[faixa.DescricaoFaixa] = models.PrizeTier{
			Ganhadores:       faixa.NumeroDeGanhadores,
			PremioIndividual: faixa.ValorPremio,
		}
	}

	cidades := make([]models.WinningCity, 0, len(r.ListaMunicipioUFGanhadores))
	for _, cidade := range r.ListaMunicipioUFGanhadores {
		cidades = append(cidades, models.WinningCity{
			Cidade:     cidade.Municipio,
			UF:         cidade.UF,
			Ganhadores: cidade.Ganhadores,
		})
	}

	return &models.DrawRecord{
		Concurso:                      r.Numero,
		DataSorteio:                   reformatDate(r.DataApuracao, APIDateLayout, InternalDateLayout),
		DataProximoConcurso:           reformatDate(r.DataProximoConcurso, APIDateLayout, InternalDateLayout),
		Dezenas:                       r.ListaDezenas,
		DezenasOrdemSorteio:           r.DezenasSorteadasOrdemSorteio,
		Premiacao:                     premiacao,
		CidadesGanhadoras:             cidades,
		Acumulado:                     r.Acumulado,
		ValorArrecadado:               r.ValorArrecadado,
		ValorEstimadoProximoConcurso:  r.ValorEstimadoProximoConcurso,
		ValorAcumuladoProximoConcurso: r.ValorAcumuladoProximoConcurso,
		LocalSorteio:                  r.LocalSorteio,
		LocalGPS:                      r.NomeMunicipioUFSorteio,
	}
}

// Denormalize converts a normalized record back into the raw wire shape. The
// service layer never needs this direction anymore; it exists so the mapping
// is verifiably lossless for the fields both schemas share.
func Denormalize(rec *models.DrawRecord) *DrawResponse {
	faixas := make([]PrizeBand, 0, len(rec.Premiacao))
	labels := make([]string, 0, len(rec.Premiacao))
	for label := range rec.Premiacao {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		tier := rec.Premiacao[label]
		faixas = append(faixas, PrizeBand{
			DescricaoFaixa:     label,
			NumeroDeGanhadores: tier.Ganhadores,
			ValorPremio:        tier.PremioIndividual,
		})
	}

	cidades := make([]CityWinners, 0, len(rec.CidadesGanhadoras))
	for _, cidade := range rec.CidadesGanhadoras {
		cidades = append(cidades, CityWinners{
			Municipio:  cidade.Cidade,
			UF:         cidade.UF,
			Ganhadores: cidade.Ganhadores,
		})
	}

	return &DrawResponse{
		Numero:                        rec.Concurso,
		DataApuracao:                  derefDate(rec.DataSorteio, InternalDateLayout, APIDateLayout),
		DataProximoConcurso:           derefDate(rec.DataProximoConcurso, InternalDateLayout, APIDateLayout),
		ListaDezenas:                  rec.Dezenas,
		DezenasSorteadasOrdemSorteio:  rec.DezenasOrdemSorteio,
		ListaRateioPremio:             faixas,
		ListaMunicipioUFGanhadores:    cidades,
		Acumulado:                     rec.Acumulado,
		ValorArrecadado:               rec.ValorArrecadado,
		ValorEstimadoProximoConcurso:  rec.ValorEstimadoProximoConcurso,
		ValorAcumuladoProximoConcurso: rec.ValorAcumuladoProximoConcurso,
		LocalSorteio:                  rec.LocalSorteio,
		NomeMunicipioUFSorteio:        rec.LocalGPS,
	}
}

// reformatDate parses value with the from layout and renders it with the to
// layout. Unparsable dates become nil rather than an error; the authority has
// published blank and malformed dates for historical draws.
func reformatDate(value, from, to string) *string {
	if value == "" {
		return nil
	}
	t, err := time.Parse(from, value)
	if err != nil {
		return nil
	}
	s := t.Format(to)
	return &s
}

func derefDate(value *string, from, to string) string {
	if value == nil {
		return ""
	}
	t, err := time.Parse(from, *value)
	if err != nil {
		return ""
	}
	return t.Format(to)
}
