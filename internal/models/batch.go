package models

// Import item statuses.
const (
	ImportStatusImported = "importado"
	ImportStatusExists   = "ja_existe"
)

// ImportItem is the per-draw outcome of a batch import.
type ImportItem struct {
	Concurso int    `json:"concurso"`
	Status   string `json:"status"`
	ID       string `json:"id,omitempty"`
}

// ImportError records a draw that could not be imported.
type ImportError struct {
	Concurso int    `json:"concurso"`
	Erro     string `json:"erro"`
}

// ImportResult aggregates a batch import. A per-item failure never aborts the
// batch, so ComErro > 0 still yields status success.
type ImportResult struct {
	Status     string        `json:"status"`
	Importados int           `json:"importados"`
	JaExistem  int           `json:"ja_existem"`
	ComErro    int           `json:"com_erro"`
	Concursos  []ImportItem  `json:"concursos"`
	Erros      []ImportError `json:"erros"`
}

// HistoryResult wraps the stored-history listing. Resultados normally holds
// the cleaned entries; under the emergency serialization path it degrades to a
// string dump and Status flips to warning.
type HistoryResult struct {
	Status     string      `json:"status"`
	Total      int         `json:"total,omitempty"`
	Mensagem   string      `json:"mensagem,omitempty"`
	Resultados interface{} `json:"resultados"`
}
