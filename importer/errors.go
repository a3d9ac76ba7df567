package importer

import "fmt"

// Error kinds, espelhando a taxonomia da API: validação vira 400,
// conflito vira 409 e o resto vira falha genérica de importação.
const (
	KindValidation = iota
	KindConflict
	KindAborted
)

// RowError identifica a linha e o motivo que abortou a importação inteira.
// Row 0 aponta problema no cabeçalho ou no arquivo como um todo.
type RowError struct {
	Row    int
	Kind   int
	Reason string
}

func (e *RowError) Error() string {
	if e.Row <= 0 {
		return e.Reason
	}
	return fmt.Sprintf("linha %d: %s", e.Row, e.Reason)
}

func validationErr(row int, format string, args ...any) *RowError {
	return &RowError{Row: row, Kind: KindValidation, Reason: fmt.Sprintf(format, args...)}
}

func conflictErr(row int, format string, args ...any) *RowError {
	return &RowError{Row: row, Kind: KindConflict, Reason: fmt.Sprintf(format, args...)}
}
