package dto

// Valores por defecto de paginación.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// PageRequest paginación por página (page empieza en 1).
type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize aplica valores por defecto si Page/PerPage no son válidos.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// Bounds índices [start, end) de la página dentro de total elementos.
// Una página fuera de rango devuelve start == end.
func (p PageRequest) Bounds(total int) (start, end int) {
	p = p.Normalize()
	start = (p.Page - 1) * p.PerPage
	if start > total {
		start = total
	}
	end = start + p.PerPage
	if end > total {
		end = total
	}
	return start, end
}

// TotalPages ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse arma los metadatos para total elementos.
func NewPageResponse(p PageRequest, total int) PageResponse {
	p = p.Normalize()
	return PageResponse{Page: p.Page, PerPage: p.PerPage, Total: total, TotalPages: TotalPages(total, p.PerPage)}
}

// ErrorResponse cuerpo de error HTTP. La clave "error" siempre está presente.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
