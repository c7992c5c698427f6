package dto

// Brand and category share the same shape: a named record whose uniqueness is
// checked after normalization (trim, collapse whitespace, uppercase).

type CrearMarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1"`
}

type MarcaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1"`
}

type CategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type CrearProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=1"`
	CUIT        string  `json:"cuit"         validate:"required,min=1"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	CUIT        string  `json:"cuit"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Direccion   *string `json:"direccion"`
}
