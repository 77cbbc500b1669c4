package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// IsAuthError verifica se o erro é de autenticação/token
func (e *ErrorResponse) IsAuthError() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	return e.Error.Code == 190 || e.Error.Type == "OAuthException"
}
