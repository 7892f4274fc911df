package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// StatusResponse is the health answer
type StatusResponse struct {
	Status string `json:"status"`
}

// AckResponse acknowledges a client log event
type AckResponse struct {
	OK bool `json:"ok"`
}

// TextCondition is one text to be spoken
type TextCondition struct {
	Texto string `json:"texto" validate:"required"`
}

// AudioRequest represents the request payload for speech synthesis.
// Exactly one condition is accepted; the empty case is answered before
// validation with an explicit message.
type AudioRequest struct {
	Conditions []TextCondition `json:"conditions" validate:"max=1,dive"`
}

// ScreenshotRequest represents the request payload for screenshots
type ScreenshotRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// FileResponse reports a generated artifact
type FileResponse struct {
	Status           string `json:"status"`
	CaminhoDoArquivo string `json:"caminho_do_arquivo"`
}

// DescriptionResponse reports a screenshot and its spoken description
type DescriptionResponse struct {
	Status           string `json:"status"`
	CaminhoDoArquivo string `json:"caminho_do_arquivo"`
	Descricao        string `json:"descricao"`
}

// TranscriptionResponse carries recognized speech
type TranscriptionResponse struct {
	Status string `json:"status"`
	Texto  string `json:"texto"`
}

const statusSuccess = "sucesso"
